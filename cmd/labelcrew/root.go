package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/labelcrew/internal/config"
	"github.com/ShayCichocki/labelcrew/internal/logging"
)

var debugLogPath string

var rootCmd = &cobra.Command{
	Use:   "labelcrew",
	Short: "Persona document generator for a label's AI team",
	Long: `labelcrew turns a label configuration file into the persona documents
for a fixed team of AI agents: one directory per agent with SOUL.md,
IDENTITY.md and COMMANDS.txt, plus a registry (agents.json) and the
aggregated bot command list (telegram_commands.txt).

Generation is deterministic. Running it twice on the same config produces
byte-identical files. A failure on one agent never stops the others.

Get started:
  labelcrew init                  # write an example label.yaml
  labelcrew validate              # check it
  labelcrew generate              # write ./generated`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&debugLogPath, "debug-log", "", "Write a timestamped debug log to this file")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(agentsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig loads the tool configuration, falling back to defaults with a
// warning when it cannot be read.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		printStatus("⚠", fmt.Sprintf("Using default settings: %v", err), color.FgYellow)
		return config.Default()
	}
	return cfg
}

// openDebugLog opens the --debug-log file, or a no-op logger when unset.
func openDebugLog() *logging.DebugLogger {
	l, err := logging.NewDebugLogger(debugLogPath)
	if err != nil {
		printStatus("⚠", fmt.Sprintf("Debug log disabled: %v", err), color.FgYellow)
		return logging.Nop()
	}
	return l
}

// printStatus prints a status line with color
func printStatus(symbol, message string, colorAttr color.Attribute) {
	c := color.New(colorAttr)
	fmt.Printf("%s %s\n", c.Sprint(symbol), message)
}
