package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/labelcrew/internal/label"
	"github.com/ShayCichocki/labelcrew/internal/roster"
)

var validateConfigPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a label config without writing anything",
	Long: `Validate loads the label config and reports every missing or malformed
field at once. On success it prints a summary of the label with
credential values masked, and warns about credentials whose environment
variable is unset.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateConfigPath, "config", "c", "", "Label config file (default from defaults.config)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := validateConfigPath
	if path == "" {
		path = loadConfig().Defaults.Config
	}

	cfg, err := label.Load(path)
	if err != nil {
		var cfgErr *label.ConfigError
		if errors.As(err, &cfgErr) {
			printConfigError(cfgErr)
			return fmt.Errorf("%d problem(s) in %s", len(cfgErr.Problems), path)
		}
		return err
	}

	printStatus("✓", fmt.Sprintf("%s is valid", path), color.FgGreen)
	printLabelSummary(cfg)

	if unresolved := cfg.UnresolvedCredentials(); len(unresolved) > 0 {
		printStatus("⚠", fmt.Sprintf("Credentials with no value: %s", strings.Join(unresolved, ", ")), color.FgYellow)
	}
	return nil
}

func printLabelSummary(cfg *label.Config) {
	fmt.Printf("  label:       %s\n", cfg.Name())
	if owner := cfg.Owner(); owner != "" {
		fmt.Printf("  owner:       %s\n", owner)
	}
	fmt.Printf("  distributor: %s\n", cfg.Distributor())
	if hosting := cfg.Hosting(); hosting != "" {
		fmt.Printf("  hosting:     %s\n", hosting)
	}
	fmt.Printf("  artists:     %s\n", strings.Join(cfg.ArtistNames(), ", "))

	var enabled []string
	for _, def := range roster.All() {
		if cfg.Enabled(def.ID) {
			enabled = append(enabled, string(def.ID))
		}
	}
	fmt.Printf("  agents:      %s\n", strings.Join(enabled, ", "))

	names := cfg.CredentialNames()
	if len(names) == 0 {
		fmt.Println("  credentials: (none)")
		return
	}
	fmt.Println("  credentials:")
	for _, k := range names {
		v, _ := cfg.Credential(k)
		fmt.Printf("    %-12s %s\n", k+":", label.MaskSecret(v))
	}
}
