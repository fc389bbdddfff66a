package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/labelcrew/internal/label"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example label config",
	Long: `Init writes a complete example label config to path (default label.yaml).
An existing file is never overwritten.

Examples:
  labelcrew init
  labelcrew init labels/next-up.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	path := "label.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	created, err := writeExampleConfig(path)
	if err != nil {
		return err
	}
	if !created {
		printStatus("⚠", fmt.Sprintf("%s already exists, leaving it unchanged", path), color.FgYellow)
		return nil
	}

	printStatus("✓", fmt.Sprintf("Created %s", path), color.FgGreen)
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Printf("  1. Edit %s with your label, artists and distributor\n", path)
	fmt.Println("  2. Export the credential variables it references")
	fmt.Printf("  3. labelcrew validate --config %s\n", path)
	fmt.Printf("  4. labelcrew generate --config %s\n", path)
	return nil
}

// writeExampleConfig creates path with the example config. It reports false
// without touching the file when path already exists.
func writeExampleConfig(path string) (bool, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if errors.Is(err, fs.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := f.WriteString(label.ExampleYAML); err != nil {
		f.Close()
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("closing %s: %w", path, err)
	}
	return true, nil
}
