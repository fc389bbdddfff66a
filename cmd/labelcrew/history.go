package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/labelcrew/internal/digest"
	"github.com/ShayCichocki/labelcrew/internal/state"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Show past generation runs",
	Long: `Without arguments, lists recent runs, newest first.
With a run id (or a unique prefix of one), shows every document of that run
with its digest or error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	path := cfg.History.Path
	if path == "" {
		path = state.DefaultPath()
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	db, err := state.OpenAndMigrate(path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()

	if len(args) == 1 {
		run, err := db.GetRun(args[0])
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("run %s not found", args[0])
		}
		printRun(os.Stdout, run)
		return nil
	}

	runs, err := db.ListRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}
	printRuns(os.Stdout, runs)
	return nil
}

func runStatus(ok bool) string {
	if ok {
		return color.GreenString("ok")
	}
	return color.RedString("failed")
}

func printRuns(w io.Writer, runs []state.Run) {
	fmt.Fprintf(w, "%-10s %-20s %-8s %-10s %s\n", "RUN", "STARTED", "STATUS", "DURATION", "LABEL")
	for _, r := range runs {
		fmt.Fprintf(w, "%-10s %-20s %-8s %-10s %s\n",
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			runStatus(r.Success),
			r.Duration().Round(time.Millisecond),
			r.Label,
		)
	}
}

func printRun(w io.Writer, r *state.Run) {
	fmt.Fprintf(w, "Run:      %s\n", r.ID)
	fmt.Fprintf(w, "Label:    %s\n", r.Label)
	fmt.Fprintf(w, "Config:   %s (%s)\n", r.ConfigPath, digest.Short(r.ConfigDigest))
	fmt.Fprintf(w, "Output:   %s\n", r.OutputRoot)
	fmt.Fprintf(w, "Started:  %s\n", r.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "Duration: %s\n", r.Duration().Round(time.Millisecond))
	fmt.Fprintf(w, "Status:   %s\n\n", runStatus(r.Success))

	for _, d := range r.Documents {
		agent := d.AgentID
		if agent == "" {
			agent = "(run)"
		}
		if d.Error != "" {
			fmt.Fprintf(w, "  %s %-16s %-9s %s\n", color.RedString("✗"), agent, d.Kind, d.Error)
			continue
		}
		fmt.Fprintf(w, "  %s %-16s %-9s %s  %s\n", color.GreenString("✓"), agent, d.Kind, digest.Short(d.Digest), d.Path)
	}
}
