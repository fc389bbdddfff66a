package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/labelcrew/internal/watch"
)

var (
	watchFlags    runFlags
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the label config changes",
	Long: `Watch runs one generation, then regenerates every time the label config
file is written, until interrupted. An invalid config is reported and the
previous output is left untouched until the file is fixed.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().AddFlagSet(watchFlags.flagSet("watch"))
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "Quiet period before regenerating (default from watch.debounce)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	flags := watchFlags.resolve(cfg)
	debounce := watchDebounce
	if debounce <= 0 {
		debounce = cfg.Watch.Debounce
	}

	env := newRunEnv(cfg, flags)
	defer env.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(flags.configPath, debounce)
	if err != nil {
		return err
	}

	regenerate(ctx, env, flags)
	printStatus("⟳", fmt.Sprintf("Watching %s for changes (Ctrl+C to stop)", w.Path()), color.FgCyan)

	return w.Run(ctx, func() {
		fmt.Printf("\n%s changed, regenerating...\n", flags.configPath)
		regenerate(ctx, env, flags)
	})
}

// regenerate runs one generation and prints its outcome. Errors never end
// watch mode.
func regenerate(ctx context.Context, env *runEnv, flags runFlags) {
	m, err := env.generator().Generate(ctx, flags.configPath, flags.outputDir)
	if err != nil {
		reportErr := reportGenerateError(err)
		printStatus("✗", reportErr.Error(), color.FgRed)
		return
	}
	printManifest(m)
	env.purge()
}
