package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.opentelemetry.io/otel"

	"github.com/ShayCichocki/labelcrew/internal/config"
	"github.com/ShayCichocki/labelcrew/internal/generate"
	"github.com/ShayCichocki/labelcrew/internal/label"
	"github.com/ShayCichocki/labelcrew/internal/logging"
	"github.com/ShayCichocki/labelcrew/internal/state"
	"github.com/ShayCichocki/labelcrew/internal/telemetry"
	"github.com/ShayCichocki/labelcrew/internal/version"
)

// runFlags are shared by generate and watch.
type runFlags struct {
	configPath   string
	outputDir    string
	templatesDir string
	openClawDir  string
	workers      int
	noHistory    bool
}

func (f *runFlags) flagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringVarP(&f.configPath, "config", "c", "", "Label config file (default from defaults.config, usually label.yaml)")
	fs.StringVarP(&f.outputDir, "output", "o", "", "Output root (default from defaults.output_dir)")
	fs.StringVar(&f.templatesDir, "templates", "", "Directory of template overrides")
	fs.StringVar(&f.openClawDir, "openclaw", "", "Also mirror each persona to DIR/workspace-<agent>/SOUL.md")
	fs.IntVarP(&f.workers, "workers", "w", 0, "Number of agents processed concurrently")
	fs.BoolVar(&f.noHistory, "no-history", false, "Do not record this run in the history database")
	return fs
}

// resolve fills unset flags from the tool config.
func (f runFlags) resolve(cfg *config.Config) runFlags {
	if f.configPath == "" {
		f.configPath = cfg.Defaults.Config
	}
	if f.outputDir == "" {
		f.outputDir = cfg.Defaults.OutputDir
	}
	if f.templatesDir == "" {
		f.templatesDir = cfg.Templates.Dir
	}
	if f.openClawDir == "" {
		f.openClawDir = cfg.OpenClaw.Dir
	}
	if f.workers <= 0 {
		f.workers = cfg.Defaults.Workers
	}
	if f.workers <= 0 {
		f.workers = 1
	}
	if !cfg.History.Enabled {
		f.noHistory = true
	}
	return f
}

var (
	generateFlags runFlags
	generateTUI   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate persona documents for every agent",
	Long: `Generate reads the label config and writes, for every enabled agent,
a directory under the output root containing SOUL.md, IDENTITY.md and
COMMANDS.txt. agents.json and telegram_commands.txt are written at the root.

An invalid label config is reported in full and nothing is written.
Failures rendering or writing one agent's documents are reported but do
not stop the other agents. The exit status is non-zero unless every
document was written.

Examples:
  labelcrew generate
  labelcrew generate --config label.yaml --output ./generated
  labelcrew generate --workers 6 --tui
  labelcrew generate --openclaw ~/.openclaw`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().AddFlagSet(generateFlags.flagSet("generate"))
	generateCmd.Flags().BoolVar(&generateTUI, "tui", false, "Show a live progress view")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	flags := generateFlags.resolve(cfg)

	env := newRunEnv(cfg, flags)
	defer env.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		m   *generate.Manifest
		err error
	)
	if generateTUI {
		m, err = runGenerateTUI(ctx, env, flags)
	} else {
		m, err = env.generator().Generate(ctx, flags.configPath, flags.outputDir)
	}
	if err != nil {
		return reportGenerateError(err)
	}

	printManifest(m)
	env.purge()

	if !m.Success() {
		return fmt.Errorf("generation finished with %d error(s)", len(m.AllErrors()))
	}
	return nil
}

// runEnv holds the resources shared by every generation in one process.
type runEnv struct {
	cfg     *config.Config
	flags   runFlags
	logger  *logging.DebugLogger
	history *state.DB
	metrics *telemetry.DocumentMetrics
	// shutdown flushes telemetry.
	shutdown telemetry.ShutdownFunc
}

func newRunEnv(cfg *config.Config, flags runFlags) *runEnv {
	env := &runEnv{
		cfg:      cfg,
		flags:    flags,
		logger:   openDebugLog(),
		shutdown: func(context.Context) error { return nil },
	}

	shutdown, err := telemetry.Init("labelcrew", version.Get(), telemetry.Config{
		Exporter:     cfg.Telemetry.Exporter,
		OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
		OTLPInsecure: cfg.Telemetry.OTLPInsecure,
	})
	if err != nil {
		log.Printf("[telemetry] WARNING: telemetry disabled: %v", err)
	} else {
		env.shutdown = shutdown
	}

	metrics, err := telemetry.NewDocumentMetrics(otel.Meter(telemetry.InstrumentationName))
	if err != nil {
		log.Printf("[telemetry] WARNING: metrics disabled: %v", err)
	}
	env.metrics = metrics

	if !flags.noHistory {
		path := cfg.History.Path
		if path == "" {
			path = state.DefaultPath()
		}
		db, err := state.OpenAndMigrate(path)
		if err != nil {
			log.Printf("[history] WARNING: run history disabled: %v", err)
		} else {
			env.history = db
		}
	}

	return env
}

// generator builds a Generator with the environment's options plus extra.
func (e *runEnv) generator(extra ...generate.Option) *generate.Generator {
	opts := []generate.Option{
		generate.WithWorkers(e.flags.workers),
		generate.WithTemplatesDir(e.flags.templatesDir),
		generate.WithOpenClawDir(e.flags.openClawDir),
		generate.WithLogger(e.logger),
		generate.WithMetrics(e.metrics),
	}
	if e.history != nil {
		opts = append(opts, generate.WithRecorder(e.history))
	}
	return generate.New(append(opts, extra...)...)
}

// purge applies history.retention after a run.
func (e *runEnv) purge() {
	if e.history == nil || e.cfg.History.Retention <= 0 {
		return
	}
	n, err := e.history.PurgeOldRuns(e.cfg.History.Retention)
	if err != nil {
		log.Printf("[history] WARNING: failed to purge old runs: %v", err)
		return
	}
	if n > 0 {
		e.logger.Log("[history] purged %d run(s) older than %s", n, e.cfg.History.Retention)
	}
}

func (e *runEnv) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.shutdown(ctx); err != nil {
		log.Printf("[telemetry] WARNING: %v", err)
	}
	if e.history != nil {
		e.history.Close()
	}
	e.logger.Close()
}

// reportGenerateError prints a config error problem by problem and returns
// the error to exit non-zero.
func reportGenerateError(err error) error {
	var cfgErr *label.ConfigError
	if errors.As(err, &cfgErr) {
		printConfigError(cfgErr)
		return fmt.Errorf("label config is invalid, nothing was written")
	}
	return err
}

func printConfigError(cfgErr *label.ConfigError) {
	printStatus("✗", fmt.Sprintf("%s is invalid", cfgErr.Path), color.FgRed)
	for _, p := range cfgErr.Problems {
		fmt.Printf("    %s\n", p.String())
	}
}

// printManifest prints per-agent results followed by a summary line.
func printManifest(m *generate.Manifest) {
	for _, a := range m.Agents {
		switch {
		case a.Skipped:
			printStatus("-", fmt.Sprintf("%s skipped (disabled)", a.ID), color.FgYellow)
		case a.OK():
			printStatus("✓", fmt.Sprintf("%s: %d documents", a.ID, len(a.Documents)), color.FgGreen)
		default:
			printStatus("✗", fmt.Sprintf("%s: %d documents, %d error(s)", a.ID, len(a.Documents), len(a.Errors)), color.FgRed)
			for _, err := range a.Errors {
				fmt.Printf("    %v\n", err)
			}
		}
	}
	for _, art := range m.Artifacts {
		printStatus("✓", art.Name, color.FgGreen)
	}
	for _, err := range m.Errors {
		printStatus("✗", err.Error(), color.FgRed)
	}

	fmt.Printf("\nRun %s: %d documents written to %s in %s\n",
		m.RunID, m.Written(), m.OutputRoot, m.FinishedAt.Sub(m.StartedAt).Round(time.Millisecond))
}
