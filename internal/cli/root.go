package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gookit/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lucass-carneiro/surge-stage/internal/branding"
	"github.com/lucass-carneiro/surge-stage/internal/config"
	"github.com/lucass-carneiro/surge-stage/internal/deploy"
)

// BuildInfo is injected via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var build = BuildInfo{Version: config.DevVersion, Commit: "unknown", Date: "unknown"}

// Global flags.
var (
	flagPrefix  string
	flagOutput  string
	flagLink    string
	flagConfig  string
	flagVerbose bool
	flagNoColor bool
)

// Per-invocation state set up by PersistentPreRunE.
var (
	logger *slog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` assembles a runnable staging directory out of an engine build:
the player executable, module libraries, shaders, config.ini and resources.
Libraries of a running game are never overwritten; updated copies are staged
next to them as <lib>.new and swapped in with 'activate'.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagNoColor {
			color.Disable()
		}
		logger = newLogger(cmd.ErrOrStderr(), flagVerbose)
		slog.SetDefault(logger)

		loaded, err := config.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded

		settings, err := cfg.Settings()
		if err != nil {
			return err
		}
		return config.CheckVersion(settings.MinVersion, build.Version)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagPrefix, "prefix", ".", "Build tree root containing <configuration>/, modules/ and shaders/")
	pf.StringVar(&flagOutput, "output", "./"+branding.DefaultOutput(), "Staging directory")
	pf.StringVar(&flagLink, "link", "", "Link strategy override: copy or symlink")
	pf.StringVar(&flagConfig, "config", "", "Settings file (default ./"+branding.ConfigFile()+")")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return deploy.Usage(err)
	})
}

// newLogger returns a text logger on w: debug level when verbose, warnings
// and errors otherwise.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command against os.Args. Failures are printed to
// stderr; the caller maps the returned error to an exit status.
func Execute(info BuildInfo) error {
	ctx, stop := signalContext()
	defer stop()
	return Run(ctx, info, os.Args[1:], os.Stdout, os.Stderr)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// Run executes args against a freshly reset command tree.
func Run(ctx context.Context, info BuildInfo, args []string, stdout, stderr io.Writer) error {
	if info.Version != "" {
		build = info
	}
	resetFlags(rootCmd)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		adapter := deploy.NewErrorAdapter(flagVerbose, logger)
		adapter.Log(err)
		fmt.Fprintln(stderr, color.Danger.Sprint(adapter.FormatError(err)))
	}
	return err
}

// resetFlags restores every flag in the tree to its default so repeated
// runs in one process start clean.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
	logger = slog.Default()
	cfg = nil
}

// exactArgs is cobra.ExactArgs reporting a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return usageArgs(cobra.ExactArgs(n))
}

// rangeArgs is cobra.RangeArgs reporting a usage error.
func rangeArgs(min, max int) cobra.PositionalArgs {
	return usageArgs(cobra.RangeArgs(min, max))
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return deploy.Usage(check(cmd, args))
	}
}
