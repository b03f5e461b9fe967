package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lucass-carneiro/surge-stage/internal/deploy"
	"github.com/lucass-carneiro/surge-stage/internal/watch"
)

var watchDebounce time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before an update runs")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <configuration> <module>",
	Short: "Run update whenever the module's build output changes",
	Long: `Watch the module's build output, its config.ini, the player output and the
shaders, and run 'update' after every burst of changes until interrupted.`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := newRequest(cmd, args[0], args[1])
		if err != nil {
			return err
		}
		o, err := newOrchestrator(cmd)
		if err != nil {
			return err
		}

		update := func(ctx context.Context) error {
			res, err := o.Execute(ctx, deploy.Update, req)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), res.Report)
			return nil
		}

		// Bring the staging directory up to date before waiting for changes.
		if err := update(cmd.Context()); err != nil {
			return err
		}

		dirs := watch.Dirs(o.Locator(), req)
		fmt.Fprintf(cmd.OutOrStdout(), "Watching %d director(ies), press Ctrl+C to stop.\n", len(dirs))

		return watch.New(dirs, update).
			WithDebounce(watchDebounce).
			WithLogger(logger).
			Run(cmd.Context())
	},
}
