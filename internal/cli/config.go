package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucass-carneiro/surge-stage/internal/config"
	"github.com/lucass-carneiro/surge-stage/internal/deploy"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage project settings",
	Long: `Read and write settings stored in stage.yaml in the working directory (or the
file given by --config). Environment variables prefixed with STAGE_ override
the file, e.g. STAGE_OUTPUT or STAGE_POSTPROCESS_COMMAND.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if !config.IsKey(key) {
			return deploy.Usage(fmt.Errorf("unknown config key %q", key))
		}
		if err := cfg.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !config.IsKey(args[0]) {
			return deploy.Usage(fmt.Errorf("unknown config key %q", args[0]))
		}
		fmt.Fprintln(cmd.OutOrStdout(), cfg.Get(args[0]))
		return nil
	},
}
