package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/lucass-carneiro/surge-stage/internal/deploy"
)

var statusFormat string

func init() {
	statusCmd.Flags().StringVar(&statusFormat, "format", "text", "Output format: text or yaml")
	rootCmd.AddCommand(statusCmd)
}

var statusCmd = &cobra.Command{
	Use:   "status <configuration> [module]",
	Short: "Show which staged files are missing, stale or pending activation",
	Args:  rangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if statusFormat != "text" && statusFormat != "yaml" {
			return deploy.Usage(fmt.Errorf("unknown format %q: expected text or yaml", statusFormat))
		}

		module := ""
		if len(args) == 2 {
			module = args[1]
		}
		req, err := newRequest(cmd, args[0], module)
		if err != nil {
			return err
		}
		o, err := newOrchestrator(cmd)
		if err != nil {
			return err
		}

		res, err := o.Execute(cmd.Context(), deploy.Status, req)
		if err != nil {
			return err
		}

		if statusFormat == "yaml" {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(res.Entries); err != nil {
				return fmt.Errorf("encoding status: %w", err)
			}
			return enc.Close()
		}
		return printStatus(cmd.OutOrStdout(), req.OutputDirectory, res.Entries)
	},
}
