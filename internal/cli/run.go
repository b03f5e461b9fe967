package cli

import (
	"github.com/spf13/cobra"

	"github.com/lucass-carneiro/surge-stage/internal/deploy"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [-- args...]",
	Short: "Run the staged player from inside the staging directory",
	Long: `Change into the staging directory, start the player and change back when it
exits. Arguments after -- are passed to the player unchanged. A non-zero exit
status of the player becomes the exit status of this command.

Example:
  stage run -- --window 1280x720`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := newRequest(cmd, "", "")
		if err != nil {
			return err
		}
		req.Args = args

		o, err := newOrchestrator(cmd)
		if err != nil {
			return err
		}
		_, err = o.Execute(cmd.Context(), deploy.Run, req)
		return err
	},
}
