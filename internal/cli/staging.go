package cli

import (
	"github.com/spf13/cobra"

	"github.com/lucass-carneiro/surge-stage/internal/deploy"
)

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(populateCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(activateCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <configuration>",
	Short: "Create a staging directory with the player and shaders",
	Long: `Create the staging directory and place the player executable, its runtime
libraries and the shader tree of the given configuration in it.

Example:
  stage new Release --prefix /build`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, deploy.New, args[0], "")
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the staging directory",
	Args:  exactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, deploy.Delete, "", "")
	},
}

var populateCmd = &cobra.Command{
	Use:   "populate <configuration> <module>",
	Short: "Stage a module's libraries, config.ini and resources",
	Long: `Stage a module into an existing staging directory. Files already staged for
the module are overwritten.

Example:
  stage populate Release physics`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, deploy.Populate, args[0], args[1])
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <configuration> <module>",
	Short: "Refresh changed files of a populated module",
	Long: `Compare every staged file of a module with its build output. Changed module
libraries are staged next to the live copy as <lib>.new so a running game is
not disturbed; config.ini, the player and shaders are refreshed in place.`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, deploy.Update, args[0], args[1])
	},
}

var activateCmd = &cobra.Command{
	Use:   "activate <configuration> <module>",
	Short: "Swap side-staged <lib>.new files over the live libraries",
	Args:  exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, deploy.Activate, args[0], args[1])
	},
}
