package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/envhook/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage envhook configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default .envhook.toml at the repository root",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, root, err := resolve(cmd)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		path, created, err := config.WriteRepoFile(appFs, root, config.Default())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			exitCode = ExitFailure
			return nil
		}
		if !created {
			fmt.Fprintf(cmd.ErrOrStderr(), "Config file already exists at %s\n", path)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Config file created at %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, root, err := resolve(cmd)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			exitCode = ExitUsageError
			return nil
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# root: %s\n", root)
		if path := config.UserFile(appFs); path != "" {
			fmt.Fprintf(out, "# user file: %s\n", path)
		}
		if path := config.RepoFile(appFs, root); path != "" {
			fmt.Fprintf(out, "# repo file: %s\n", path)
		}
		fmt.Fprint(out, string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
