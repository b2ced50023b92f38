package cli

import (
	"encoding/json"
	"fmt"

	"github.com/ariel-frischer/profilecheck/internal/cli/shared"
	"github.com/ariel-frischer/profilecheck/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(s *session) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect profilecheck configuration",
		Long: `Inspect profilecheck configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (PROFILECHECK_*)
  2. Project config (.profilecheck/config.json, or --config)
  3. User config (~/.config/profilecheck/config.json)
  4. Built-in defaults`,
		Example: `  # Show current configuration
  profilecheck config show

  # Show configuration as JSON
  profilecheck config show --json`,
		GroupID: shared.GroupConfiguration,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current effective configuration",
		Long: `Display the current effective configuration values.

Shows the merged result of defaults, user config, project config, and
environment variables, in YAML unless --json is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := s.setup(cmd); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			configPath, _ := cmd.Flags().GetString("config")
			userPath, _ := config.UserConfigPath()

			fmt.Fprintf(out, "# Configuration Sources\n")
			fmt.Fprintf(out, "# User config:    %s\n", userPath)
			fmt.Fprintf(out, "# Project config: %s\n", configPath)
			fmt.Fprintf(out, "\n")

			if useJSON, _ := cmd.Flags().GetBool("json"); useJSON {
				data, err := json.MarshalIndent(s.cfg, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to serialize config: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			data, err := yaml.Marshal(s.cfg)
			if err != nil {
				return fmt.Errorf("failed to serialize config: %w", err)
			}
			fmt.Fprint(out, string(data))
			return nil
		},
	}
	showCmd.Flags().Bool("json", false, "Output as JSON")

	configCmd.AddCommand(showCmd)
	return configCmd
}
