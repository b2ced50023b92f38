// Package cli provides the Cobra-based commands of profilecheck: parse,
// validate and query for XMI profile documents, plus config and version.
package cli

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/profilecheck/internal/cli/shared"
	"github.com/ariel-frischer/profilecheck/internal/config"
	"github.com/spf13/cobra"

	apperrors "github.com/ariel-frischer/profilecheck/internal/errors"
)

// NewRootCmd builds the command tree. load supplies configuration; nil uses
// config.Load.
func NewRootCmd(load func(localConfigPath string) (*config.Configuration, error)) *cobra.Command {
	s := newSession(load)

	rootCmd := &cobra.Command{
		Use:   "profilecheck",
		Short: "Check UML profile applications in XMI documents",
		Long: `profilecheck reads XMI exports of UML models, resolves the profiles, packages
and stereotype applications they declare, and reports applications whose
stereotype or target is missing or whose stereotype does not apply to the
target's type.`,
		Example: `  # Summarize a document
  profilecheck parse model.xmi

  # Validate every export in a directory tree
  profilecheck validate 'models/**/*.xmi'

  # Scripted queries
  profilecheck query model.xmi stereotypes-count PROFILE_ID`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: shared.GroupChecking, Title: "Checking:"})
	rootCmd.AddGroup(&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"})
	rootCmd.SetHelpCommandGroupID(shared.GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(shared.GroupConfiguration)
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return apperrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", config.ProjectConfigPath, "Path to config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		newParseCmd(s),
		newValidateCmd(s),
		newQueryCmd(s),
		newConfigCmd(s),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command and prints any error to stderr. The error
// is returned so the caller can derive the exit code.
func Execute() error {
	rootCmd := NewRootCmd(nil)
	err := rootCmd.Execute()
	reportError(rootCmd.ErrOrStderr(), err)
	return err
}

// reportError prints err unless it only carries an exit code.
func reportError(w io.Writer, err error) {
	switch {
	case err == nil, shared.IsExitError(err):
	case apperrors.IsCLIError(err):
		apperrors.FprintError(w, apperrors.AsCLIError(err))
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}
