package cli

import (
	"fmt"
	"os"

	"github.com/ariel-frischer/profilecheck/internal/checker"
	"github.com/ariel-frischer/profilecheck/internal/cli/shared"
	"github.com/ariel-frischer/profilecheck/internal/lifecycle"
	"github.com/ariel-frischer/profilecheck/internal/progress"
	"github.com/ariel-frischer/profilecheck/internal/report"
	"github.com/spf13/cobra"

	apperrors "github.com/ariel-frischer/profilecheck/internal/errors"
)

const parseUsage = "profilecheck parse <file> [--format text|json|yaml] [--validate]"

func newParseCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the profiles, packages and stereotype applications of a document",
		Long: `Parse an XMI document and print what it declares: profiles with their
stereotypes and applicable types, packages with their members, and every
stereotype application with whether its stereotype and target resolved.

With --validate the applications are also checked and the findings listed.`,
		Example: `  # Summarize a MagicDraw export
  profilecheck parse model.xmi

  # Machine-readable output including findings
  profilecheck parse model.xmi --validate --format json`,
		GroupID: shared.GroupChecking,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case len(args) == 0:
				return apperrors.MissingInputArgument(parseUsage)
			case len(args) > 1:
				return apperrors.NewArgumentErrorWithUsage("parse takes exactly one document", parseUsage,
					"Use 'profilecheck validate' to check several documents")
			}
			if err := s.setup(cmd); err != nil {
				return err
			}
			format, err := s.format(cmd)
			if err != nil {
				return err
			}
			validate, _ := cmd.Flags().GetBool("validate")
			loose := s.cfg.LooseTypeMatch
			if cmd.Flags().Changed("loose") {
				loose, _ = cmd.Flags().GetBool("loose")
			}

			path := args[0]
			return lifecycle.Run(s.handler, "parse", func() error {
				if _, err := os.Stat(path); err != nil {
					return apperrors.MissingInputFile(path)
				}

				c := s.checker(loose)
				names := []string{progress.StageParse}
				if validate {
					names = append(names, progress.StageValidate)
				}
				stages := s.stages(cmd.ErrOrStderr(), path, names...)

				if err := stages.run(progress.StageParse, func() (string, error) {
					if err := c.Parse(path); err != nil {
						return "", err
					}
					n, _ := c.NumberOfApplications()
					return fmt.Sprintf("%d applications", n), nil
				}); err != nil {
					return apperrors.ParseFailed(path, err)
				}

				if validate {
					if err := stages.run(progress.StageValidate, func() (string, error) {
						res, err := c.Validate()
						return fmt.Sprintf("%d findings", len(res.Findings)), err
					}); err != nil {
						return err
					}
				}

				return s.renderer(format).Document(cmd.OutOrStdout(), document(path, c))
			})
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output format: text, json or yaml (default from config)")
	cmd.Flags().Bool("validate", false, "Also validate stereotype applications and list findings")
	cmd.Flags().Bool("loose", false, "Let qualified types such as Kernel::Class match the bare name Class")
	return cmd
}

func document(source string, c *checker.Checker) report.Document {
	model, _ := c.Model()
	return report.FromModel(source, model, c.Validated())
}
