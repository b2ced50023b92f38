package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/ariel-frischer/profilecheck/internal/cli/shared"
	"github.com/ariel-frischer/profilecheck/internal/lifecycle"
	"github.com/ariel-frischer/profilecheck/internal/progress"
	"github.com/ariel-frischer/profilecheck/internal/report"
	"github.com/ariel-frischer/profilecheck/internal/watch"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/ariel-frischer/profilecheck/internal/errors"
)

const validateUsage = "profilecheck validate <file|dir|glob>... [--watch] [--loose]"

func newValidateCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <file|dir|glob>...",
		Short: "Check that stereotype applications reference existing, applicable elements",
		Long: `Validate every stereotype application in one or more XMI documents.

An application is reported when its stereotype is unknown, when its target
element is not a package member, or when the stereotype does not apply to the
target's type. Directories are searched for *.xmi and *.uml files and glob
patterns support ** for nested directories.

Exit status is 1 when findings are reported (unless fail_on_findings is off),
4 when an input is missing and 5 when a document cannot be parsed.`,
		Example: `  # Validate one export
  profilecheck validate model.xmi

  # Validate every export below models/, re-running on change
  profilecheck validate 'models/**/*.xmi' --watch

  # Accept bare metaclass names for qualified types, JSON report
  profilecheck validate model.xmi --loose --format json`,
		GroupID: shared.GroupChecking,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return apperrors.MissingInputArgument(validateUsage)
			}
			if err := s.setup(cmd); err != nil {
				return err
			}
			format, err := s.format(cmd)
			if err != nil {
				return err
			}
			loose := s.cfg.LooseTypeMatch
			if cmd.Flags().Changed("loose") {
				loose, _ = cmd.Flags().GetBool("loose")
			}
			watching, _ := cmd.Flags().GetBool("watch")

			files, err := expandInputs(args)
			if err != nil {
				return err
			}

			v := &validateRun{
				session:  s,
				renderer: s.renderer(format),
				loose:    loose,
				out:      cmd.OutOrStdout(),
				errOut:   cmd.ErrOrStderr(),
			}

			if !watching {
				var results []report.Validation
				err := lifecycle.Run(s.handler, "validate", func() error {
					var err error
					results, err = v.check(files)
					return err
				})
				if err != nil {
					return err
				}
				return v.exitError(results)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return lifecycle.RunWithContext(ctx, s.handler, "validate --watch", func(ctx context.Context) error {
				return v.watch(ctx, files)
			})
		},
	}

	cmd.Flags().StringP("format", "f", "", "Output format: text, json or yaml (default from config)")
	cmd.Flags().Bool("loose", false, "Let qualified types such as Kernel::Class match the bare name Class")
	cmd.Flags().BoolP("watch", "w", false, "Re-validate documents when they change")
	return cmd
}

// validateRun checks documents and renders the results of one or more rounds.
type validateRun struct {
	*session
	renderer *report.Renderer
	loose    bool
	out      io.Writer
	errOut   io.Writer
}

// check validates files concurrently and renders the results in input order.
// Stage progress is only drawn for a single document.
func (v *validateRun) check(files []string) ([]report.Validation, error) {
	results := make([]report.Validation, len(files))
	showProgress := len(files) == 1

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		g.Go(func() error {
			results[i] = v.checkOne(path, showProgress)
			return nil
		})
	}
	_ = g.Wait()

	if err := v.renderer.Validations(v.out, results); err != nil {
		return results, err
	}
	return results, nil
}

func (v *validateRun) checkOne(path string, showProgress bool) report.Validation {
	result := report.Validation{Source: path}
	c := v.checker(v.loose)
	stages := v.stages(v.errOut, path, progress.StageParse, progress.StageValidate)
	if !showProgress {
		stages.display = nil
	}

	if err := stages.run(progress.StageParse, func() (string, error) {
		return "", c.Parse(path)
	}); err != nil {
		v.logger.Debug().Err(err).Str("file", path).Msg("parse failed")
		result.Err = err.Error()
		return result
	}

	_ = stages.run(progress.StageValidate, func() (string, error) {
		res, err := c.Validate()
		if err != nil {
			return "", err
		}
		result.Checked = res.Checked
		result.Findings = res.Findings
		return fmt.Sprintf("%d findings", len(res.Findings)), nil
	})
	return result
}

// exitError maps results to the command's exit status. A document that did
// not parse outranks findings.
func (v *validateRun) exitError(results []report.Validation) error {
	findings := false
	for _, r := range results {
		if r.Err != "" {
			return shared.NewExitError(shared.ExitParseFailed)
		}
		if len(r.Findings) > 0 {
			findings = true
		}
	}
	if findings && v.cfg.FailOnFindings {
		return shared.NewExitError(shared.ExitFindings)
	}
	return nil
}

func (v *validateRun) watch(ctx context.Context, files []string) error {
	if _, err := v.check(files); err != nil {
		return err
	}

	w, err := watch.New(files, watch.WithDebounce(v.debounce()), watch.WithLogger(v.logger))
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "failed to watch documents")
	}
	fmt.Fprintf(v.errOut, "Watching %d documents for changes (Ctrl+C to stop)\n", len(files))

	return w.Run(ctx, func(_ context.Context, changed []string) {
		fmt.Fprintln(v.out)
		if _, err := v.check(changed); err != nil {
			v.logger.Error().Err(err).Msg("failed to render results")
		}
	})
}
