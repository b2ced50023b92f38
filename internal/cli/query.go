package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/ariel-frischer/profilecheck/internal/checker"
	"github.com/ariel-frischer/profilecheck/internal/cli/shared"
	"github.com/ariel-frischer/profilecheck/internal/lifecycle"
	"github.com/ariel-frischer/profilecheck/internal/uml"
	"github.com/spf13/cobra"

	apperrors "github.com/ariel-frischer/profilecheck/internal/errors"
)

const queryUsage = "profilecheck query <file> <operation> [args...]"

// queryOp is one scripted query. It returns the lines to print.
type queryOp struct {
	args     []string
	validate bool
	run      func(c *checker.Checker, args []string) ([]string, error)
}

var queryOps = map[string]queryOp{
	"profiles-count": {
		run: func(c *checker.Checker, _ []string) ([]string, error) {
			return count(c.NumberOfProfiles())
		},
	},
	"profiles": {
		run: func(c *checker.Checker, _ []string) ([]string, error) {
			return c.ProfileIDs()
		},
	},
	"profile-property": {
		args: []string{"profile-id", "property"},
		run: func(c *checker.Checker, a []string) ([]string, error) {
			return line(c.ProfileProperty(a[0], a[1]))
		},
	},
	"stereotypes-count": {
		args: []string{"profile-id"},
		run: func(c *checker.Checker, a []string) ([]string, error) {
			return count(c.NumberOfStereotypes(a[0]))
		},
	},
	"stereotypes": {
		args: []string{"profile-id"},
		run: func(c *checker.Checker, a []string) ([]string, error) {
			return c.StereotypeIDs(a[0])
		},
	},
	"stereotype-property": {
		args: []string{"profile-id", "stereotype-id", "property"},
		run: func(c *checker.Checker, a []string) ([]string, error) {
			return line(c.StereotypeProperty(a[0], a[1], a[2]))
		},
	},
	"is-stereotype-type": {
		args: []string{"profile-id", "stereotype-id", "type"},
		run: func(c *checker.Checker, a []string) ([]string, error) {
			ok, err := c.IsStereotypeType(a[0], a[1], a[2])
			if err != nil {
				return nil, err
			}
			return []string{strconv.FormatBool(ok)}, nil
		},
	},
	"stereotype-type-size": {
		args: []string{"profile-id", "stereotype-id"},
		run: func(c *checker.Checker, a []string) ([]string, error) {
			return count(c.StereotypeTypeSize(a[0], a[1]))
		},
	},
	"stereotype-types": {
		args: []string{"profile-id", "stereotype-id"},
		run: func(c *checker.Checker, a []string) ([]string, error) {
			return c.StereotypeTypes(a[0], a[1])
		},
	},
	"packages-count": {
		run: func(c *checker.Checker, _ []string) ([]string, error) {
			return count(c.NumberOfPackages())
		},
	},
	"packages": {
		run: func(c *checker.Checker, _ []string) ([]string, error) {
			return c.PackageIDs()
		},
	},
	"package-property": {
		args: []string{"package-id", "property"},
		run: func(c *checker.Checker, a []string) ([]string, error) {
			return line(c.PackageProperty(a[0], a[1]))
		},
	},
	"members-count": {
		args: []string{"package-id"},
		run: func(c *checker.Checker, a []string) ([]string, error) {
			return count(c.NumberOfMembers(a[0]))
		},
	},
	"members": {
		args: []string{"package-id"},
		run: func(c *checker.Checker, a []string) ([]string, error) {
			return c.MemberKeys(a[0])
		},
	},
	"member-property": {
		args: []string{"package-id", "member", "property"},
		run: func(c *checker.Checker, a []string) ([]string, error) {
			return line(c.MemberProperty(a[0], a[1], a[2]))
		},
	},
	"applications-count": {
		run: func(c *checker.Checker, _ []string) ([]string, error) {
			return count(c.NumberOfApplications())
		},
	},
	"application-property": {
		args: []string{"index", "property"},
		run: func(c *checker.Checker, a []string) ([]string, error) {
			i, err := index(a[0])
			if err != nil {
				return nil, err
			}
			return line(c.ApplicationProperty(i, a[1]))
		},
	},
	"findings-count": {
		validate: true,
		run: func(c *checker.Checker, _ []string) ([]string, error) {
			return count(c.NumberOfFindings())
		},
	},
	"finding-message": {
		args:     []string{"index"},
		validate: true,
		run: func(c *checker.Checker, a []string) ([]string, error) {
			i, err := index(a[0])
			if err != nil {
				return nil, err
			}
			return line(c.FindingMessage(i))
		},
	},
	"findings": {
		validate: true,
		run: func(c *checker.Checker, _ []string) ([]string, error) {
			model, err := c.Model()
			if err != nil {
				return nil, err
			}
			out := []string{}
			for _, f := range model.Findings() {
				out = append(out, f.Message)
			}
			return out, nil
		},
	},
}

func queryNames() []string {
	names := make([]string, 0, len(queryOps))
	for name := range queryOps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func newQueryCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <file> <operation> [args...]",
		Short: "Answer one question about a document, for scripts",
		Long: `Parse a document and print the answer to a single query, one value per line.

Operations:
  ` + strings.Join(queryHelp(), "\n  ") + `

Properties are name, id, visibility, order, owner and, depending on the
element, type, types, stereotype, stereotypeName, target and metaclass.
Finding queries validate the document first.`,
		Example: `  # How many profiles does the export declare?
  profilecheck query model.xmi profiles-count

  # Can a stereotype be applied to Class?
  profilecheck query model.xmi is-stereotype-type PROFILE_ID STEREOTYPE_ID Class

  # The first finding
  profilecheck query model.xmi finding-message 0`,
		GroupID: shared.GroupChecking,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return apperrors.NewArgumentErrorWithUsage("query needs a document and an operation", queryUsage,
					"Available operations: "+strings.Join(queryNames(), ", "))
			}
			path, name, opArgs := args[0], args[1], args[2:]
			op, ok := queryOps[name]
			if !ok {
				return apperrors.UnknownQuery(name, queryNames())
			}
			if len(opArgs) != len(op.args) {
				return apperrors.NewArgumentErrorWithUsage(
					fmt.Sprintf("%s takes %d arguments, got %d", name, len(op.args), len(opArgs)),
					opUsage(name, op))
			}
			if err := s.setup(cmd); err != nil {
				return err
			}

			return lifecycle.Run(s.handler, "query", func() error {
				if _, err := os.Stat(path); err != nil {
					return apperrors.MissingInputFile(path)
				}
				c := s.checker(s.cfg.LooseTypeMatch)
				if err := c.Parse(path); err != nil {
					return apperrors.ParseFailed(path, err)
				}
				if op.validate {
					if _, err := c.Validate(); err != nil {
						return err
					}
				}

				lines, err := op.run(c, opArgs)
				if err != nil {
					return queryError(name, err)
				}
				out := cmd.OutOrStdout()
				for _, l := range lines {
					fmt.Fprintln(out, l)
				}
				return nil
			})
		},
	}
	return cmd
}

func queryHelp() []string {
	var help []string
	for _, name := range queryNames() {
		help = append(help, opUsage(name, queryOps[name]))
	}
	return help
}

func opUsage(name string, op queryOp) string {
	if len(op.args) == 0 {
		return name
	}
	return name + " <" + strings.Join(op.args, "> <") + ">"
}

func queryError(name string, err error) error {
	switch {
	case errors.Is(err, checker.ErrNotFound):
		return apperrors.NewArgumentError(fmt.Sprintf("%s: %v", name, err),
			"List valid ids with the profiles, stereotypes, packages or members queries")
	case errors.Is(err, uml.ErrUnknownProperty):
		return apperrors.NewArgumentError(fmt.Sprintf("%s: %v", name, err),
			"See 'profilecheck query --help' for the property names")
	}
	return err
}

func count(n int, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	return []string{strconv.Itoa(n)}, nil
}

func line(v string, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	return []string{v}, nil
}

func index(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil || i < 0 {
		return 0, apperrors.NewArgumentError(fmt.Sprintf("invalid index %q", s), "Indexes start at 0")
	}
	return i, nil
}
