package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format is an output format.
type Format string

// Supported formats.
const (
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case Text, JSON, YAML:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format %q", name)
}

// Renderer writes documents and validation results in one format.
type Renderer struct {
	format  Format
	heading *color.Color
	dim     *color.Color
	ok      *color.Color
	bad     *color.Color
}

// NewRenderer returns a Renderer for format. useColor only affects Text.
func NewRenderer(format Format, useColor bool) *Renderer {
	r := &Renderer{
		format:  format,
		heading: color.New(color.FgCyan, color.Bold),
		dim:     color.New(color.Faint),
		ok:      color.New(color.FgGreen),
		bad:     color.New(color.FgRed),
	}
	for _, c := range []*color.Color{r.heading, r.dim, r.ok, r.bad} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Document writes one parsed model.
func (r *Renderer) Document(w io.Writer, doc Document) error {
	switch r.format {
	case JSON:
		return writeJSON(w, doc)
	case YAML:
		return writeYAML(w, doc)
	}
	return r.documentText(w, doc)
}

// Validations writes the results of checking one or more documents.
func (r *Renderer) Validations(w io.Writer, results []Validation) error {
	switch r.format {
	case JSON:
		return writeJSON(w, results)
	case YAML:
		return writeYAML(w, results)
	}
	return r.validationsText(w, results)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Renderer) documentText(w io.Writer, doc Document) error {
	var sb strings.Builder
	if doc.Source != "" {
		sb.WriteString(r.heading.Sprint(doc.Source))
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "%s (%d)\n", r.heading.Sprint("Profiles"), len(doc.Profiles))
	for _, p := range doc.Profiles {
		fmt.Fprintf(&sb, "  %s %s %s\n", p.Name, r.dim.Sprintf("[%s]", p.ID), p.Visibility)
		for _, s := range p.Stereotypes {
			fmt.Fprintf(&sb, "    %s %s types: %s\n", s.Name, r.dim.Sprintf("[%s]", s.ID), joinOrNone(s.Types))
		}
	}

	fmt.Fprintf(&sb, "%s (%d)\n", r.heading.Sprint("Packages"), len(doc.Packages))
	for _, p := range doc.Packages {
		fmt.Fprintf(&sb, "  %s %s %s\n", p.Name, r.dim.Sprintf("[%s]", p.ID), p.Visibility)
		for _, m := range p.Members {
			name := m.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", name, r.dim.Sprintf("[%s]", m.ID), m.Type)
		}
	}

	fmt.Fprintf(&sb, "%s (%d)\n", r.heading.Sprint("Applications"), len(doc.Applications))
	for i, a := range doc.Applications {
		stereo := a.StereotypeName
		if !a.StereotypeResolved {
			stereo = r.bad.Sprint(stereo + "?")
		}
		target := a.Target
		if !a.TargetResolved {
			target = r.bad.Sprint(target + "?")
		}
		fmt.Fprintf(&sb, "  %d. %s on %s (base_%s)\n", i, stereo, target, a.Metaclass)
	}

	if doc.Validated {
		fmt.Fprintf(&sb, "%s (%d)\n", r.heading.Sprint("Findings"), len(doc.Findings))
		for _, f := range doc.Findings {
			fmt.Fprintf(&sb, "  %s\n", r.bad.Sprint(f.Error()))
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *Renderer) validationsText(w io.Writer, results []Validation) error {
	var sb strings.Builder
	failed := 0
	for _, v := range results {
		switch {
		case v.Err != "":
			failed++
			fmt.Fprintf(&sb, "%s %s: %s\n", r.bad.Sprint("FAIL"), v.Source, v.Err)
		case len(v.Findings) > 0:
			failed++
			fmt.Fprintf(&sb, "%s %s: %s\n", r.bad.Sprint("FAIL"), v.Source, plural(len(v.Findings), "finding"))
			for _, f := range v.Findings {
				fmt.Fprintf(&sb, "    %s %s\n", r.dim.Sprintf("[%s]", f.Code), f.Error())
			}
		default:
			fmt.Fprintf(&sb, "%s %s: %s checked\n", r.ok.Sprint("ok"), v.Source, plural(v.Checked, "application"))
		}
	}
	if len(results) > 1 {
		fmt.Fprintf(&sb, "\n%d of %d documents passed\n", len(results)-failed, len(results))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
