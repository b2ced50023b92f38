// Package report renders parsed models and validation results as text, JSON
// or YAML.
package report

import "github.com/ariel-frischer/profilecheck/internal/uml"

// Document is the serializable view of one parsed model.
type Document struct {
	Source       string        `json:"source,omitempty" yaml:"source,omitempty"`
	Profiles     []Profile     `json:"profiles" yaml:"profiles"`
	Packages     []Package     `json:"packages" yaml:"packages"`
	Applications []Application `json:"applications" yaml:"applications"`
	Validated    bool          `json:"validated" yaml:"validated"`
	Findings     []uml.Finding `json:"findings" yaml:"findings"`
}

// Profile is a profile and its stereotypes.
type Profile struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Visibility  string       `json:"visibility" yaml:"visibility"`
	Order       int          `json:"order" yaml:"order"`
	Owner       string       `json:"owner,omitempty" yaml:"owner,omitempty"`
	Stereotypes []Stereotype `json:"stereotypes" yaml:"stereotypes"`
}

// Stereotype is a stereotype and the metaclasses it applies to.
type Stereotype struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Visibility string   `json:"visibility" yaml:"visibility"`
	Order      int      `json:"order" yaml:"order"`
	Types      []string `json:"types" yaml:"types"`
}

// Package is a package and its direct members.
type Package struct {
	ID         string   `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Visibility string   `json:"visibility" yaml:"visibility"`
	Order      int      `json:"order" yaml:"order"`
	Owner      string   `json:"owner,omitempty" yaml:"owner,omitempty"`
	Members    []Member `json:"members" yaml:"members"`
}

// Member is one package member.
type Member struct {
	ID         string `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Visibility string `json:"visibility" yaml:"visibility"`
	Type       string `json:"type" yaml:"type"`
	Order      int    `json:"order" yaml:"order"`
}

// Application is one stereotype application with its resolution state.
type Application struct {
	ID                 string `json:"id,omitempty" yaml:"id,omitempty"`
	StereotypeName     string `json:"stereotype_name" yaml:"stereotype_name"`
	Stereotype         string `json:"stereotype" yaml:"stereotype"`
	StereotypeResolved bool   `json:"stereotype_resolved" yaml:"stereotype_resolved"`
	Target             string `json:"target" yaml:"target"`
	TargetResolved     bool   `json:"target_resolved" yaml:"target_resolved"`
	Metaclass          string `json:"metaclass" yaml:"metaclass"`
	Line               int    `json:"line,omitempty" yaml:"line,omitempty"`
}

// FromModel builds the Document for m. Findings stay nil unless the model was
// validated, so an unvalidated model renders null rather than an empty list.
func FromModel(source string, m *uml.Model, validated bool) Document {
	doc := Document{
		Source:       source,
		Profiles:     []Profile{},
		Packages:     []Package{},
		Applications: []Application{},
		Validated:    validated,
	}
	if m == nil {
		return doc
	}

	for _, p := range m.Profiles() {
		out := Profile{
			ID:          p.ID,
			Name:        p.Name,
			Visibility:  p.Visibility.String(),
			Order:       p.Order,
			Owner:       p.OwnerID,
			Stereotypes: []Stereotype{},
		}
		for _, s := range p.Stereotypes() {
			out.Stereotypes = append(out.Stereotypes, Stereotype{
				ID:         s.ID,
				Name:       s.Name,
				Visibility: s.Visibility.String(),
				Order:      s.Order,
				Types:      s.Types(),
			})
		}
		doc.Profiles = append(doc.Profiles, out)
	}

	for _, p := range m.Packages() {
		out := Package{
			ID:         p.ID,
			Name:       p.Name,
			Visibility: p.Visibility.String(),
			Order:      p.Order,
			Owner:      p.OwnerID,
			Members:    []Member{},
		}
		for _, mem := range p.Members() {
			out.Members = append(out.Members, Member{
				ID:         mem.ID,
				Name:       mem.Name,
				Visibility: mem.Visibility.String(),
				Type:       mem.Type,
				Order:      mem.Order,
			})
		}
		doc.Packages = append(doc.Packages, out)
	}

	for _, a := range m.Applications() {
		doc.Applications = append(doc.Applications, Application{
			ID:                 a.ID,
			StereotypeName:     a.AppliedName(),
			Stereotype:         a.Stereotype.ID,
			StereotypeResolved: a.Stereotype.Resolved,
			Target:             a.Target.ID,
			TargetResolved:     a.Target.Resolved,
			Metaclass:          a.Metaclass,
			Line:               a.Line,
		})
	}

	if validated {
		doc.Findings = m.Findings()
		if doc.Findings == nil {
			doc.Findings = []uml.Finding{}
		}
	}
	return doc
}

// Validation is the result of checking one document. Err is set instead of
// Findings when the document could not be parsed.
type Validation struct {
	Source   string        `json:"source" yaml:"source"`
	Checked  int           `json:"checked" yaml:"checked"`
	Findings []uml.Finding `json:"findings" yaml:"findings"`
	Err      string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// Failed reports whether the document had findings or did not parse.
func (v Validation) Failed() bool {
	return v.Err != "" || len(v.Findings) > 0
}
