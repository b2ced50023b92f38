package uml

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrDuplicateKey is returned when a container already holds an element
// under the same key.
var ErrDuplicateKey = errors.New("duplicate key")

// Element carries the attributes shared by every parsed model element.
type Element struct {
	Name       string
	ID         string
	Visibility Visibility
	// Order is the 0-based position of the element within its parent
	// container, in document order.
	Order  int
	Line   int
	Column int
}

// Stereotype is a named extension applicable to a set of UML metaclasses.
type Stereotype struct {
	Element
	ProfileID string

	types map[string]struct{}
}

// NewStereotype creates a stereotype with an empty applicable-type set.
func NewStereotype(e Element) *Stereotype {
	return &Stereotype{Element: e, types: make(map[string]struct{})}
}

// AddType adds a metaclass path to the applicable-type set. Duplicates collapse.
func (s *Stereotype) AddType(name string) {
	if s.types == nil {
		s.types = make(map[string]struct{})
	}
	s.types[name] = struct{}{}
}

// HasType reports whether name is in the applicable-type set, compared exactly.
func (s *Stereotype) HasType(name string) bool {
	_, ok := s.types[name]
	return ok
}

// TypeCount returns the number of distinct applicable types.
func (s *Stereotype) TypeCount() int {
	return len(s.types)
}

// Types returns the applicable types sorted lexically.
func (s *Stereotype) Types() []string {
	out := make([]string, 0, len(s.types))
	for t := range s.types {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// AppliesTo reports whether the stereotype can decorate an element whose
// metaclass is metaclass. Types are compared exactly. With loose set, a
// qualified path such as "...::Kernel::Class" also matches its final
// segment "Class".
func (s *Stereotype) AppliesTo(metaclass string, loose bool) bool {
	if s.HasType(metaclass) {
		return true
	}
	if !loose {
		return false
	}
	for t := range s.types {
		if SimpleTypeName(t) == metaclass {
			return true
		}
	}
	return false
}

// SimpleTypeName returns the last "::" separated segment of a qualified
// metaclass path.
func SimpleTypeName(path string) string {
	if i := strings.LastIndex(path, "::"); i >= 0 {
		return path[i+2:]
	}
	return path
}

// Profile groups stereotypes. It owns them exclusively.
type Profile struct {
	Element
	// OwnerID is the id of the enclosing package, empty for profiles declared
	// at the document root.
	OwnerID string

	stereotypes []*Stereotype
	byID        map[string]*Stereotype
}

// NewProfile creates an empty profile.
func NewProfile(e Element) *Profile {
	return &Profile{Element: e, byID: make(map[string]*Stereotype)}
}

// AddStereotype appends s to the profile and assigns its order.
func (p *Profile) AddStereotype(s *Stereotype) error {
	if p.byID == nil {
		p.byID = make(map[string]*Stereotype)
	}
	if _, exists := p.byID[s.ID]; exists {
		return fmt.Errorf("%w: stereotype %q in profile %q", ErrDuplicateKey, s.ID, p.ID)
	}
	s.Order = len(p.stereotypes)
	s.ProfileID = p.ID
	p.stereotypes = append(p.stereotypes, s)
	p.byID[s.ID] = s
	return nil
}

// Stereotype looks up a stereotype by id.
func (p *Profile) Stereotype(id string) (*Stereotype, bool) {
	s, ok := p.byID[id]
	return s, ok
}

// Stereotypes returns the stereotypes in document order.
func (p *Profile) Stereotypes() []*Stereotype {
	return append([]*Stereotype(nil), p.stereotypes...)
}

// Member is any ownable model element inside a package.
type Member struct {
	Element
	// Type is the UML metaclass of the element, e.g. "Class" or "Property".
	Type      string
	PackageID string
}

// Key is the id of the member, or its name when the document gave it no id.
func (m *Member) Key() string {
	if m.ID != "" {
		return m.ID
	}
	return m.Name
}

// Package is a named container of members. It owns them exclusively.
type Package struct {
	Element
	// OwnerID is the id of the enclosing package, empty at the document root.
	OwnerID string

	members []*Member
	byKey   map[string]*Member
}

// NewPackage creates an empty package.
func NewPackage(e Element) *Package {
	return &Package{Element: e, byKey: make(map[string]*Member)}
}

// AddMember appends m to the package under m.Key() and assigns its order.
func (p *Package) AddMember(m *Member) error {
	if p.byKey == nil {
		p.byKey = make(map[string]*Member)
	}
	key := m.Key()
	if _, exists := p.byKey[key]; exists {
		return fmt.Errorf("%w: member %q in package %q", ErrDuplicateKey, key, p.ID)
	}
	m.Order = len(p.members)
	m.PackageID = p.ID
	p.members = append(p.members, m)
	p.byKey[key] = m
	return nil
}

// Member looks up a member by its key.
func (p *Package) Member(key string) (*Member, bool) {
	m, ok := p.byKey[key]
	return m, ok
}

// Members returns the members in document order.
func (p *Package) Members() []*Member {
	return append([]*Member(nil), p.members...)
}

// Ref is a weak by-id reference. Resolved records whether the id named an
// element of the expected kind when the document was wired.
type Ref struct {
	ID       string
	Resolved bool
}

// StereotypeApplication binds one stereotype to one member. It owns neither;
// both sides are looked up through the Model by id.
type StereotypeApplication struct {
	Element
	Stereotype Ref
	Target     Ref
	// Metaclass is the <Metaclass> part of the base_<Metaclass> attribute.
	Metaclass string
	// StereotypeName is the name of the resolved stereotype. It is empty
	// while the stereotype is unresolved.
	StereotypeName string
}

// AppliedName returns the name of the applied stereotype, or the element's
// tag name when the stereotype did not resolve.
func (a *StereotypeApplication) AppliedName() string {
	if a.StereotypeName != "" {
		return a.StereotypeName
	}
	return a.Name
}

// FindingCode classifies a validation finding.
type FindingCode string

const (
	// CodeUnknownStereotype marks an application whose stereotype id is unresolved.
	CodeUnknownStereotype FindingCode = "unknown-stereotype"
	// CodeUnknownElement marks an application whose target id is unresolved.
	CodeUnknownElement FindingCode = "unknown-element"
	// CodeTypeNotApplicable marks a target whose metaclass the stereotype does not declare.
	CodeTypeNotApplicable FindingCode = "type-not-applicable"
)

// Finding is a recorded validation diagnostic. It is data, not a fault.
type Finding struct {
	Code          FindingCode `json:"code" yaml:"code"`
	Message       string      `json:"message" yaml:"message"`
	ApplicationID string      `json:"application_id,omitempty" yaml:"application_id,omitempty"`
	Line          int         `json:"line,omitempty" yaml:"line,omitempty"`
	Column        int         `json:"column,omitempty" yaml:"column,omitempty"`
}

// Error formats the finding with its source position when known.
func (f Finding) Error() string {
	var sb strings.Builder
	if f.Line > 0 {
		sb.WriteString(fmt.Sprintf("line %d", f.Line))
		if f.Column > 0 {
			sb.WriteString(fmt.Sprintf(":%d", f.Column))
		}
		sb.WriteString(": ")
	}
	sb.WriteString(f.Message)
	return sb.String()
}

// Model is the aggregate of one parsed document. It exclusively owns every
// element and the findings list. It is not safe for concurrent mutation.
type Model struct {
	profiles     []*Profile
	profileByID  map[string]*Profile
	packages     []*Package
	packageByID  map[string]*Package
	applications []*StereotypeApplication
	findings     []Finding
}

// NewModel creates an empty model.
func NewModel() *Model {
	return &Model{
		profileByID: make(map[string]*Profile),
		packageByID: make(map[string]*Package),
	}
}

// AddProfile appends p and assigns its order.
func (m *Model) AddProfile(p *Profile) error {
	if _, exists := m.profileByID[p.ID]; exists {
		return fmt.Errorf("%w: profile %q", ErrDuplicateKey, p.ID)
	}
	p.Order = len(m.profiles)
	m.profiles = append(m.profiles, p)
	m.profileByID[p.ID] = p
	return nil
}

// Profile looks up a profile by id.
func (m *Model) Profile(id string) (*Profile, bool) {
	p, ok := m.profileByID[id]
	return p, ok
}

// Profiles returns the profiles in document order.
func (m *Model) Profiles() []*Profile {
	return append([]*Profile(nil), m.profiles...)
}

// AddPackage appends p and assigns its order.
func (m *Model) AddPackage(p *Package) error {
	if _, exists := m.packageByID[p.ID]; exists {
		return fmt.Errorf("%w: package %q", ErrDuplicateKey, p.ID)
	}
	p.Order = len(m.packages)
	m.packages = append(m.packages, p)
	m.packageByID[p.ID] = p
	return nil
}

// Package looks up a package by id.
func (m *Model) Package(id string) (*Package, bool) {
	p, ok := m.packageByID[id]
	return p, ok
}

// Packages returns the packages in document order.
func (m *Model) Packages() []*Package {
	return append([]*Package(nil), m.packages...)
}

// Stereotype finds a stereotype by id in any profile of the model.
func (m *Model) Stereotype(id string) (*Stereotype, bool) {
	for _, p := range m.profiles {
		if s, ok := p.Stereotype(id); ok {
			return s, true
		}
	}
	return nil, false
}

// Member finds a member by key in any package of the model.
func (m *Model) Member(key string) (*Member, bool) {
	for _, p := range m.packages {
		if mem, ok := p.Member(key); ok {
			return mem, true
		}
	}
	return nil, false
}

// AddApplication appends a and assigns its order.
func (m *Model) AddApplication(a *StereotypeApplication) {
	a.Order = len(m.applications)
	m.applications = append(m.applications, a)
}

// Applications returns the stereotype applications in document order.
func (m *Model) Applications() []*StereotypeApplication {
	return append([]*StereotypeApplication(nil), m.applications...)
}

// AddFinding appends a finding. The list is append-only.
func (m *Model) AddFinding(f Finding) {
	m.findings = append(m.findings, f)
}

// Findings returns the findings in detection order.
func (m *Model) Findings() []Finding {
	return append([]Finding(nil), m.findings...)
}

// ClearFindings drops every recorded finding so the model can be validated again.
func (m *Model) ClearFindings() {
	m.findings = nil
}
