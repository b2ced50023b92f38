// Package checker is the query surface over one parsed profile document:
// element counts, property reads by id or index, validation and findings.
// A Checker holds at most one model; Parse replaces it and Reset drops it.
//
// A Checker is not safe for concurrent use.
package checker

import (
	"errors"
	"fmt"
	"io"

	"github.com/ariel-frischer/profilecheck/internal/uml"
	"github.com/ariel-frischer/profilecheck/internal/validation"
	"github.com/ariel-frischer/profilecheck/internal/xmi"
	"github.com/rs/zerolog"
)

var (
	// ErrNotParsed is returned by queries made before a successful Parse.
	ErrNotParsed = errors.New("no document parsed")
	// ErrNotFound is returned when an id or index names no element.
	ErrNotFound = errors.New("not found")
)

// Checker parses a document and answers queries about it.
type Checker struct {
	parseOpts     []xmi.Option
	validator     *validation.Validator
	validatorOpts []validation.Option

	model     *uml.Model
	validated bool
}

// Option configures a Checker.
type Option func(*Checker)

// WithParseOptions passes options through to the parser.
func WithParseOptions(opts ...xmi.Option) Option {
	return func(c *Checker) {
		c.parseOpts = append(c.parseOpts, opts...)
	}
}

// WithValidator replaces the default validator. Options given to the Checker
// that affect validation, such as WithLogger, are applied to a copy of v.
func WithValidator(v *validation.Validator) Option {
	return func(c *Checker) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithLogger sets the logger for both parsing and validation.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Checker) {
		c.parseOpts = append(c.parseOpts, xmi.WithLogger(l))
		c.validatorOpts = append(c.validatorOpts, validation.WithLogger(l))
	}
}

// New creates an empty Checker. Without WithValidator types are matched
// exactly.
func New(opts ...Option) *Checker {
	c := &Checker{}
	for _, opt := range opts {
		opt(c)
	}
	if c.validator == nil {
		c.validator = validation.New(c.validatorOpts...)
	} else if len(c.validatorOpts) > 0 {
		c.validator = c.validator.With(c.validatorOpts...)
	}
	return c
}

// Parse reads the document at path. On failure the previous model is dropped
// and queries return ErrNotParsed.
func (c *Checker) Parse(path string) error {
	c.Reset()
	model, err := xmi.ParseFile(path, c.parseOpts...)
	if err != nil {
		return err
	}
	c.model = model
	return nil
}

// ParseReader is Parse for an already open document.
func (c *Checker) ParseReader(r io.Reader) error {
	c.Reset()
	model, err := xmi.Parse(r, c.parseOpts...)
	if err != nil {
		return err
	}
	c.model = model
	return nil
}

// Reset drops the current model and its findings.
func (c *Checker) Reset() {
	c.model = nil
	c.validated = false
}

// Model returns the parsed model.
func (c *Checker) Model() (*uml.Model, error) {
	if c.model == nil {
		return nil, ErrNotParsed
	}
	return c.model, nil
}

// Validate checks the model's applications and appends the findings to it.
// Each call appends a new round of findings.
func (c *Checker) Validate() (validation.Result, error) {
	if c.model == nil {
		return validation.Result{}, ErrNotParsed
	}
	res := c.validator.Validate(c.model)
	c.validated = true
	return res, nil
}

// Validated reports whether Validate ran on the current model. An empty
// findings list only means "consistent" when this is true.
func (c *Checker) Validated() bool {
	return c.validated
}

// NumberOfProfiles returns the number of profiles in the document.
func (c *Checker) NumberOfProfiles() (int, error) {
	if c.model == nil {
		return 0, ErrNotParsed
	}
	return len(c.model.Profiles()), nil
}

// ProfileIDs lists profile ids in document order.
func (c *Checker) ProfileIDs() ([]string, error) {
	if c.model == nil {
		return nil, ErrNotParsed
	}
	profiles := c.model.Profiles()
	ids := make([]string, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}
	return ids, nil
}

// ProfileProperty reads a property of a profile.
func (c *Checker) ProfileProperty(profileID, prop string) (string, error) {
	p, err := c.profile(profileID)
	if err != nil {
		return "", err
	}
	return uml.Property(p, prop)
}

// NumberOfStereotypes returns the number of stereotypes in a profile.
func (c *Checker) NumberOfStereotypes(profileID string) (int, error) {
	p, err := c.profile(profileID)
	if err != nil {
		return 0, err
	}
	return len(p.Stereotypes()), nil
}

// StereotypeIDs lists the stereotype ids of a profile in document order.
func (c *Checker) StereotypeIDs(profileID string) ([]string, error) {
	p, err := c.profile(profileID)
	if err != nil {
		return nil, err
	}
	stereos := p.Stereotypes()
	ids := make([]string, len(stereos))
	for i, s := range stereos {
		ids[i] = s.ID
	}
	return ids, nil
}

// StereotypeProperty reads a property of a stereotype within a profile.
func (c *Checker) StereotypeProperty(profileID, stereotypeID, prop string) (string, error) {
	s, err := c.stereotype(profileID, stereotypeID)
	if err != nil {
		return "", err
	}
	return uml.Property(s, prop)
}

// IsStereotypeType reports whether typ is one of the stereotype's declared
// applicable types. The comparison is exact.
func (c *Checker) IsStereotypeType(profileID, stereotypeID, typ string) (bool, error) {
	s, err := c.stereotype(profileID, stereotypeID)
	if err != nil {
		return false, err
	}
	return s.HasType(typ), nil
}

// StereotypeTypeSize returns how many distinct types a stereotype declares.
func (c *Checker) StereotypeTypeSize(profileID, stereotypeID string) (int, error) {
	s, err := c.stereotype(profileID, stereotypeID)
	if err != nil {
		return 0, err
	}
	return s.TypeCount(), nil
}

// StereotypeTypes lists a stereotype's declared types, sorted.
func (c *Checker) StereotypeTypes(profileID, stereotypeID string) ([]string, error) {
	s, err := c.stereotype(profileID, stereotypeID)
	if err != nil {
		return nil, err
	}
	return s.Types(), nil
}

// NumberOfPackages returns the number of packages in the document, nested
// packages included.
func (c *Checker) NumberOfPackages() (int, error) {
	if c.model == nil {
		return 0, ErrNotParsed
	}
	return len(c.model.Packages()), nil
}

// PackageIDs lists package ids in document order.
func (c *Checker) PackageIDs() ([]string, error) {
	if c.model == nil {
		return nil, ErrNotParsed
	}
	pkgs := c.model.Packages()
	ids := make([]string, len(pkgs))
	for i, p := range pkgs {
		ids[i] = p.ID
	}
	return ids, nil
}

// PackageProperty reads a property of a package.
func (c *Checker) PackageProperty(packageID, prop string) (string, error) {
	p, err := c.pkg(packageID)
	if err != nil {
		return "", err
	}
	return uml.Property(p, prop)
}

// NumberOfMembers returns the number of members owned directly by a package.
func (c *Checker) NumberOfMembers(packageID string) (int, error) {
	p, err := c.pkg(packageID)
	if err != nil {
		return 0, err
	}
	return len(p.Members()), nil
}

// MemberKeys lists the keys of a package's members in document order. A key
// is the member id, or its name when it has none.
func (c *Checker) MemberKeys(packageID string) ([]string, error) {
	p, err := c.pkg(packageID)
	if err != nil {
		return nil, err
	}
	members := p.Members()
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = m.Key()
	}
	return keys, nil
}

// MemberProperty reads a property of a package member.
func (c *Checker) MemberProperty(packageID, memberKey, prop string) (string, error) {
	p, err := c.pkg(packageID)
	if err != nil {
		return "", err
	}
	m, ok := p.Member(memberKey)
	if !ok {
		return "", fmt.Errorf("member %q in package %q: %w", memberKey, packageID, ErrNotFound)
	}
	return uml.Property(m, prop)
}

// NumberOfApplications returns the number of stereotype applications.
func (c *Checker) NumberOfApplications() (int, error) {
	if c.model == nil {
		return 0, ErrNotParsed
	}
	return len(c.model.Applications()), nil
}

// ApplicationProperty reads a property of the index'th application in
// document order.
func (c *Checker) ApplicationProperty(index int, prop string) (string, error) {
	if c.model == nil {
		return "", ErrNotParsed
	}
	apps := c.model.Applications()
	if index < 0 || index >= len(apps) {
		return "", fmt.Errorf("application %d of %d: %w", index, len(apps), ErrNotFound)
	}
	return uml.Property(apps[index], prop)
}

// NumberOfFindings returns the number of findings recorded so far.
func (c *Checker) NumberOfFindings() (int, error) {
	if c.model == nil {
		return 0, ErrNotParsed
	}
	return len(c.model.Findings()), nil
}

// FindingMessage returns the message of the index'th finding in detection
// order.
func (c *Checker) FindingMessage(index int) (string, error) {
	if c.model == nil {
		return "", ErrNotParsed
	}
	findings := c.model.Findings()
	if index < 0 || index >= len(findings) {
		return "", fmt.Errorf("finding %d of %d: %w", index, len(findings), ErrNotFound)
	}
	return findings[index].Message, nil
}

func (c *Checker) profile(id string) (*uml.Profile, error) {
	if c.model == nil {
		return nil, ErrNotParsed
	}
	p, ok := c.model.Profile(id)
	if !ok {
		return nil, fmt.Errorf("profile %q: %w", id, ErrNotFound)
	}
	return p, nil
}

func (c *Checker) stereotype(profileID, id string) (*uml.Stereotype, error) {
	p, err := c.profile(profileID)
	if err != nil {
		return nil, err
	}
	s, ok := p.Stereotype(id)
	if !ok {
		return nil, fmt.Errorf("stereotype %q in profile %q: %w", id, profileID, ErrNotFound)
	}
	return s, nil
}

func (c *Checker) pkg(id string) (*uml.Package, error) {
	if c.model == nil {
		return nil, ErrNotParsed
	}
	p, ok := c.model.Package(id)
	if !ok {
		return nil, fmt.Errorf("package %q: %w", id, ErrNotFound)
	}
	return p, nil
}
