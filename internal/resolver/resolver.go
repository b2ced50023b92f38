// Package resolver maps document-local identifiers to the model elements that
// own them, so references can be wired after the whole document is scanned.
package resolver

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/profilecheck/internal/uml"
)

// ErrDuplicateID is returned when an id is registered for two different elements.
var ErrDuplicateID = errors.New("duplicate id")

// Kind tags the element a Ref points at.
type Kind int

const (
	KindProfile Kind = iota + 1
	KindStereotype
	KindPackage
	KindMember
)

// String returns the lowercase element kind name.
func (k Kind) String() string {
	switch k {
	case KindProfile:
		return "profile"
	case KindStereotype:
		return "stereotype"
	case KindPackage:
		return "package"
	case KindMember:
		return "member"
	default:
		return "unknown"
	}
}

// Ref is a tagged reference to exactly one element; only the field matching
// Kind is set.
type Ref struct {
	Kind       Kind
	Profile    *uml.Profile
	Stereotype *uml.Stereotype
	Package    *uml.Package
	Member     *uml.Member
}

// ProfileRef tags p as a profile reference.
func ProfileRef(p *uml.Profile) Ref { return Ref{Kind: KindProfile, Profile: p} }

// StereotypeRef tags s as a stereotype reference.
func StereotypeRef(s *uml.Stereotype) Ref { return Ref{Kind: KindStereotype, Stereotype: s} }

// PackageRef tags p as a package reference.
func PackageRef(p *uml.Package) Ref { return Ref{Kind: KindPackage, Package: p} }

// MemberRef tags m as a member reference.
func MemberRef(m *uml.Member) Ref { return Ref{Kind: KindMember, Member: m} }

// Resolver is a single id → Ref mapping built while a document is scanned.
// The zero value is ready to use.
type Resolver struct {
	refs map[string]Ref
}

// New creates an empty resolver.
func New() *Resolver {
	return &Resolver{refs: make(map[string]Ref)}
}

// Register records that id maps to ref. Registering the same element twice is
// a no-op; registering a different element under a known id fails.
func (r *Resolver) Register(id string, ref Ref) error {
	if r.refs == nil {
		r.refs = make(map[string]Ref)
	}
	if existing, ok := r.refs[id]; ok {
		if existing == ref {
			return nil
		}
		return fmt.Errorf("%w %q: already registered as %s", ErrDuplicateID, id, existing.Kind)
	}
	r.refs[id] = ref
	return nil
}

// Resolve looks up a registered id. A missing id is a dangling reference, not
// an error; the caller decides what it means.
func (r *Resolver) Resolve(id string) (Ref, bool) {
	ref, ok := r.refs[id]
	return ref, ok
}

// Stereotype resolves id and requires it to name a stereotype.
func (r *Resolver) Stereotype(id string) (*uml.Stereotype, bool) {
	ref, ok := r.refs[id]
	if !ok || ref.Kind != KindStereotype {
		return nil, false
	}
	return ref.Stereotype, true
}

// Member resolves id and requires it to name a package member.
func (r *Resolver) Member(id string) (*uml.Member, bool) {
	ref, ok := r.refs[id]
	if !ok || ref.Kind != KindMember {
		return nil, false
	}
	return ref.Member, true
}

// Len returns the number of registered ids.
func (r *Resolver) Len() int {
	return len(r.refs)
}
