// Package uml holds the in-memory model reconstructed from an XMI export:
// profiles with their stereotypes, packages with their members, the
// stereotype applications that bind the two, and the findings recorded by
// validation.
package uml

import (
	"errors"
	"fmt"
)

// ErrUnknownVisibility is returned when a visibility token is not one of
// public, private, protected or package.
var ErrUnknownVisibility = errors.New("unknown visibility")

// Visibility is a UML visibility kind.
type Visibility int

const (
	// Public is the UML default when an element declares no visibility.
	Public Visibility = iota
	Private
	Protected
	PackageVisibility
)

var visibilityTokens = map[string]Visibility{
	"public":    Public,
	"private":   Private,
	"protected": Protected,
	"package":   PackageVisibility,
}

// ParseVisibility converts a visibility token. The match is case-sensitive.
func ParseVisibility(token string) (Visibility, error) {
	v, ok := visibilityTokens[token]
	if !ok {
		return Public, fmt.Errorf("%w: %q", ErrUnknownVisibility, token)
	}
	return v, nil
}

// String returns the document token for the visibility.
func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case Private:
		return "private"
	case Protected:
		return "protected"
	case PackageVisibility:
		return "package"
	default:
		return fmt.Sprintf("visibility(%d)", int(v))
	}
}

// MarshalText implements encoding.TextMarshaler so reports render the token.
func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
