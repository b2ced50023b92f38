package uml

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownProperty is returned by Property for a name the element does not carry.
var ErrUnknownProperty = errors.New("unknown property")

// Property reads a named attribute of a model element as a string. It serves
// scripted callers that address attributes by name.
func Property(elem any, name string) (string, error) {
	switch e := elem.(type) {
	case *Profile:
		if v, ok := elementProperty(e.Element, name); ok {
			return v, nil
		}
		switch name {
		case "owner":
			return e.OwnerID, nil
		case "stereotypes":
			return strconv.Itoa(len(e.stereotypes)), nil
		}
	case *Stereotype:
		if v, ok := elementProperty(e.Element, name); ok {
			return v, nil
		}
		switch name {
		case "profile":
			return e.ProfileID, nil
		case "types":
			return strings.Join(e.Types(), ", "), nil
		}
	case *Package:
		if v, ok := elementProperty(e.Element, name); ok {
			return v, nil
		}
		switch name {
		case "owner":
			return e.OwnerID, nil
		case "members":
			return strconv.Itoa(len(e.members)), nil
		}
	case *Member:
		if v, ok := elementProperty(e.Element, name); ok {
			return v, nil
		}
		switch name {
		case "type":
			return e.Type, nil
		case "package":
			return e.PackageID, nil
		}
	case *StereotypeApplication:
		if v, ok := elementProperty(e.Element, name); ok {
			return v, nil
		}
		switch name {
		case "stereotype":
			return e.Stereotype.ID, nil
		case "stereotypeName":
			return e.AppliedName(), nil
		case "target":
			return e.Target.ID, nil
		case "metaclass":
			return e.Metaclass, nil
		}
	case Finding:
		switch name {
		case "code":
			return string(e.Code), nil
		case "message":
			return e.Message, nil
		case "application":
			return e.ApplicationID, nil
		}
	case nil:
		return "", fmt.Errorf("%w %q: nil element", ErrUnknownProperty, name)
	}
	return "", fmt.Errorf("%w %q for %T", ErrUnknownProperty, name, elem)
}

func elementProperty(e Element, name string) (string, bool) {
	switch name {
	case "name":
		return e.Name, true
	case "id":
		return e.ID, true
	case "visibility":
		return e.Visibility.String(), true
	case "order":
		return strconv.Itoa(e.Order), true
	case "line":
		return strconv.Itoa(e.Line), true
	}
	return "", false
}
