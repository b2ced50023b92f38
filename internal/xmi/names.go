package xmi

import (
	"encoding/xml"
	"strings"
)

const basePrefix = "base_"

// isXMINamespace reports whether space is the XMI namespace, either as a
// bound URI (any XMI version) or as an unbound "xmi" prefix.
func isXMINamespace(space string) bool {
	return space == "xmi" || strings.Contains(space, "XMI")
}

// isUMLNamespace reports whether space is a UML metamodel namespace
// (OMG, MagicDraw or Eclipse UML2 URIs) or an unbound "uml" prefix.
func isUMLNamespace(space string) bool {
	if space == "uml" {
		return true
	}
	lower := strings.ToLower(space)
	return strings.Contains(lower, "/uml/") || strings.Contains(lower, "/uml2/") || strings.HasSuffix(lower, "/uml")
}

// attr returns the value of an unqualified attribute.
func attr(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// xmiAttr returns the value of an xmi-qualified attribute such as xmi:id.
func xmiAttr(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == local && isXMINamespace(a.Name.Space) {
			return a.Value, true
		}
	}
	return "", false
}

// elementID returns xmi:id, falling back to a plain id attribute.
func elementID(se xml.StartElement) string {
	if id, ok := xmiAttr(se, "id"); ok {
		return id
	}
	id, _ := attr(se, "id")
	return id
}

// elementType returns the UML metaclass of an element: the local part of
// xmi:type ("uml:Class" -> "Class"), or the tag name of an element in the
// UML namespace (<uml:Model>).
func elementType(se xml.StartElement) string {
	if t, ok := xmiAttr(se, "type"); ok {
		if i := strings.IndexByte(t, ':'); i >= 0 {
			return t[i+1:]
		}
		return t
	}
	if isUMLNamespace(se.Name.Space) {
		return se.Name.Local
	}
	return ""
}

// baseAttr returns the first base_<Metaclass> attribute of an element.
func baseAttr(se xml.StartElement) (metaclass, target string, ok bool) {
	for _, a := range se.Attr {
		if a.Name.Space == "" && strings.HasPrefix(a.Name.Local, basePrefix) && len(a.Name.Local) > len(basePrefix) {
			return strings.TrimPrefix(a.Name.Local, basePrefix), a.Value, true
		}
	}
	return "", "", false
}

// hrefTypeName extracts a metaclass name from a metamodel href such as
// "http://www.omg.org/spec/UML/20110701/UML.xmi#Class". Fragments that are
// element ids (MagicDraw "_9_0_..." style) yield "".
func hrefTypeName(href string) string {
	i := strings.LastIndexByte(href, '#')
	if i < 0 || i == len(href)-1 {
		return ""
	}
	frag := href[i+1:]
	if strings.HasPrefix(frag, "_") {
		return ""
	}
	return frag
}
