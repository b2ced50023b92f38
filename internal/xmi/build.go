package xmi

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/ariel-frischer/profilecheck/internal/resolver"
	"github.com/ariel-frischer/profilecheck/internal/uml"
)

// nodeKind is what a document element means to the model. The same tag
// (ownedMember, packagedElement) can be any of these depending on its
// attributes, so every start element is classified once and dispatched on.
type nodeKind int

const (
	nodeOther nodeKind = iota
	nodeExtension
	nodeApplication
	nodeProfile
	nodeStereotype
	nodePackage
	nodeMember
	nodeBaseProperty
	nodeTypeRef
	nodeReferenceExtension
)

// frame is one open element. Only the field matching kind is set.
type frame struct {
	kind       nodeKind
	profile    *uml.Profile
	stereotype *uml.Stereotype
	pkg        *uml.Package
	base       *baseProperty
}

// baseProperty is a stereotype's base_<Metaclass> attribute being read.
type baseProperty struct {
	stereotype *uml.Stereotype
	metaclass  string
	href       string
	found      bool
}

// pendingApplication is an application collected in the first pass and
// wired in the second.
type pendingApplication struct {
	app *uml.StereotypeApplication
	// stereotypeID is an explicit stereotype="<id>" reference, if any.
	stereotypeID string
	// prefix is the namespace prefix of the element tag, usually the
	// profile name.
	prefix string
}

func (p *parser) start(se xml.StartElement, line, col int) error {
	p.recordPrefixes(se)

	kind := p.classify(se)
	f := frame{kind: kind}
	var err error

	switch kind {
	case nodeProfile:
		f.profile, err = p.startProfile(se, line, col)
	case nodeStereotype:
		f.stereotype, err = p.startStereotype(se, line, col)
	case nodePackage:
		f.pkg, err = p.startPackage(se, line, col)
	case nodeMember:
		err = p.startMember(se, line, col)
	case nodeApplication:
		err = p.startApplication(se, line, col)
	case nodeBaseProperty:
		f.base = p.startBaseProperty(se)
	case nodeTypeRef:
		if base := p.currentBase(); base != nil {
			base.href, _ = attr(se, "href")
		}
	case nodeReferenceExtension:
		if base := p.currentBase(); base != nil {
			if path, ok := attr(se, "referentPath"); ok && path != "" {
				base.stereotype.AddType(path)
				base.found = true
			}
		}
	}
	if err != nil {
		return err
	}

	// A container that could not be created degrades to a plain frame so its
	// children are not attached to the wrong parent.
	if (kind == nodeProfile && f.profile == nil) ||
		(kind == nodeStereotype && f.stereotype == nil) ||
		(kind == nodePackage && f.pkg == nil) {
		f.kind = nodeOther
	}

	p.stack = append(p.stack, f)
	return nil
}

func (p *parser) end() {
	if len(p.stack) == 0 {
		return
	}
	f := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]

	if f.kind == nodeBaseProperty && f.base != nil && !f.base.found {
		// No referentPath: fall back to the metamodel href, then to the
		// metaclass named by the attribute itself.
		name := hrefTypeName(f.base.href)
		if name == "" {
			name = f.base.metaclass
		}
		f.base.stereotype.AddType(name)
	}
}

func (p *parser) classify(se xml.StartElement) nodeKind {
	if isXMINamespace(se.Name.Space) && se.Name.Local == "Extension" {
		return nodeExtension
	}
	if se.Name.Local == "referenceExtension" {
		if p.currentBase() != nil {
			return nodeReferenceExtension
		}
		return nodeOther
	}
	if p.inExtension() {
		return nodeOther
	}
	if _, _, ok := baseAttr(se); ok {
		return nodeApplication
	}
	if se.Name.Local == "type" && p.currentBase() != nil {
		return nodeTypeRef
	}

	typ := elementType(se)
	if typ == "" {
		return nodeOther
	}
	container := p.container()

	switch typ {
	case "Profile":
		return nodeProfile
	case "Stereotype":
		return nodeStereotype
	case "Model", "Package":
		// The model root is a package too: elements placed directly under it
		// are its members.
		if container.kind == nodeProfile || container.kind == nodeStereotype {
			return nodeOther
		}
		return nodePackage
	case "Property":
		name, _ := attr(se, "name")
		if container.kind == nodeStereotype && strings.HasPrefix(name, basePrefix) && len(name) > len(basePrefix) {
			return nodeBaseProperty
		}
	}

	if container.kind != nodePackage {
		return nodeOther
	}
	if name, _ := attr(se, "name"); elementID(se) == "" && name == "" {
		return nodeOther
	}
	return nodeMember
}

// container returns the nearest open profile, stereotype or package frame.
func (p *parser) container() frame {
	for i := len(p.stack) - 1; i >= 0; i-- {
		switch p.stack[i].kind {
		case nodeProfile, nodeStereotype, nodePackage:
			return p.stack[i]
		}
	}
	return frame{kind: nodeOther}
}

// nearest returns the innermost open frame of the given kind.
func (p *parser) nearest(kind nodeKind) (frame, bool) {
	for i := len(p.stack) - 1; i >= 0; i-- {
		if p.stack[i].kind == kind {
			return p.stack[i], true
		}
	}
	return frame{}, false
}

// currentBase returns the base_ property being read, if the innermost
// container is one.
func (p *parser) currentBase() *baseProperty {
	for i := len(p.stack) - 1; i >= 0; i-- {
		switch p.stack[i].kind {
		case nodeBaseProperty:
			return p.stack[i].base
		case nodeProfile, nodeStereotype, nodePackage, nodeMember, nodeApplication:
			return nil
		}
	}
	return nil
}

func (p *parser) inExtension() bool {
	_, ok := p.nearest(nodeExtension)
	return ok
}

func (p *parser) startProfile(se xml.StartElement, line, col int) (*uml.Profile, error) {
	el, err := p.element(se, line, col)
	if err != nil {
		return nil, err
	}
	if el.ID == "" {
		p.opts.Logger.Debug().Str("name", el.Name).Int("line", line).Msg("skipping profile without id")
		return nil, nil
	}

	profile := uml.NewProfile(el)
	if owner, ok := p.nearest(nodePackage); ok {
		profile.OwnerID = owner.pkg.ID
	}
	if err := p.refs.Register(el.ID, resolver.ProfileRef(profile)); err != nil {
		return nil, err
	}
	if err := p.model.AddProfile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (p *parser) startStereotype(se xml.StartElement, line, col int) (*uml.Stereotype, error) {
	el, err := p.element(se, line, col)
	if err != nil {
		return nil, err
	}
	owner, ok := p.nearest(nodeProfile)
	if !ok {
		p.opts.Logger.Debug().Str("id", el.ID).Int("line", line).Msg("skipping stereotype declared outside a profile")
		return nil, nil
	}
	if el.ID == "" {
		p.opts.Logger.Debug().Str("name", el.Name).Int("line", line).Msg("skipping stereotype without id")
		return nil, nil
	}

	stereo := uml.NewStereotype(el)
	if err := p.refs.Register(el.ID, resolver.StereotypeRef(stereo)); err != nil {
		return nil, err
	}
	if err := owner.profile.AddStereotype(stereo); err != nil {
		return nil, err
	}
	return stereo, nil
}

func (p *parser) startPackage(se xml.StartElement, line, col int) (*uml.Package, error) {
	el, err := p.element(se, line, col)
	if err != nil {
		return nil, err
	}
	if el.ID == "" {
		p.opts.Logger.Debug().Str("name", el.Name).Int("line", line).Msg("skipping package without id")
		return nil, nil
	}

	pkg := uml.NewPackage(el)
	if owner, ok := p.nearest(nodePackage); ok {
		pkg.OwnerID = owner.pkg.ID
	}
	if err := p.refs.Register(el.ID, resolver.PackageRef(pkg)); err != nil {
		return nil, err
	}
	if err := p.model.AddPackage(pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (p *parser) startMember(se xml.StartElement, line, col int) error {
	el, err := p.element(se, line, col)
	if err != nil {
		return err
	}
	owner := p.container()
	member := &uml.Member{Element: el, Type: elementType(se)}

	if el.ID == "" {
		// Name-keyed members are best effort: a clash is skipped, not fatal.
		if err := owner.pkg.AddMember(member); err != nil {
			p.opts.Logger.Debug().Err(err).Int("line", line).Msg("skipping member without id")
		}
		return nil
	}

	if err := p.refs.Register(el.ID, resolver.MemberRef(member)); err != nil {
		return err
	}
	return owner.pkg.AddMember(member)
}

func (p *parser) startApplication(se xml.StartElement, line, col int) error {
	el, err := p.element(se, line, col)
	if err != nil {
		return err
	}
	metaclass, target, _ := baseAttr(se)
	el.Name = se.Name.Local

	app := &uml.StereotypeApplication{
		Element:   el,
		Target:    uml.Ref{ID: target},
		Metaclass: metaclass,
	}
	pending := pendingApplication{app: app, prefix: p.prefixes[se.Name.Space]}
	if pending.prefix == "" && se.Name.Space != "" && !strings.Contains(se.Name.Space, "/") {
		// unbound prefix kept verbatim by encoding/xml
		pending.prefix = se.Name.Space
	}
	pending.stereotypeID, _ = attr(se, "stereotype")

	p.pending = append(p.pending, pending)
	return nil
}

func (p *parser) startBaseProperty(se xml.StartElement) *baseProperty {
	owner, ok := p.nearest(nodeStereotype)
	if !ok {
		return nil
	}
	name, _ := attr(se, "name")
	return &baseProperty{
		stereotype: owner.stereotype,
		metaclass:  strings.TrimPrefix(name, basePrefix),
	}
}

// String renders a frame kind for debug output.
func (k nodeKind) String() string {
	switch k {
	case nodeExtension:
		return "extension"
	case nodeApplication:
		return "application"
	case nodeProfile:
		return "profile"
	case nodeStereotype:
		return "stereotype"
	case nodePackage:
		return "package"
	case nodeMember:
		return "member"
	case nodeBaseProperty:
		return "base-property"
	case nodeTypeRef:
		return "type-ref"
	case nodeReferenceExtension:
		return "reference-extension"
	default:
		return fmt.Sprintf("other(%d)", int(k))
	}
}
