// Package xmi reads an XMI export of a UML model into a uml.Model.
//
// Parsing runs in two passes. The first pass streams the document and builds
// profiles, stereotypes, packages and members, registering every id with a
// resolver; stereotype applications are only collected. The second pass wires
// each collected application to its stereotype and target through the
// resolver, so references work regardless of document order.
package xmi

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/profilecheck/internal/resolver"
	"github.com/ariel-frischer/profilecheck/internal/uml"
	"golang.org/x/net/html/charset"
)

// ParseFile reads and parses the document at path.
func ParseFile(path string, opts ...Option) (*uml.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	model, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return model, nil
}

// ParseBytes parses an in-memory document.
func ParseBytes(data []byte, opts ...Option) (*uml.Model, error) {
	return Parse(bytes.NewReader(data), opts...)
}

// Parse reads a document from r. On error no model is returned.
func Parse(r io.Reader, opts ...Option) (*uml.Model, error) {
	o := buildOptions(opts)
	p := &parser{
		opts:     o,
		model:    uml.NewModel(),
		refs:     resolver.New(),
		prefixes: make(map[string]string),
	}

	dec := xml.NewDecoder(&limitedReader{r: r, n: o.MaxBytes})
	dec.CharsetReader = charset.NewReaderLabel
	p.dec = dec

	if err := p.build(); err != nil {
		return nil, err
	}
	p.wire()

	o.Logger.Debug().
		Int("profiles", len(p.model.Profiles())).
		Int("packages", len(p.model.Packages())).
		Int("applications", len(p.model.Applications())).
		Int("ids", p.refs.Len()).
		Msg("parsed document")
	return p.model, nil
}

// parser holds the state of one Parse call.
type parser struct {
	opts  Options
	dec   *xml.Decoder
	model *uml.Model
	refs  *resolver.Resolver

	stack   []frame
	pending []pendingApplication
	sawRoot bool
	// prefixes maps namespace URIs to the prefix they were declared with.
	prefixes map[string]string
}

// build is the first pass: structural construction.
func (p *parser) build() error {
	for {
		line, col := p.dec.InputPos()
		tok, err := p.dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return p.readError(err, line, col)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			p.sawRoot = true
			if len(p.stack) >= p.opts.MaxDepth {
				return &ParseError{Line: line, Column: col, Err: fmt.Errorf("%w: limit %d", ErrTooDeep, p.opts.MaxDepth)}
			}
			if err := p.start(t, line, col); err != nil {
				return &ParseError{Line: line, Column: col, Err: err}
			}
		case xml.EndElement:
			p.end()
		}
	}

	if !p.sawRoot {
		return &ParseError{Err: fmt.Errorf("%w: no root element", ErrMalformed)}
	}
	return nil
}

func (p *parser) readError(err error, line, col int) error {
	var syntax *xml.SyntaxError
	if errors.As(err, &syntax) {
		return &ParseError{Line: syntax.Line, Err: fmt.Errorf("%w: %s", ErrMalformed, syntax.Msg)}
	}
	if errors.Is(err, ErrDocumentTooLarge) {
		return &ParseError{Line: line, Column: col, Err: fmt.Errorf("%w: limit %d bytes", ErrDocumentTooLarge, p.opts.MaxBytes)}
	}
	return &ParseError{Line: line, Column: col, Err: fmt.Errorf("reading document: %w", err)}
}

// element reads the attributes shared by every model element.
func (p *parser) element(se xml.StartElement, line, col int) (uml.Element, error) {
	e := uml.Element{ID: elementID(se), Line: line, Column: col}
	e.Name, _ = attr(se, "name")
	if token, ok := attr(se, "visibility"); ok {
		v, err := uml.ParseVisibility(token)
		if err != nil {
			return e, fmt.Errorf("element %q: %w", e.ID, err)
		}
		e.Visibility = v
	}
	return e, nil
}

// recordPrefixes remembers xmlns declarations so applications written as
// <Profile:Stereotype> can be matched to a profile by prefix.
func (p *parser) recordPrefixes(se xml.StartElement) {
	for _, a := range se.Attr {
		if a.Name.Space == "xmlns" {
			p.prefixes[a.Value] = a.Name.Local
		}
	}
}
