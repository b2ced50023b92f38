package xmi

import "github.com/ariel-frischer/profilecheck/internal/uml"

// wire is the second pass: every collected application is resolved against
// the finished id index and added to the model in document order. Unresolved
// sides are kept, unresolved, for validation to report.
func (p *parser) wire() {
	for _, pending := range p.pending {
		app := pending.app
		var stereo *uml.Stereotype
		app.Stereotype, stereo = p.stereotypeRef(pending)
		if stereo != nil {
			app.StereotypeName = stereo.Name
		}

		if _, ok := p.refs.Member(app.Target.ID); ok {
			app.Target.Resolved = true
		}

		if !app.Stereotype.Resolved || !app.Target.Resolved {
			p.opts.Logger.Debug().
				Str("application", app.ID).
				Str("stereotype", app.Stereotype.ID).
				Bool("stereotype_resolved", app.Stereotype.Resolved).
				Str("target", app.Target.ID).
				Bool("target_resolved", app.Target.Resolved).
				Msg("unresolved application reference")
		}
		p.model.AddApplication(app)
	}
	p.pending = nil
}

// stereotypeRef resolves the stereotype of an application. An explicit
// stereotype id wins; otherwise the element name is matched against
// stereotype names, preferring the profile named by the tag prefix. The
// stereotype is nil when the reference does not resolve.
func (p *parser) stereotypeRef(pending pendingApplication) (uml.Ref, *uml.Stereotype) {
	if pending.stereotypeID != "" {
		s, ok := p.refs.Stereotype(pending.stereotypeID)
		return uml.Ref{ID: pending.stereotypeID, Resolved: ok}, s
	}

	name := pending.app.Name
	var fallback *uml.Stereotype
	for _, profile := range p.model.Profiles() {
		for _, s := range profile.Stereotypes() {
			if s.Name != name {
				continue
			}
			if pending.prefix == "" || profile.Name == pending.prefix {
				return uml.Ref{ID: s.ID, Resolved: true}, s
			}
			if fallback == nil {
				fallback = s
			}
		}
	}
	if fallback != nil {
		return uml.Ref{ID: fallback.ID, Resolved: true}, fallback
	}

	unresolved := name
	if pending.prefix != "" {
		unresolved = pending.prefix + ":" + name
	}
	return uml.Ref{ID: unresolved}, nil
}
