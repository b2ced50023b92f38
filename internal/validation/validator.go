// Package validation checks stereotype applications in a parsed model against
// the types their stereotypes declare, recording a finding for every violation.
package validation

import (
	"fmt"

	"github.com/ariel-frischer/profilecheck/internal/uml"
	"github.com/rs/zerolog"
)

// Validator checks the applications of a model. The zero value compares types
// exactly and logs nothing.
type Validator struct {
	loose  bool
	logger zerolog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithLooseTypes lets a qualified declaration such as "Kernel::Class" accept
// the bare metaclass name "Class". Without it a target type must equal a
// declared type exactly.
func WithLooseTypes(loose bool) Option {
	return func(v *Validator) {
		v.loose = loose
	}
}

// WithLogger sets the logger findings are reported to at debug level.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Validator) {
		v.logger = l
	}
}

// New creates a Validator.
func New(opts ...Option) *Validator {
	v := &Validator{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// With returns a copy of v with opts applied on top of its settings.
func (v *Validator) With(opts ...Option) *Validator {
	cp := *v
	for _, opt := range opts {
		opt(&cp)
	}
	return &cp
}

// Loose reports whether qualified types also match their final segment.
func (v *Validator) Loose() bool {
	return v.loose
}

// Result summarizes one Validate call.
type Result struct {
	// Checked is the number of applications examined.
	Checked int
	// Findings are the findings this call appended, in detection order.
	Findings []uml.Finding
}

// Valid reports whether the call found no problems.
func (r Result) Valid() bool {
	return len(r.Findings) == 0
}

// Validate checks every application of model in document order and appends a
// finding to the model for each violation. It never fails. Calling it again
// on the same model appends the same findings a second time; use
// Model.ClearFindings to start over.
func (v *Validator) Validate(model *uml.Model) Result {
	var res Result
	if model == nil {
		return res
	}

	for _, app := range model.Applications() {
		res.Checked++
		f, ok := v.check(model, app)
		if !ok {
			continue
		}
		model.AddFinding(f)
		res.Findings = append(res.Findings, f)
		v.logger.Debug().
			Str("code", string(f.Code)).
			Str("application", f.ApplicationID).
			Int("line", f.Line).
			Msg(f.Message)
	}
	return res
}

// check returns the finding for app, if it has one. At most one finding is
// produced per application: an unknown stereotype hides an unknown target.
func (v *Validator) check(model *uml.Model, app *uml.StereotypeApplication) (uml.Finding, bool) {
	finding := uml.Finding{ApplicationID: app.ID, Line: app.Line, Column: app.Column}

	stereo, ok := lookupStereotype(model, app.Stereotype)
	if !ok {
		finding.Code = uml.CodeUnknownStereotype
		finding.Message = fmt.Sprintf("application references unknown stereotype %q", app.Stereotype.ID)
		return finding, true
	}

	target, ok := lookupMember(model, app.Target)
	if !ok {
		finding.Code = uml.CodeUnknownElement
		finding.Message = fmt.Sprintf("application references unknown element %q", app.Target.ID)
		return finding, true
	}

	if stereo.AppliesTo(target.Type, v.loose) {
		return uml.Finding{}, false
	}
	finding.Code = uml.CodeTypeNotApplicable
	finding.Message = fmt.Sprintf("stereotype %q is not applicable to type %q", stereo.Name, target.Type)
	return finding, true
}

func lookupStereotype(model *uml.Model, ref uml.Ref) (*uml.Stereotype, bool) {
	if !ref.Resolved {
		return nil, false
	}
	return model.Stereotype(ref.ID)
}

func lookupMember(model *uml.Model, ref uml.Ref) (*uml.Member, bool) {
	if !ref.Resolved {
		return nil, false
	}
	return model.Member(ref.ID)
}
