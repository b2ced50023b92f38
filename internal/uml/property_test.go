package uml

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperty(t *testing.T) {
	t.Parallel()

	profile := NewProfile(Element{Name: "P", ID: "P1", Visibility: Public})
	stereo := NewStereotype(Element{Name: "S", ID: "S1", Visibility: Private})
	stereo.AddType("Class")
	require.NoError(t, profile.AddStereotype(stereo))
	member := &Member{Element: Element{Name: "M", ID: "M1", Visibility: Protected}, Type: "Class"}
	app := &StereotypeApplication{
		Element:    Element{Name: "S", ID: "A1"},
		Stereotype: Ref{ID: "S1", Resolved: true},
		Target:     Ref{ID: "M1", Resolved: true},
		Metaclass:  "Class",
	}
	renamed := &StereotypeApplication{
		Element:        Element{Name: "application", ID: "A2"},
		Stereotype:     Ref{ID: "S1", Resolved: true},
		StereotypeName: "Entity",
	}

	tests := map[string]struct {
		elem any
		prop string
		want string
	}{
		"profile name":          {elem: profile, prop: "name", want: "P"},
		"profile stereotypes":   {elem: profile, prop: "stereotypes", want: "1"},
		"stereotype visibility": {elem: stereo, prop: "visibility", want: "private"},
		"stereotype order":      {elem: stereo, prop: "order", want: "0"},
		"stereotype types":      {elem: stereo, prop: "types", want: "Class"},
		"stereotype profile":    {elem: stereo, prop: "profile", want: "P1"},
		"member type":           {elem: member, prop: "type", want: "Class"},
		"member visibility":     {elem: member, prop: "visibility", want: "protected"},
		"application stereo":    {elem: app, prop: "stereotype", want: "S1"},
		"application target":    {elem: app, prop: "target", want: "M1"},
		"application metaclass": {elem: app, prop: "metaclass", want: "Class"},
		"application tag name":  {elem: app, prop: "stereotypeName", want: "S"},
		"application resolved":  {elem: renamed, prop: "stereotypeName", want: "Entity"},
		"finding message":       {elem: Finding{Message: "m"}, prop: "message", want: "m"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := Property(tt.elem, tt.prop)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProperty_Unknown(t *testing.T) {
	t.Parallel()

	_, err := Property(&Member{}, "colour")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownProperty))

	_, err = Property(nil, "name")
	assert.True(t, errors.Is(err, ErrUnknownProperty))

	_, err = Property(42, "name")
	assert.True(t, errors.Is(err, ErrUnknownProperty))
}
