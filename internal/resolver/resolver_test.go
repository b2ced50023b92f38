package resolver

import (
	"errors"
	"testing"

	"github.com/ariel-frischer/profilecheck/internal/uml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_RegisterAndResolve(t *testing.T) {
	t.Parallel()

	r := New()
	stereo := uml.NewStereotype(uml.Element{Name: "S", ID: "S1"})
	member := &uml.Member{Element: uml.Element{Name: "M", ID: "M1"}, Type: "Class"}

	require.NoError(t, r.Register("S1", StereotypeRef(stereo)))
	require.NoError(t, r.Register("M1", MemberRef(member)))
	assert.Equal(t, 2, r.Len())

	ref, ok := r.Resolve("S1")
	require.True(t, ok)
	assert.Equal(t, KindStereotype, ref.Kind)
	assert.Same(t, stereo, ref.Stereotype)

	_, ok = r.Resolve("missing")
	assert.False(t, ok)
}

func TestResolver_KindChecked(t *testing.T) {
	t.Parallel()

	r := New()
	member := &uml.Member{Element: uml.Element{ID: "M1"}}
	require.NoError(t, r.Register("M1", MemberRef(member)))

	_, ok := r.Stereotype("M1")
	assert.False(t, ok, "a member id must not resolve as a stereotype")

	got, ok := r.Member("M1")
	require.True(t, ok)
	assert.Same(t, member, got)

	_, ok = r.Member("nope")
	assert.False(t, ok)
}

func TestResolver_Duplicates(t *testing.T) {
	t.Parallel()

	r := New()
	pkg := uml.NewPackage(uml.Element{ID: "K1"})
	require.NoError(t, r.Register("K1", PackageRef(pkg)))

	t.Run("same element is idempotent", func(t *testing.T) {
		assert.NoError(t, r.Register("K1", PackageRef(pkg)))
	})

	t.Run("different element fails", func(t *testing.T) {
		err := r.Register("K1", ProfileRef(uml.NewProfile(uml.Element{ID: "K1"})))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDuplicateID))
		assert.Contains(t, err.Error(), "package")
	})
}

func TestResolver_ZeroValue(t *testing.T) {
	t.Parallel()

	var r Resolver
	_, ok := r.Resolve("x")
	assert.False(t, ok)
	require.NoError(t, r.Register("x", PackageRef(uml.NewPackage(uml.Element{ID: "x"}))))
	assert.Equal(t, 1, r.Len())
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "profile", KindProfile.String())
	assert.Equal(t, "stereotype", KindStereotype.String())
	assert.Equal(t, "package", KindPackage.String())
	assert.Equal(t, "member", KindMember.String())
	assert.Equal(t, "unknown", Kind(0).String())
}
