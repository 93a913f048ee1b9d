package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/relcalc/internal/testutil"
	"github.com/leapstack-labs/relcalc/pkg/algebra"
	"github.com/leapstack-labs/relcalc/pkg/notation"
)

func TestRegistry_Defaults(t *testing.T) {
	r := New(testutil.NewTestLogger(t))

	assert.Equal(t, []string{"A", "B", "C", "U"}, r.SetNames())
	assert.Equal(t, []string{"E", "R"}, r.RelationNames())
	assert.Equal(t, 16, r.Universe().Len())

	a, err := r.Set("a")
	require.NoError(t, err, "lookups are case-insensitive")
	assert.Equal(t, "{1, a, b}", notation.FormatSet(a))

	rel, err := r.Relation("R")
	require.NoError(t, err)
	assert.Equal(t, 9, rel.Len())
}

func TestRegistry_DefaultsAreIndependent(t *testing.T) {
	r1 := New(nil)
	r2 := New(nil)

	require.NoError(t, r1.DefineSet("X", algebra.NewSet(algebra.Int(1))))
	assert.True(t, r1.Exists(KindSet, "X"))
	assert.False(t, r2.Exists(KindSet, "X"))
}

func TestRegistry_ProtectedNames(t *testing.T) {
	r := New(testutil.NewTestLogger(t))

	tests := []struct {
		name      string
		kind      Kind
		key       string
		protected bool
	}{
		{"universe", KindSet, "U", true},
		{"lowercase universe", KindSet, "u", true},
		{"set A", KindSet, "A", true},
		{"relation E", KindRelation, "E", true},
		{"relation R", KindRelation, "r", true},
		{"E is only protected as a relation", KindSet, "E", false},
		{"U is only protected as a set", KindRelation, "U", false},
		{"free name", KindSet, "D", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.protected, IsProtected(tt.kind, tt.key))

			var err error
			if tt.kind == KindSet {
				err = r.DefineSet(tt.key, algebra.Set{})
			} else {
				err = r.DefineRelation(tt.key, algebra.Relation{})
			}
			if !tt.protected {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrProtectedName)
			var pe *ProtectedNameError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, strings.ToUpper(tt.key), pe.Name)
		})
	}

	u, err := r.Set("U")
	require.NoError(t, err)
	assert.Equal(t, 16, u.Len(), "protected entries stay untouched")
}

func TestRegistry_Overwrite(t *testing.T) {
	r := New(testutil.NewTestLogger(t))

	require.NoError(t, r.DefineSet("d", algebra.NewSet(algebra.Int(1))))
	require.NoError(t, r.DefineSet("D", algebra.NewSet(algebra.Int(2), algebra.Int(3))))

	d, err := r.Set("D")
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())
	assert.Equal(t, 5, r.Count(KindSet))
}

func TestRegistry_NotFound(t *testing.T) {
	r := New(nil)

	_, err := r.Set("missing")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"MISSING"`)

	_, err = r.Relation("A")
	assert.ErrorIs(t, err, ErrNotFound, "A is a set, not a relation")
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"simple", "X", ""},
		{"underscores and digits", "my_set_2", ""},
		{"unicode letters", "ñandú", ""},
		{"empty", "  ", "cannot be empty"},
		{"only underscores", "__", "at least one letter"},
		{"dash", "my-set", "letters, digits and underscores"},
		{"space", "my set", "letters, digits and underscores"},
		{"too long", strings.Repeat("a", MaxNameLength+1), "longer than 20"},
		{"max length", strings.Repeat("a", MaxNameLength), ""},
		{"too long once upper-cased", strings.Repeat("ß", 11), "longer than 20"},
		{"upper-cased within limit", strings.Repeat("ß", 10), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, notation.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRegistry_CheckDefineRejectsBadNames(t *testing.T) {
	r := New(nil)
	err := r.DefineRelation("bad name", algebra.Relation{})
	require.ErrorIs(t, err, notation.ErrValidation)
	assert.False(t, r.Exists(KindRelation, "bad name"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "ABC_1", Normalize("  abc_1 "))
	assert.Equal(t, "ÑANDÚ", Normalize("ñandú"))
	assert.Equal(t, "STRASSE", Normalize("straße"))
}
