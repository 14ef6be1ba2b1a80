package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World!", "hello-world"},
		{"  Trim Spaces  ", "trim-spaces"},
		{"My First Post!", "my-first-post"},
		{"Fußball", "fuball"},
		{"Turnen & Gymnastik", "turnen-gymnastik"},
		{"a--b---c", "a-b-c"},
		{"--leading and trailing--", "leading-and-trailing"},
		{"UPPER case 123", "upper-case-123"},
		{"!!!", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Hello World!", "Abteilung Fußball 2024", "a & b", "  x  "}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "Slugify should be idempotent for %q", in)
	}
}

// mapLookup backs the allocator with a fixed slug -> id set.
func mapLookup(taken map[string]uint) Lookup {
	return func(s string) (uint, bool, error) {
		id, ok := taken[s]
		return id, ok, nil
	}
}

func TestGenerateUniqueFreeBase(t *testing.T) {
	s, err := GenerateUnique("Hello World", 0, mapLookup(map[string]uint{}))
	require.NoError(t, err)
	assert.Equal(t, "hello-world", s)
}

func TestGenerateUniqueProbesSuffixes(t *testing.T) {
	taken := map[string]uint{"foo": 1, "foo-2": 2}

	s, err := GenerateUnique("Foo", 0, mapLookup(taken))
	require.NoError(t, err)
	assert.Equal(t, "foo-3", s)

	// Allocation is read-only: probing again without persisting the
	// result yields the same candidate.
	s2, err := GenerateUnique("Foo", 0, mapLookup(taken))
	require.NoError(t, err)
	assert.Equal(t, s, s2)
}

func TestGenerateUniqueSelfExclusion(t *testing.T) {
	taken := map[string]uint{"foo": 7}

	s, err := GenerateUnique("Foo", 7, mapLookup(taken))
	require.NoError(t, err)
	assert.Equal(t, "foo", s, "a row must not collide with its own slug")

	s, err = GenerateUnique("Foo", 8, mapLookup(taken))
	require.NoError(t, err)
	assert.Equal(t, "foo-2", s)
}

func TestGenerateUniqueEmptyBase(t *testing.T) {
	_, err := GenerateUnique("!!!", 0, mapLookup(map[string]uint{}))
	require.Error(t, err)
}

func TestGenerateUniqueRetryCap(t *testing.T) {
	// A lookup that reports every candidate as taken must not spin
	// forever.
	alwaysTaken := func(string) (uint, bool, error) { return 99, true, nil }
	_, err := GenerateUnique("Foo", 0, alwaysTaken)
	require.Error(t, err)
}
