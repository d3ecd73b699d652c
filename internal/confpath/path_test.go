package confpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_RoundTrips(t *testing.T) {
	t.Parallel()

	cases := []string{
		"seed",
		"reward_config.progression.weight",
		"observation_config.objects.features[2]",
		"network.encoder.type",
	}
	for _, raw := range cases {
		raw := raw
		t.Run(raw, func(t *testing.T) {
			t.Parallel()
			path, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, path.String())
		})
	}
}

func TestParse_Indexed(t *testing.T) {
	t.Parallel()

	path, err := Parse("termination_keys[1]")
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Equal(t, "termination_keys", path[0].Name)
	assert.True(t, path[0].HasIndex())
	assert.Equal(t, 1, path[0].Index)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		".",
		"a..b",
		"a.",
		"1abc",
		"a.b[x]",
		"a b",
	}
	for _, raw := range cases {
		raw := raw
		t.Run(raw, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(raw)
			assert.Error(t, err)
		})
	}
}

func TestChild_DoesNotMutateParent(t *testing.T) {
	t.Parallel()

	parent := Root("reward_config")
	a := parent.Child("overlap")
	b := parent.Child("offroad")

	assert.Equal(t, "reward_config.overlap", a.String())
	assert.Equal(t, "reward_config.offroad", b.String())
	assert.Equal(t, "reward_config", parent.String())
}

func TestEqual(t *testing.T) {
	t.Parallel()

	a, err := Parse("a.b[1].c")
	require.NoError(t, err)
	b, err := Parse("a.b[1].c")
	require.NoError(t, err)
	c, err := Parse("a.b[2].c")
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
