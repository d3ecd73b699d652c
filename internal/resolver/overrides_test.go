package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestParseSelector(t *testing.T) {
	t.Parallel()

	selector, err := ParseSelector("algorithm=sac")
	require.NoError(t, err)
	assert.Equal(t, "algorithm", selector.Group)
	assert.Equal(t, "sac", selector.Choice)

	for _, raw := range []string{"", "algorithm", "=sac", "algorithm="} {
		_, err := ParseSelector(raw)
		assert.Error(t, err, "selector %q should be rejected", raw)
	}
}

func TestParseOverride_ValueTyping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw  string
		want cty.Value
	}{
		{"seed=42", cty.NumberIntVal(42)},
		{"algorithm.learning_rate=0.001", cty.NumberFloatVal(0.001)},
		{"debug_flag=true", cty.True},
		{"cache_flag=FALSE", cty.False},
		{"reward_type=linear", cty.StringVal("linear")},
		{"name_run=", cty.StringVal("")},
		{"path_dataset=local_womd_training", cty.StringVal("local_womd_training")},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()
			override, err := ParseOverride(tc.raw)
			require.NoError(t, err)
			assert.True(t, override.Value.RawEquals(tc.want),
				"got %#v, want %#v", override.Value, tc.want)
		})
	}
}

func TestParseOverride_Invalid(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "seed", "=42", "a..b=1", "a b=1"} {
		_, err := ParseOverride(raw)
		assert.Error(t, err, "override %q should be rejected", raw)
	}
}

func TestSplitGroupChoice(t *testing.T) {
	t.Parallel()

	group, choice, err := splitGroupChoice("network/wayformer")
	require.NoError(t, err)
	assert.Equal(t, "network", group)
	assert.Equal(t, "wayformer", choice)

	for _, raw := range []string{"network", "/mlp", "network/"} {
		_, _, err := splitGroupChoice(raw)
		assert.Error(t, err, "entry %q should be rejected", raw)
	}
}
