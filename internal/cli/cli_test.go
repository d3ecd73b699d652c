package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vmaxlab/expconf/internal/testutil"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	config, shouldExit, err := Parse([]string{}, &testutil.SafeBuffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)

	assert.Equal(t, "conf/config.hcl", config.BasePath)
	assert.Equal(t, "conf", config.ConfDir)
	assert.Equal(t, ".", config.OutRoot)
	assert.False(t, config.PrintOnly)
	assert.Equal(t, "text", config.LogFormat)
	assert.Equal(t, "info", config.LogLevel)
	assert.Empty(t, config.Selectors)
	assert.Empty(t, config.Overrides)
}

func TestParse_SelectorsAndOverrides(t *testing.T) {
	t.Parallel()

	args := []string{
		"--set", "seed=42",
		"--set", "algorithm.learning_rate=0.001",
		"algorithm=sac",
		"network=wayformer",
	}
	config, shouldExit, err := Parse(args, &testutil.SafeBuffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)

	require.Len(t, config.Selectors, 2)
	assert.Equal(t, "algorithm", config.Selectors[0].Group)
	assert.Equal(t, "sac", config.Selectors[0].Choice)
	assert.Equal(t, "wayformer", config.Selectors[1].Choice)

	require.Len(t, config.Overrides, 2)
	assert.Equal(t, "seed", config.Overrides[0].Path.String())
	assert.True(t, config.Overrides[0].Value.RawEquals(cty.NumberIntVal(42)))
}

func TestParse_ShorthandConfigWins(t *testing.T) {
	t.Parallel()

	config, _, err := Parse([]string{"--config", "a.hcl", "-c", "b.hcl"}, &testutil.SafeBuffer{})
	require.NoError(t, err)
	assert.Equal(t, "b.hcl", config.BasePath)
}

func TestParse_PrintConfig(t *testing.T) {
	t.Parallel()

	config, _, err := Parse([]string{"--print-config"}, &testutil.SafeBuffer{})
	require.NoError(t, err)
	assert.True(t, config.PrintOnly)
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	output := &testutil.SafeBuffer{}
	config, shouldExit, err := Parse([]string{"--help"}, output)
	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, config)
	assert.Contains(t, output.String(), "GROUP=CHOICE")
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--bogus"}},
		{"invalid log format", []string{"--log-format", "xml"}},
		{"invalid log level", []string{"--log-level", "verbose"}},
		{"invalid selector", []string{"algorithm"}},
		{"invalid override", []string{"--set", "=42"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := Parse(tc.args, &testutil.SafeBuffer{})
			require.Error(t, err)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
		})
	}
}
