package jsonconf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vmaxlab/expconf/internal/confpath"
	"github.com/vmaxlab/expconf/internal/document"
)

func load(t *testing.T, source string) (*document.Node, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return New().Load(context.Background(), path)
}

func leaf(t *testing.T, tree *document.Node, raw string) *document.Node {
	t.Helper()
	path, err := confpath.Parse(raw)
	require.NoError(t, err)
	node, ok := tree.Get(path)
	require.True(t, ok, "path %s not found", raw)
	require.False(t, node.IsMap(), "path %s is a section", raw)
	return node
}

func literal(t *testing.T, tree *document.Node, raw string) cty.Value {
	t.Helper()
	node := leaf(t, tree, raw)
	value, diags := node.Expr().Value(nil)
	require.False(t, diags.HasErrors(), "path %s is not a static value: %s", raw, diags.Error())
	return value
}

func TestLoad_NestedObjectsBecomeSections(t *testing.T) {
	t.Parallel()

	tree, err := load(t, `{
  "seed": 7,
  "reward_config": {
    "overlap": {"weight": 1.0}
  }
}`)
	require.NoError(t, err)

	assert.True(t, literal(t, tree, "seed").RawEquals(cty.NumberIntVal(7)))
	assert.True(t, literal(t, tree, "reward_config.overlap.weight").RawEquals(cty.NumberIntVal(1)))
}

func TestLoad_CommentsAndTrailingCommas(t *testing.T) {
	t.Parallel()

	tree, err := load(t, `{
  // cadence
  "log_freq": 10,
  "save_freq": 20, /* checkpointing */
}`)
	require.NoError(t, err)

	assert.True(t, literal(t, tree, "log_freq").RawEquals(cty.NumberIntVal(10)))
	assert.True(t, literal(t, tree, "save_freq").RawEquals(cty.NumberIntVal(20)))
}

func TestLoad_InterpolationMarkerBecomesTemplate(t *testing.T) {
	t.Parallel()

	tree, err := load(t, `{
  "run_tag": "${algorithm.name}_base",
  "reward_type": "linear"
}`)
	require.NoError(t, err)

	tag := leaf(t, tree, "run_tag")
	assert.False(t, tag.Resolved())
	assert.Len(t, tag.Expr().Variables(), 1)

	assert.True(t, literal(t, tree, "reward_type").RawEquals(cty.StringVal("linear")))
}

func TestLoad_TopLevelMustBeObject(t *testing.T) {
	t.Parallel()

	_, err := load(t, `[1, 2, 3]`)
	assert.Error(t, err)
}

func TestLoad_ParseError(t *testing.T) {
	t.Parallel()

	_, err := load(t, `{"seed": }`)
	assert.Error(t, err)
}
