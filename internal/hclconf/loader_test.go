package hclconf

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
	path := filepath.Join(t.TempDir(), "doc.hcl")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return New().Load(context.Background(), path)
}

func get(t *testing.T, tree *document.Node, raw string) *document.Node {
	t.Helper()
	path, err := confpath.Parse(raw)
	require.NoError(t, err)
	node, ok := tree.Get(path)
	require.True(t, ok, "path %s not found", raw)
	return node
}

func literal(t *testing.T, tree *document.Node, raw string) cty.Value {
	t.Helper()
	node := get(t, tree, raw)
	require.False(t, node.IsMap(), "path %s is a section", raw)
	value, diags := node.Expr().Value(nil)
	require.False(t, diags.HasErrors(), "path %s is not a static value: %s", raw, diags.Error())
	return value
}

func TestLoad_AttributesAndBlocks(t *testing.T) {
	t.Parallel()

	tree, err := load(t, `
seed = 7
reward_type = "linear"

reward_config {
  overlap {
    weight = 1.0
  }
}
`)
	require.NoError(t, err)

	assert.True(t, literal(t, tree, "seed").RawEquals(cty.NumberIntVal(7)))
	assert.True(t, literal(t, tree, "reward_type").RawEquals(cty.StringVal("linear")))
	assert.True(t, get(t, tree, "reward_config.overlap").IsMap())
	assert.True(t, literal(t, tree, "reward_config.overlap.weight").RawEquals(cty.NumberFloatVal(1.0)))
}

func TestLoad_LabeledBlocksNest(t *testing.T) {
	t.Parallel()

	tree, err := load(t, `
observation_config "objects" {
  num_closest_objects = 8
}
`)
	require.NoError(t, err)

	assert.True(t, literal(t, tree, "observation_config.objects.num_closest_objects").RawEquals(cty.NumberIntVal(8)))
}

func TestLoad_RepeatedBlocksMerge(t *testing.T) {
	t.Parallel()

	tree, err := load(t, `
reward_config {
  overlap {
    weight = 1.0
  }
}

reward_config {
  offroad {
    weight = 0.5
  }
}
`)
	require.NoError(t, err)

	assert.True(t, literal(t, tree, "reward_config.overlap.weight").RawEquals(cty.NumberFloatVal(1.0)))
	assert.True(t, literal(t, tree, "reward_config.offroad.weight").RawEquals(cty.NumberFloatVal(0.5)))
}

func TestLoad_InterpolationStaysUnevaluated(t *testing.T) {
	t.Parallel()

	tree, err := load(t, `
run_tag = "${algorithm.name}_${network.encoder.type}"
`)
	require.NoError(t, err)

	node := get(t, tree, "run_tag")
	require.False(t, node.IsMap())
	assert.False(t, node.Resolved())
	assert.Len(t, node.Expr().Variables(), 2)
}

func TestLoad_BlockAttributeConflict(t *testing.T) {
	t.Parallel()

	_, err := load(t, `
network = "flat"

network {
  encoder {
    type = "mlp"
  }
}
`)
	assert.Error(t, err)
}

func TestLoad_ParseError(t *testing.T) {
	t.Parallel()

	_, err := load(t, `seed = `)
	assert.Error(t, err)
}
