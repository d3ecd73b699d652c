package conferr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmaxlab/expconf/internal/confpath"
)

func TestError_MessageNamesKindAndPath(t *testing.T) {
	t.Parallel()

	path, err := confpath.Parse("termination_keys[1]")
	require.NoError(t, err)

	e := New(UnknownVocabularyEntry, path, "%q is not recognized", "made_up_key")
	assert.Equal(t, `unknown_vocabulary_entry: termination_keys[1]: "made_up_key" is not recognized`, e.Error())
}

func TestError_MessageWithoutPath(t *testing.T) {
	t.Parallel()

	e := New(TypeMismatch, nil, "resolved configuration must be an object")
	assert.Equal(t, "type_mismatch: resolved configuration must be an object", e.Error())
}

func TestError_IsMatchesByKind(t *testing.T) {
	t.Parallel()

	e := New(CyclicInterpolation, confpath.Root("a"), "cycle through a")
	wrapped := fmt.Errorf("resolving: %w", e)

	assert.True(t, errors.Is(wrapped, &Error{Kind: CyclicInterpolation}))
	assert.False(t, errors.Is(wrapped, &Error{Kind: MissingReference}))
}
