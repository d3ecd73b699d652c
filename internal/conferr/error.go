package conferr

import (
	"fmt"

	"github.com/vmaxlab/expconf/internal/confpath"
)

// Kind classifies a configuration error.
type Kind int

const (
	// UnknownGroup reports an override-group selector naming a group or
	// choice that is not registered.
	UnknownGroup Kind = iota + 1
	// UnknownKey reports an ad-hoc override addressing a path absent from
	// the merged document outside any open-ended map section.
	UnknownKey
	// MissingReference reports an interpolation referencing a path that does
	// not exist after the merge.
	MissingReference
	// CyclicInterpolation reports a self-referential interpolation chain.
	CyclicInterpolation
	// TypeMismatch reports a value whose type contradicts the schema,
	// including a required section that is absent entirely.
	TypeMismatch
	// RangeViolation reports a value outside its declared numeric range.
	RangeViolation
	// UnknownVocabularyEntry reports a string outside its fixed vocabulary,
	// such as an unrecognized termination key or feature name.
	UnknownVocabularyEntry
)

// String returns the canonical snake_case name of the kind.
func (k Kind) String() string {
	switch k {
	case UnknownGroup:
		return "unknown_group"
	case UnknownKey:
		return "unknown_key"
	case MissingReference:
		return "missing_reference"
	case CyclicInterpolation:
		return "cyclic_interpolation"
	case TypeMismatch:
		return "type_mismatch"
	case RangeViolation:
		return "range_violation"
	case UnknownVocabularyEntry:
		return "unknown_vocabulary_entry"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is the single error type produced by the configuration pipeline.
type Error struct {
	Kind   Kind
	Path   confpath.Path
	Detail string
}

// New constructs an Error for the given path with a formatted detail message.
func New(kind Kind, path confpath.Path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Detail: fmt.Sprintf(format, args...)}
}

// Error implements the error interface. The message always names the dotted
// path so the operator can locate the offending value.
func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Path, e.Detail)
}

// Is matches against another *Error by kind alone, so callers can test for a
// category with errors.Is(err, &conferr.Error{Kind: conferr.TypeMismatch}).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
