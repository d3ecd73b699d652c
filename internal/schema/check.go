package schema

import (
	"sort"

	"github.com/zclconf/go-cty/cty"

	"github.com/vmaxlab/expconf/internal/conferr"
	"github.com/vmaxlab/expconf/internal/confpath"
)

// attr looks up a named attribute on an object value.
func attr(value cty.Value, name string) (cty.Value, bool) {
	if value.IsNull() || !value.Type().IsObjectType() || !value.Type().HasAttribute(name) {
		return cty.NilVal, false
	}
	return value.GetAttr(name), true
}

// attrNames returns an object's attribute names in sorted order.
func attrNames(value cty.Value) []string {
	types := value.Type().AttributeTypes()
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// requireSection fetches a required object-valued section.
func requireSection(value cty.Value, path confpath.Path) (cty.Value, *conferr.Error) {
	section, ok := attr(value, path[len(path)-1].Name)
	if !ok {
		return cty.NilVal, conferr.New(conferr.TypeMismatch, path, "required section is missing")
	}
	if section.IsNull() || !section.Type().IsObjectType() {
		return cty.NilVal, conferr.New(conferr.TypeMismatch, path, "expected a section, got %s", section.Type().FriendlyName())
	}
	return section, nil
}

// checkInt verifies an integral number and returns it.
func checkInt(value cty.Value, path confpath.Path) (int64, *conferr.Error) {
	if value.IsNull() || value.Type() != cty.Number {
		return 0, conferr.New(conferr.TypeMismatch, path, "expected an integer, got %s", value.Type().FriendlyName())
	}
	bf := value.AsBigFloat()
	if bf.IsInf() || !bf.IsInt() {
		return 0, conferr.New(conferr.TypeMismatch, path, "expected an integer, got a non-integral number")
	}
	n, _ := bf.Int64()
	return n, nil
}

// checkPositiveInt verifies a strictly positive integer.
func checkPositiveInt(value cty.Value, path confpath.Path) *conferr.Error {
	n, err := checkInt(value, path)
	if err != nil {
		return err
	}
	if n <= 0 {
		return conferr.New(conferr.RangeViolation, path, "must be a positive integer, got %d", n)
	}
	return nil
}

// checkNonNegativeInt verifies an integer >= 0.
func checkNonNegativeInt(value cty.Value, path confpath.Path) *conferr.Error {
	n, err := checkInt(value, path)
	if err != nil {
		return err
	}
	if n < 0 {
		return conferr.New(conferr.RangeViolation, path, "must be a non-negative integer, got %d", n)
	}
	return nil
}

// checkFiniteNumber verifies a finite real. Sign and magnitude are
// unconstrained: reward weights can express directionality of shaping.
func checkFiniteNumber(value cty.Value, path confpath.Path) *conferr.Error {
	if value.IsNull() || value.Type() != cty.Number {
		return conferr.New(conferr.TypeMismatch, path, "expected a number, got %s", value.Type().FriendlyName())
	}
	if value.AsBigFloat().IsInf() {
		return conferr.New(conferr.RangeViolation, path, "must be a finite number")
	}
	return nil
}

// checkBool verifies a boolean.
func checkBool(value cty.Value, path confpath.Path) *conferr.Error {
	if value.IsNull() || value.Type() != cty.Bool {
		return conferr.New(conferr.TypeMismatch, path, "expected a boolean, got %s", value.Type().FriendlyName())
	}
	return nil
}

// checkString verifies a string, empty allowed.
func checkString(value cty.Value, path confpath.Path) *conferr.Error {
	if value.IsNull() || value.Type() != cty.String {
		return conferr.New(conferr.TypeMismatch, path, "expected a string, got %s", value.Type().FriendlyName())
	}
	return nil
}

// checkNonEmptyString verifies a non-empty string.
func checkNonEmptyString(value cty.Value, path confpath.Path) *conferr.Error {
	if err := checkString(value, path); err != nil {
		return err
	}
	if value.AsString() == "" {
		return conferr.New(conferr.RangeViolation, path, "must not be empty")
	}
	return nil
}

// checkStringList verifies an ordered list of strings drawn from the given
// vocabulary, reporting the first entry outside it.
func checkStringList(value cty.Value, path confpath.Path, vocab []string) *conferr.Error {
	if value.IsNull() || !value.CanIterateElements() {
		return conferr.New(conferr.TypeMismatch, path, "expected a list of strings, got %s", value.Type().FriendlyName())
	}
	index := 0
	for it := value.ElementIterator(); it.Next(); index++ {
		_, elem := it.Element()
		entryPath := make(confpath.Path, len(path))
		copy(entryPath, path)
		entryPath[len(entryPath)-1].Index = index
		if elem.IsNull() || elem.Type() != cty.String {
			return conferr.New(conferr.TypeMismatch, entryPath, "expected a string, got %s", elem.Type().FriendlyName())
		}
		if !contains(vocab, elem.AsString()) {
			return conferr.New(conferr.UnknownVocabularyEntry, entryPath,
				"%q is not a recognized entry (known: %v)", elem.AsString(), vocab)
		}
	}
	return nil
}
