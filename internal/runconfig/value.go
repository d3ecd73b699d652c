package runconfig

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// Accessors for values the schema has already validated. A missing or
// mistyped attribute past validation is a programmer error, so these return
// zero values rather than threading errors through every call site.

func attrOrNil(value cty.Value, name string) cty.Value {
	if value.IsNull() || !value.Type().IsObjectType() || !value.Type().HasAttribute(name) {
		return cty.NilVal
	}
	return value.GetAttr(name)
}

func attrNames(value cty.Value) []string {
	types := value.Type().AttributeTypes()
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func intAt(value cty.Value, name string) int64 {
	attr := attrOrNil(value, name)
	if attr == cty.NilVal || attr.IsNull() || attr.Type() != cty.Number {
		return 0
	}
	n, _ := attr.AsBigFloat().Int64()
	return n
}

func boolAt(value cty.Value, name string) bool {
	attr := attrOrNil(value, name)
	if attr == cty.NilVal || attr.IsNull() || attr.Type() != cty.Bool {
		return false
	}
	return attr.True()
}

func stringAt(value cty.Value, name string) string {
	attr := attrOrNil(value, name)
	if attr == cty.NilVal || attr.IsNull() || attr.Type() != cty.String {
		return ""
	}
	return attr.AsString()
}

func stringsAt(value cty.Value, name string) []string {
	attr := attrOrNil(value, name)
	if attr == cty.NilVal || attr.IsNull() || !attr.CanIterateElements() {
		return nil
	}
	var out []string
	for it := attr.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		if elem.Type() == cty.String && !elem.IsNull() {
			out = append(out, elem.AsString())
		}
	}
	return out
}

func floatPtrAt(value cty.Value, name string) *float64 {
	attr := attrOrNil(value, name)
	if attr == cty.NilVal || attr.IsNull() || attr.Type() != cty.Number {
		return nil
	}
	f, _ := attr.AsBigFloat().Float64()
	return &f
}
