package app

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/zclconf/go-cty/cty"
)

const (
	printIndent     = "    "
	printTitleWidth = 50
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true)
)

// printConfig writes the resolved hyperparameters as an indented section
// tree, scalar settings first, then each section under a styled header.
func printConfig(w io.Writer, config cty.Value) {
	fmt.Fprintln(w, titleStyle.Render(center("configuration", printTitleWidth)))
	printObject(w, config, 0)
}

func printObject(w io.Writer, value cty.Value, depth int) {
	scalars, sections := partitionAttrs(value)

	for _, name := range scalars {
		fmt.Fprintf(w, "%s%s: %s\n", strings.Repeat(printIndent, depth), name, formatValue(value.GetAttr(name)))
	}
	for _, name := range sections {
		if depth == 0 {
			fmt.Fprintln(w, sectionStyle.Render(center(name, printTitleWidth)))
		} else {
			fmt.Fprintf(w, "%s- %s\n", strings.Repeat(printIndent, depth-1), name)
		}
		printObject(w, value.GetAttr(name), depth+1)
	}
}

// partitionAttrs splits an object's attribute names into scalars and nested
// sections, each sorted.
func partitionAttrs(value cty.Value) (scalars, sections []string) {
	for name, ty := range value.Type().AttributeTypes() {
		if ty.IsObjectType() {
			sections = append(sections, name)
		} else {
			scalars = append(scalars, name)
		}
	}
	sort.Strings(scalars)
	sort.Strings(sections)
	return scalars, sections
}

func formatValue(value cty.Value) string {
	if value.IsNull() {
		return "null"
	}
	switch {
	case value.Type() == cty.String:
		return value.AsString()
	case value.Type() == cty.Number:
		return value.AsBigFloat().Text('g', -1)
	case value.Type() == cty.Bool:
		if value.True() {
			return "true"
		}
		return "false"
	case value.CanIterateElements():
		var elems []string
		for it := value.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			elems = append(elems, formatValue(elem))
		}
		return "[" + strings.Join(elems, ", ") + "]"
	default:
		return value.GoString()
	}
}

// center pads a title to the given width with '=' runs on both sides.
func center(title string, width int) string {
	if len(title)+2 >= width {
		return title
	}
	pad := width - len(title) - 2
	left := pad / 2
	right := pad - left
	return strings.Repeat("=", left) + " " + title + " " + strings.Repeat("=", right)
}
