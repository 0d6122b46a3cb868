package gen

import (
	"strings"
	"unicode/utf8"
)

const (
	// LineWidth is the widest line the emitter produces on its own.
	LineWidth = 118
	// TabWidth is the number of columns a tab counts for, as in gofmt.
	TabWidth = 8
)

// Columns returns the display width of s with tabs counted as TabWidth.
func Columns(s string) int {
	tabs := strings.Count(s, "\t")
	return utf8.RuneCountInString(s) - tabs + tabs*TabWidth
}

// TextWrap renders prefix, the comma separated items and suffix at the
// given indentation. When everything fits in width it is one line:
//
//	prefix + "a, b" + suffix
//
// Otherwise the items move to continuation lines one tab deeper, filled up
// to width, each line ending in a comma, and suffix closes on its own line.
// The result has no trailing newline.
func TextWrap(prefix string, items []string, suffix string, width, indent int) string {
	tabs := strings.Repeat("\t", indent)

	one := tabs + prefix + strings.Join(items, ", ") + suffix
	if len(items) == 0 || Columns(one) <= width {
		return one
	}

	inner := tabs + "\t"

	var b strings.Builder

	b.WriteString(tabs + prefix + "\n" + inner)

	count := Columns(inner)
	start := count

	for i, item := range items {
		w := utf8.RuneCountInString(item)

		// Room for ", " before the item and "," after it.
		if i > 0 && count+2+w+1 > width {
			b.WriteString(",\n" + inner)

			count = start
		} else if i > 0 {
			b.WriteString(", ")

			count += 2
		}

		b.WriteString(item)

		count += w
	}

	b.WriteString(",\n" + tabs + suffix)

	return b.String()
}
