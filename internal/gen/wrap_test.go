package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextWrap(t *testing.T) {
	items := []string{"aaaa", "bbbb", "cccc"}

	tests := []struct {
		name   string
		width  int
		indent int
		want   string
	}{
		{
			name:  "fits on one line",
			width: 40,
			want:  "x = f(aaaa, bbbb, cccc)",
		},
		{
			name:  "one item per line",
			width: 14,
			want:  "x = f(\n\taaaa,\n\tbbbb,\n\tcccc,\n)",
		},
		{
			name:  "fills lines",
			width: 20,
			want:  "x = f(\n\taaaa, bbbb,\n\tcccc,\n)",
		},
		{
			name:   "indented",
			width:  28,
			indent: 1,
			want:   "\tx = f(\n\t\taaaa, bbbb,\n\t\tcccc,\n\t)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextWrap("x = f(", items, ")", tt.width, tt.indent)
			assert.Equal(t, tt.want, got)

			for _, line := range strings.Split(got, "\n") {
				assert.LessOrEqual(t, Columns(line), tt.width, line)
			}
		})
	}
}

func TestTextWrap_Empty(t *testing.T) {
	assert.Equal(t, "\t\treturn []Field{}", TextWrap("return []Field{", nil, "}", 10, 2))
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 3, Columns("abc"))
	assert.Equal(t, 17, Columns("\t\tx"))
	assert.Equal(t, 7, Columns("ménière"))
}
