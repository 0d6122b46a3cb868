package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Unnamed is the name given to raw names that normalize to nothing.
const Unnamed = "unnamed"

type substitution struct {
	old, new string
}

// substitutions are applied in order. Later entries see the output of
// earlier ones, so "10_year" matches names whose space was already replaced.
var substitutions = []substitution{
	{"/", "_"},
	{"(", "_"},
	{")", "_"},
	{" – ", "_"},
	{" - ", "_"},
	{"-", "_"},
	{" ", "_"},
	{",", "_"},
	{"–", "_"},
	{"____", "_"},
	{"___", "_"},
	{"__", "_"},
	{"=", "_"},
	{"'", ""},
	{"’", ""},
	{"é", "e"},
	{"<", "less_than_"},
	{">", "greater_than_"},
	{"+", "_and_up"},
	{"I$", "income"},
	{"%", "_percent"},
	{"90th", "ninetieth"},
	{"*", "x"},
	{":", ""},
	{";", ""},
	{"#", ""},
	{"&", "and"},
	{"10_year", "ten_year"},
	{"year.", "year"},
	{"PM2.5", "pm_2_5"},
}

// CleanEntityList maps raw display names to identifier-safe names.
//
// The output has one entry per input, in input order, and every entry
// matches ^[a-z][a-z0-9_]*$. The mapping is pure: the same raw name always
// yields the same identifier.
func CleanEntityList(raw []string) []string {
	out := make([]string, len(raw))
	for i, name := range raw {
		out[i] = CleanName(name)
	}

	return out
}

// CleanName normalizes a single raw display name.
func CleanName(raw string) string {
	s := raw
	for _, sub := range substitutions {
		s = strings.ReplaceAll(s, sub.old, sub.new)
	}

	s = foldDiacritics(s)

	var b strings.Builder

	for _, r := range s {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteByte('_')
		}
	}

	s = collapseUnderscores(b.String())
	s = strings.Trim(s, "_")
	s = spellLeadingNumeral(s)

	if s == "" {
		return Unnamed
	}

	return s
}

// foldDiacritics strips combining marks after canonical decomposition, so
// "Ménière" becomes "Meniere".
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}

	return folded
}

func collapseUnderscores(s string) string {
	var b strings.Builder

	prev := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '_' {
			if prev {
				continue
			}

			prev = true
		} else {
			prev = false
		}

		b.WriteByte(c)
	}

	return b.String()
}

// ToGoIdent converts a normalized snake_case name to an exported Go
// identifier: "diarrheal_diseases" becomes "DiarrhealDiseases".
func ToGoIdent(name string) string {
	var b strings.Builder

	upper := true

	for _, r := range name {
		if r == '_' {
			upper = true
			continue
		}

		if upper {
			b.WriteRune(unicode.ToUpper(r))

			upper = false
		} else {
			b.WriteRune(r)
		}
	}

	return b.String()
}
