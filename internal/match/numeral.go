package match

import (
	"strconv"
	"strings"
)

var (
	smallNumbers = []string{
		"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine",
		"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen",
		"seventeen", "eighteen", "nineteen",
	}
	tens = []string{
		"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety",
	}
	scales = []struct {
		value int
		name  string
	}{
		{1_000_000_000, "billion"},
		{1_000_000, "million"},
		{1_000, "thousand"},
		{100, "hundred"},
	}
	ordinalWords = map[string]string{
		"one":    "first",
		"two":    "second",
		"three":  "third",
		"five":   "fifth",
		"eight":  "eighth",
		"nine":   "ninth",
		"twelve": "twelfth",
	}
)

// spellLeadingNumeral rewrites a leading run of digits as words, so the
// result starts with a letter. An English ordinal suffix directly after the
// digits ("2nd", "90th") produces the ordinal word.
func spellLeadingNumeral(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}

	if end == 0 {
		return s
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Too long for an int; spell digit by digit.
		digits := make([]string, 0, end)
		for i := range end {
			digits = append(digits, smallNumbers[s[i]-'0'])
		}

		return joinWord(strings.Join(digits, "_"), s[end:])
	}

	rest := s[end:]
	for _, suffix := range []string{"st", "nd", "rd", "th"} {
		if strings.HasPrefix(rest, suffix) && (len(rest) == len(suffix) || rest[len(suffix)] == '_') {
			return joinWord(ordinal(spellNumber(n)), rest[len(suffix):])
		}
	}

	return joinWord(spellNumber(n), rest)
}

func joinWord(word, rest string) string {
	if rest == "" || rest[0] == '_' {
		return word + rest
	}

	return word + "_" + rest
}

// spellNumber writes n in words joined by underscores: 21 -> twenty_one.
func spellNumber(n int) string {
	if n < 20 {
		return smallNumbers[n]
	}

	if n < 100 {
		if n%10 == 0 {
			return tens[n/10]
		}

		return tens[n/10] + "_" + smallNumbers[n%10]
	}

	for _, sc := range scales {
		if n >= sc.value {
			head := spellNumber(n/sc.value) + "_" + sc.name
			if n%sc.value == 0 {
				return head
			}

			return head + "_" + spellNumber(n%sc.value)
		}
	}

	return strconv.Itoa(n)
}

// ordinal turns the last word of a spelled number into its ordinal form.
func ordinal(words string) string {
	head, last := "", words
	if i := strings.LastIndexByte(words, '_'); i >= 0 {
		head, last = words[:i+1], words[i+1:]
	}

	switch {
	case ordinalWords[last] != "":
		last = ordinalWords[last]
	case strings.HasSuffix(last, "y"):
		last = strings.TrimSuffix(last, "y") + "ieth"
	default:
		last += "th"
	}

	return head + last
}
