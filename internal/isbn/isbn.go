// Package isbn validates and cleans International Standard Book Numbers.
package isbn

import "strings"

// Clean strips hyphens and whitespace from an ISBN string. It returns the
// bare digit string (uppercased, so a trailing ISBN-10 check character
// stays "X") without validating it.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		switch {
		case r >= '0' && r <= '9', r == 'X':
			b.WriteRune(r)
		case r == '-', r == ' ', r == '\t':
			// separator, drop it
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValid13 reports whether s is a well-formed ISBN-13: thirteen digits
// (hyphens and spaces ignored) with a correct check digit.
func IsValid13(s string) bool {
	digits := Clean(s)
	if len(digits) != 13 {
		return false
	}
	total := 0
	for i := 0; i < 12; i++ {
		d := digits[i]
		if d < '0' || d > '9' {
			return false
		}
		n := int(d - '0')
		if i%2 == 0 {
			total += n
		} else {
			total += 3 * n
		}
	}
	last := digits[12]
	if last < '0' || last > '9' {
		return false
	}
	check := (10 - total%10) % 10
	return check == int(last-'0')
}

// IsValid10 reports whether s is a well-formed ISBN-10: ten characters
// (the last may be "X") whose weighted sum is divisible by 11.
func IsValid10(s string) bool {
	digits := Clean(s)
	if len(digits) != 10 {
		return false
	}
	total := 0
	for i := 0; i < 10; i++ {
		c := digits[i]
		var n int
		switch {
		case c >= '0' && c <= '9':
			n = int(c - '0')
		case c == 'X' && i == 9:
			n = 10
		default:
			return false
		}
		total += (10 - i) * n
	}
	return total%11 == 0
}
