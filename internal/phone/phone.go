// Package phone reduces customer phone numbers to one canonical form
// so storage and order lookup agree no matter how the number was typed.
package phone

import (
	"strings"
	"unicode"
)

// Normalize maps a phone number to bare local-subscriber digits:
// whitespace, hyphens and parentheses are dropped, a single +212 or
// 00212 country prefix is removed, then one leading zero, then any
// remaining non-digit. Moroccan mobiles come out as 9 digits.
//
// Exactly one leading zero is stripped per call, so inputs with
// stacked zeros and no country code ("00612345678") are not a fixed
// point after one pass. That is deliberate: each extra zero is kept
// as a distinct digit rather than guessed away, and both storage and
// lookup apply Normalize the same number of times, so equal surface
// forms always agree.
func Normalize(raw string) string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' {
			return -1
		}
		return r
	}, raw)

	if strings.HasPrefix(s, "+212") {
		s = s[4:]
	} else if strings.HasPrefix(s, "00212") {
		s = s[5:]
	}

	s = strings.TrimPrefix(s, "0")

	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
