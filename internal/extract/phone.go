package extract

import "regexp"

// phoneRegex matches an optional leading plus, a digit, and at least seven
// more digits, spaces, hyphens, or parentheses. Digits and spaces are
// Unicode classes, so non-ASCII digits and no-break spaces (&nbsp;) count.
var phoneRegex = regexp.MustCompile(`\+?\p{Nd}[\p{Nd}\s\p{Z}\-()]{7,}`)

// Phones returns the unique phone candidates in text, in first-seen order.
// Matches are returned verbatim, including any trailing separator
// characters the pattern consumed.
func Phones(text string) []string {
	return unique(phoneRegex.FindAllString(text, -1))
}
