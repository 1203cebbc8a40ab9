package extract

import "regexp"

// emailRegex matches local@domain.tld with an ASCII local part and a TLD of
// at least two letters.
var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Emails returns the unique email addresses in text, in first-seen order.
// Addresses are returned as written; no case folding is applied.
func Emails(text string) []string {
	return unique(emailRegex.FindAllString(text, -1))
}

// unique removes duplicates while keeping first-seen order.
func unique(matches []string) []string {
	seen := make(map[string]bool, len(matches))
	result := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		result = append(result, m)
	}
	return result
}
