package extract

import "strings"

// HomepageDocument is the subset of a parsed page the identity resolver needs.
type HomepageDocument interface {
	// MetaProperty returns the content of the first <meta property=name>.
	// ok is false when no such tag exists or it has no content attribute.
	MetaProperty(name string) (content string, ok bool)

	// MetaName returns the content of the first <meta name=name>.
	MetaName(name string) (content string, ok bool)

	// Title returns the text of the first <title> element.
	Title() (title string, ok bool)
}

// titleSeparators are applied in this order, each one cumulatively.
var titleSeparators = []string{"|", "–", "—", "-"}

// retailWords flag titles that read like a storefront rather than a name.
var retailWords = []string{"shop", "buy", "official", "online store", "products"}

// Identity is the resolved homepage identity. Nil fields are unknown.
type Identity struct {
	CompanyName *string
	Tagline     *string
}

// ResolveIdentity derives the company name and tagline from a homepage.
// og:site_name wins when it has non-empty content; otherwise the title is
// cleaned with CleanCompanyName. The tagline is the meta description
// content, verbatim.
func ResolveIdentity(doc HomepageDocument) Identity {
	var id Identity

	if site, ok := doc.MetaProperty("og:site_name"); ok && site != "" {
		name := strings.TrimSpace(site)
		id.CompanyName = &name
	} else if title, ok := doc.Title(); ok {
		if name, ok := CleanCompanyName(title); ok {
			id.CompanyName = &name
		}
	}

	if desc, ok := doc.MetaName("description"); ok {
		id.Tagline = &desc
	}

	return id
}

// CleanCompanyName strips marketing prefixes from a page title.
// For every separator present in the current value, the value becomes the
// trimmed text after the separator's last occurrence. ok is false for an
// empty title.
func CleanCompanyName(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}

	name := raw
	for _, sep := range titleSeparators {
		if idx := strings.LastIndex(name, sep); idx >= 0 {
			name = strings.TrimSpace(name[idx+len(sep):])
		}
	}

	return strings.TrimSpace(name), true
}

// LooksRetail reports whether name contains a retail word such as "shop" or
// "buy". Such names are kept; callers may only flag them.
func LooksRetail(name string) bool {
	lowered := strings.ToLower(name)
	for _, w := range retailWords {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}
