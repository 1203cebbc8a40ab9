package classify

import "strings"

// SocialPlatform maps a platform name to the domains that identify it.
type SocialPlatform struct {
	Name    string
	Domains []string
}

// DefaultSocialPlatforms returns the built-in platforms in match order.
func DefaultSocialPlatforms() []SocialPlatform {
	return []SocialPlatform{
		{Name: "linkedin", Domains: []string{"linkedin.com"}},
		{Name: "twitter", Domains: []string{"twitter.com", "x.com"}},
		{Name: "instagram", Domains: []string{"instagram.com"}},
		{Name: "youtube", Domains: []string{"youtube.com"}},
	}
}

// SocialMatcher recognizes social profile links by raw href substring.
// It does not look at the link's host, so off-site profiles are matched.
type SocialMatcher struct {
	platforms []SocialPlatform
}

// NewSocialMatcher creates a SocialMatcher. An empty platforms slice selects
// DefaultSocialPlatforms.
func NewSocialMatcher(platforms []SocialPlatform) *SocialMatcher {
	if len(platforms) == 0 {
		platforms = DefaultSocialPlatforms()
	}

	copied := make([]SocialPlatform, len(platforms))
	for i, p := range platforms {
		copied[i] = SocialPlatform{Name: p.Name, Domains: append([]string(nil), p.Domains...)}
	}
	return &SocialMatcher{platforms: copied}
}

// Match returns the first platform one of whose domains occurs in href.
// The comparison is case-sensitive, like the href itself.
func (m *SocialMatcher) Match(href string) (string, bool) {
	if href == "" {
		return "", false
	}
	for _, p := range m.platforms {
		for _, d := range p.Domains {
			if d != "" && strings.Contains(href, d) {
				return p.Name, true
			}
		}
	}
	return "", false
}

// Platforms returns a copy of the platforms in match order.
func (m *SocialMatcher) Platforms() []SocialPlatform {
	platforms := make([]SocialPlatform, len(m.platforms))
	for i, p := range m.platforms {
		platforms[i] = SocialPlatform{Name: p.Name, Domains: append([]string(nil), p.Domains...)}
	}
	return platforms
}
