package config

import (
	"fmt"
	"maps"
	"time"

	"github.com/nao1215/siteprofile/internal/classify"
	"github.com/nao1215/siteprofile/internal/model"
)

// SiteConfig holds crawl settings that can be given once for all sites or
// per host.
type SiteConfig struct {
	// MaxPages overrides the page budget when non-zero.
	MaxPages int `yaml:"maxPages,omitempty"`

	// Depth overrides the depth limit when non-nil. A pointer so that an
	// explicit 0 (seed only) can be set.
	Depth *int `yaml:"depth,omitempty"`

	// Timeout is a Go duration string such as "10s".
	Timeout string `yaml:"timeout,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`

	// Cookie is an HTTP cookie to send.
	// Format: "name=value" or "name1=value1; name2=value2"
	Cookie string `yaml:"cookie,omitempty"`

	// Headers are extra HTTP headers to include in requests.
	Headers map[string]string `yaml:"headers,omitempty"`
}

// IntentEntry is one row of the intent keyword table.
type IntentEntry struct {
	Intent   string   `yaml:"intent"`
	Keywords []string `yaml:"keywords"`
}

// SocialEntry is one row of the social platform table.
type SocialEntry struct {
	Name    string   `yaml:"name"`
	Domains []string `yaml:"domains"`
}

// File represents the structure of the .siteprofile configuration file.
type File struct {
	// Defaults apply to every site unless overridden in Sites.
	Defaults SiteConfig `yaml:"defaults,omitempty"`

	// Sites maps a host (e.g. "acme.test") to its settings.
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Intents replaces the built-in intent table. Order is priority order.
	Intents []IntentEntry `yaml:"intents,omitempty"`

	// Social replaces the built-in social platform table. Order is
	// matching order.
	Social []SocialEntry `yaml:"social,omitempty"`
}

// GetSiteConfig returns the configuration for host, with the site-specific
// values layered over Defaults.
func (cf *File) GetSiteConfig(host string) SiteConfig {
	result := cf.Defaults
	result.Headers = maps.Clone(cf.Defaults.Headers)

	site, ok := cf.Sites[host]
	if !ok {
		return result
	}

	if site.MaxPages != 0 {
		result.MaxPages = site.MaxPages
	}
	if site.Depth != nil {
		result.Depth = site.Depth
	}
	if site.Timeout != "" {
		result.Timeout = site.Timeout
	}
	if site.UserAgent != "" {
		result.UserAgent = site.UserAgent
	}
	if site.Cookie != "" {
		result.Cookie = site.Cookie
	}
	if len(site.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string, len(site.Headers))
		}
		maps.Copy(result.Headers, site.Headers)
	}
	return result
}

// IntentRules converts the intent table. It returns nil when the file has
// no table, and ErrUnknownIntent for an unrecognized category.
func (cf *File) IntentRules() ([]classify.IntentRule, error) {
	if len(cf.Intents) == 0 {
		return nil, nil
	}

	rules := make([]classify.IntentRule, 0, len(cf.Intents))
	for _, e := range cf.Intents {
		intent := model.Intent(e.Intent)
		if !intent.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownIntent, e.Intent)
		}
		rules = append(rules, classify.IntentRule{Intent: intent, Keywords: e.Keywords})
	}
	return rules, nil
}

// SocialPlatforms converts the social platform table. It returns nil when
// the file has no table.
func (cf *File) SocialPlatforms() ([]classify.SocialPlatform, error) {
	if len(cf.Social) == 0 {
		return nil, nil
	}

	platforms := make([]classify.SocialPlatform, 0, len(cf.Social))
	for _, e := range cf.Social {
		if e.Name == "" || len(e.Domains) == 0 {
			return nil, fmt.Errorf("%w: %q", ErrEmptyPlatform, e.Name)
		}
		platforms = append(platforms, classify.SocialPlatform{Name: e.Name, Domains: e.Domains})
	}
	return platforms, nil
}

// ApplyFile overlays the settings configured for host onto c.
// Values already set from CLI flags should be applied after this call.
func (c *Config) ApplyFile(cf *File, host string) error {
	site := cf.GetSiteConfig(host)

	if site.MaxPages != 0 {
		c.MaxPages = site.MaxPages
	}
	if site.Depth != nil {
		c.MaxDepth = *site.Depth
	}
	if site.Timeout != "" {
		d, err := time.ParseDuration(site.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: %q", ErrInvalidTimeout, site.Timeout)
		}
		c.Timeout = d
	}
	if site.UserAgent != "" {
		c.UserAgent = site.UserAgent
	}
	if site.Cookie != "" {
		c.Cookie = site.Cookie
	}
	if len(site.Headers) > 0 {
		if c.Headers == nil {
			c.Headers = make(map[string]string, len(site.Headers))
		}
		maps.Copy(c.Headers, site.Headers)
	}

	rules, err := cf.IntentRules()
	if err != nil {
		return err
	}
	if rules != nil {
		c.IntentRules = rules
	}

	platforms, err := cf.SocialPlatforms()
	if err != nil {
		return err
	}
	if platforms != nil {
		c.SocialPlatforms = platforms
	}
	return nil
}
