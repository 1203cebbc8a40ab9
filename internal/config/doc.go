// Package config holds the settings for a siteprofile crawl: budgets,
// request settings, output locations, and the optional .siteprofile YAML
// file that can override them per site.
package config
