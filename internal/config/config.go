package config

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/siteprofile/internal/classify"
)

// Default configuration values.
const (
	// DefaultMaxPages is the maximum number of pages fetched successfully
	// per crawl.
	DefaultMaxPages = 15

	// DefaultMaxDepth is the deepest link level followed. The seed is depth 0.
	DefaultMaxDepth = 2

	// DefaultTimeout bounds each fetch.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "Mozilla/5.0 (DT-Company-Scraper/1.0)"

	// DefaultMaxBodySize limits how much of a response body is read.
	DefaultMaxBodySize int64 = 10 * 1024 * 1024

	// DefaultBatchSize is the number of websites crawled at once when
	// several URLs are given.
	DefaultBatchSize = 4

	// DefaultOutputDir is where profile files are written when no explicit
	// output file is given.
	DefaultOutputDir = "outputs"

	// AppName is the application name used for XDG directory paths.
	AppName = "siteprofile"

	// DatabaseFile is the name of the crawl history database.
	DatabaseFile = "siteprofile.db"
)

// Config holds every option for a single crawl.
// It is populated from CLI flags and the optional config file, then passed
// down explicitly.
type Config struct {
	// Target is the seed URL of the company website.
	Target string

	// MaxPages is the page budget.
	MaxPages int

	// MaxDepth is the inclusive depth limit. 0 fetches only the seed.
	MaxDepth int

	// Timeout applies to each fetch, not to the whole crawl.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with every request.
	UserAgent string

	// MaxBodySize is the maximum response body size in bytes to read.
	// Zero reads the whole body.
	MaxBodySize int64

	// Headers are extra request headers.
	Headers map[string]string

	// Cookie is sent as the Cookie header when non-empty.
	Cookie string

	// IntentRules replaces the built-in link classification table when
	// non-empty.
	IntentRules []classify.IntentRule

	// SocialPlatforms replaces the built-in social domain table when
	// non-empty.
	SocialPlatforms []classify.SocialPlatform

	// BatchSize is the number of websites crawled concurrently when several
	// targets are given. Each crawl is still sequential.
	BatchSize int

	// OutputDir is the directory for derived output file names.
	OutputDir string

	// OutputFile, when set, overrides the derived output path.
	OutputFile string

	// Markdown additionally writes a Markdown summary next to the JSON file.
	Markdown bool

	// Summary prints a text summary after the crawl.
	Summary bool

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is an explicit path to the config file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// DBDir is the directory holding the crawl history database.
	// Defaults to the XDG data directory.
	DBDir string

	// SaveToDB records the crawl in the history database.
	SaveToDB bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		MaxPages:    DefaultMaxPages,
		MaxDepth:    DefaultMaxDepth,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		Headers:     make(map[string]string),
		BatchSize:   DefaultBatchSize,
		OutputDir:   DefaultOutputDir,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
	}
}

// XDGDataDir returns the XDG data directory for siteprofile.
// On Linux: ~/.local/share/siteprofile
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for siteprofile.
// On Linux: ~/.config/siteprofile
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DatabasePath returns the history database path inside DBDir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DBDir, DatabaseFile)
}

// OutputPath returns where the JSON profile is written. An explicit
// OutputFile wins; otherwise the name is derived from Target inside OutputDir.
func (c *Config) OutputPath() string {
	if c.OutputFile != "" {
		return c.OutputFile
	}
	return filepath.Join(c.OutputDir, OutputFileName(c.Target))
}

// OutputFileName derives a file name from a website URL: the http:// or
// https:// prefix is removed, every "/" becomes "_", and "_output.json" is
// appended. "https://acme.test/" becomes "acme.test__output.json".
func OutputFileName(website string) string {
	name := strings.ReplaceAll(website, "https://", "")
	name = strings.ReplaceAll(name, "http://", "")
	name = strings.ReplaceAll(name, "/", "_")
	return name + "_output.json"
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Target) == "" {
		return ErrNoTarget
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxPages <= 0 {
		return ErrInvalidMaxPages
	}
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	return nil
}
