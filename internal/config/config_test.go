package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nao1215/siteprofile/internal/model"
)

// TestNewConfig verifies the defaults so that changes to them are intentional.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default MaxPages is 15", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxPages != 15 {
			t.Errorf("expected MaxPages to be 15, got %d", cfg.MaxPages)
		}
	})

	t.Run("default MaxDepth is 2", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxDepth != 2 {
			t.Errorf("expected MaxDepth to be 2, got %d", cfg.MaxDepth)
		}
	})

	t.Run("default Timeout is 10 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.Timeout != 10*time.Second {
			t.Errorf("expected Timeout to be 10s, got %v", cfg.Timeout)
		}
	})

	t.Run("default UserAgent", func(t *testing.T) {
		t.Parallel()
		if cfg.UserAgent != "Mozilla/5.0 (DT-Company-Scraper/1.0)" {
			t.Errorf("unexpected UserAgent %q", cfg.UserAgent)
		}
	})

	t.Run("default OutputDir is outputs", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputDir != "outputs" {
			t.Errorf("expected OutputDir to be outputs, got %q", cfg.OutputDir)
		}
	})

	t.Run("history is saved by default", func(t *testing.T) {
		t.Parallel()
		if !cfg.SaveToDB {
			t.Error("expected SaveToDB to be true")
		}
		if !strings.HasSuffix(cfg.DatabasePath(), filepath.Join(AppName, DatabaseFile)) {
			t.Errorf("unexpected database path %q", cfg.DatabasePath())
		}
	})
}

// TestConfigValidate tests each validation rule in isolation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		cfg := NewConfig()
		cfg.Target = "https://acme.test"
		return cfg
	}

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr error
	}{
		{name: "valid config", modify: func(*Config) {}},
		{name: "depth zero is valid", modify: func(c *Config) { c.MaxDepth = 0 }},
		{name: "empty target", modify: func(c *Config) { c.Target = "" }, wantErr: ErrNoTarget},
		{name: "blank target", modify: func(c *Config) { c.Target = "   " }, wantErr: ErrNoTarget},
		{name: "zero timeout", modify: func(c *Config) { c.Timeout = 0 }, wantErr: ErrInvalidTimeout},
		{name: "negative timeout", modify: func(c *Config) { c.Timeout = -time.Second }, wantErr: ErrInvalidTimeout},
		{name: "zero max pages", modify: func(c *Config) { c.MaxPages = 0 }, wantErr: ErrInvalidMaxPages},
		{name: "negative depth", modify: func(c *Config) { c.MaxDepth = -1 }, wantErr: ErrInvalidMaxDepth},
		{name: "negative body size", modify: func(c *Config) { c.MaxBodySize = -1 }, wantErr: ErrInvalidMaxBodySize},
		{name: "zero body size is valid", modify: func(c *Config) { c.MaxBodySize = 0 }},
		{name: "zero batch size", modify: func(c *Config) { c.BatchSize = 0 }, wantErr: ErrInvalidBatchSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestOutputFileName tests output name derivation from the website URL.
func TestOutputFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		website string
		want    string
	}{
		{"https://acme.test", "acme.test_output.json"},
		{"https://acme.test/", "acme.test__output.json"},
		{"http://acme.test/en/home", "acme.test_en_home_output.json"},
		{"acme.test", "acme.test_output.json"},
	}

	for _, tt := range tests {
		t.Run(tt.website, func(t *testing.T) {
			t.Parallel()
			if got := OutputFileName(tt.website); got != tt.want {
				t.Errorf("OutputFileName(%q) = %q, want %q", tt.website, got, tt.want)
			}
		})
	}
}

// TestOutputPath tests that an explicit output file wins over the derived name.
func TestOutputPath(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.Target = "https://acme.test"

	if got := cfg.OutputPath(); got != filepath.Join("outputs", "acme.test_output.json") {
		t.Errorf("unexpected derived path %q", got)
	}

	cfg.OutputFile = "/tmp/profile.json"
	if got := cfg.OutputPath(); got != "/tmp/profile.json" {
		t.Errorf("expected explicit path, got %q", got)
	}
}

// TestFileGetSiteConfig tests merging of defaults and per-host settings.
func TestFileGetSiteConfig(t *testing.T) {
	t.Parallel()

	zero := 0
	cf := &File{
		Defaults: SiteConfig{
			MaxPages: 20,
			Cookie:   "default=1",
			Headers:  map[string]string{"Accept-Language": "en"},
		},
		Sites: map[string]SiteConfig{
			"acme.test": {
				Depth:   &zero,
				Cookie:  "session=abc",
				Headers: map[string]string{"X-Team": "research"},
			},
		},
	}

	t.Run("unknown host gets defaults", func(t *testing.T) {
		t.Parallel()

		site := cf.GetSiteConfig("other.test")
		if site.MaxPages != 20 || site.Cookie != "default=1" || site.Depth != nil {
			t.Errorf("unexpected config %+v", site)
		}
	})

	t.Run("known host overrides defaults", func(t *testing.T) {
		t.Parallel()

		site := cf.GetSiteConfig("acme.test")
		if site.MaxPages != 20 {
			t.Errorf("expected inherited MaxPages, got %d", site.MaxPages)
		}
		if site.Depth == nil || *site.Depth != 0 {
			t.Errorf("expected explicit depth 0, got %v", site.Depth)
		}
		if site.Cookie != "session=abc" {
			t.Errorf("expected site cookie, got %q", site.Cookie)
		}
		if site.Headers["Accept-Language"] != "en" || site.Headers["X-Team"] != "research" {
			t.Errorf("expected merged headers, got %v", site.Headers)
		}
	})

	t.Run("merging does not modify defaults", func(t *testing.T) {
		t.Parallel()

		_ = cf.GetSiteConfig("acme.test")
		if _, ok := cf.Defaults.Headers["X-Team"]; ok {
			t.Error("defaults headers were modified")
		}
	})
}

// TestApplyFile tests applying file settings onto a Config.
func TestApplyFile(t *testing.T) {
	t.Parallel()

	t.Run("overrides budgets and request settings", func(t *testing.T) {
		t.Parallel()

		depth := 1
		cf := &File{Defaults: SiteConfig{
			MaxPages:  5,
			Depth:     &depth,
			Timeout:   "3s",
			UserAgent: "custom/1.0",
			Cookie:    "a=b",
			Headers:   map[string]string{"X-Test": "1"},
		}}

		cfg := NewConfig()
		if err := cfg.ApplyFile(cf, "acme.test"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MaxPages != 5 || cfg.MaxDepth != 1 || cfg.Timeout != 3*time.Second {
			t.Errorf("unexpected budgets %d %d %v", cfg.MaxPages, cfg.MaxDepth, cfg.Timeout)
		}
		if cfg.UserAgent != "custom/1.0" || cfg.Cookie != "a=b" || cfg.Headers["X-Test"] != "1" {
			t.Errorf("unexpected request settings %+v", cfg)
		}
	})

	t.Run("invalid timeout", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := cfg.ApplyFile(&File{Defaults: SiteConfig{Timeout: "soon"}}, "acme.test")
		if !errors.Is(err, ErrInvalidTimeout) {
			t.Errorf("expected ErrInvalidTimeout, got %v", err)
		}
	})

	t.Run("intent and social tables", func(t *testing.T) {
		t.Parallel()

		cf := &File{
			Intents: []IntentEntry{
				{Intent: "contact", Keywords: []string{"kontakt"}},
				{Intent: "about", Keywords: []string{"about"}},
			},
			Social: []SocialEntry{{Name: "github", Domains: []string{"github.com"}}},
		}

		cfg := NewConfig()
		if err := cfg.ApplyFile(cf, "acme.test"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(cfg.IntentRules) != 2 || cfg.IntentRules[0].Intent != model.IntentContact {
			t.Errorf("unexpected intent rules %+v", cfg.IntentRules)
		}
		if len(cfg.SocialPlatforms) != 1 || cfg.SocialPlatforms[0].Name != "github" {
			t.Errorf("unexpected platforms %+v", cfg.SocialPlatforms)
		}
	})

	t.Run("unknown intent", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := cfg.ApplyFile(&File{Intents: []IntentEntry{{Intent: "blog"}}}, "acme.test")
		if !errors.Is(err, ErrUnknownIntent) {
			t.Errorf("expected ErrUnknownIntent, got %v", err)
		}
	})

	t.Run("platform without domains", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		err := cfg.ApplyFile(&File{Social: []SocialEntry{{Name: "github"}}}, "acme.test")
		if !errors.Is(err, ErrEmptyPlatform) {
			t.Errorf("expected ErrEmptyPlatform, got %v", err)
		}
	})

	t.Run("empty file changes nothing", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		if err := cfg.ApplyFile(&File{}, "acme.test"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MaxPages != DefaultMaxPages || cfg.IntentRules != nil || cfg.SocialPlatforms != nil {
			t.Errorf("expected defaults, got %+v", cfg)
		}
	})
}

// TestLoadConfigFile tests the LoadConfigFile function.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		cfg, err := LoadConfigFile("/nonexistent/path/.siteprofile")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cfg != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".siteprofile")
		content := `defaults:
  maxPages: 30
  depth: 0
  timeout: 5s
sites:
  acme.test:
    cookie: "session=xyz"
    headers:
      Authorization: "Bearer token"
intents:
  - intent: careers
    keywords: [jobs, vacancies]
social:
  - name: mastodon
    domains: [mastodon.social]
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.Defaults.MaxPages != 30 || cf.Defaults.Timeout != "5s" {
			t.Errorf("unexpected defaults %+v", cf.Defaults)
		}
		if cf.Defaults.Depth == nil || *cf.Defaults.Depth != 0 {
			t.Errorf("expected explicit depth 0, got %v", cf.Defaults.Depth)
		}
		site, ok := cf.Sites["acme.test"]
		if !ok {
			t.Fatal("expected acme.test in sites")
		}
		if site.Headers["Authorization"] != "Bearer token" {
			t.Error("expected Authorization header")
		}
		if len(cf.Intents) != 1 || len(cf.Intents[0].Keywords) != 2 {
			t.Errorf("unexpected intents %+v", cf.Intents)
		}
		if len(cf.Social) != 1 || cf.Social[0].Domains[0] != "mastodon.social" {
			t.Errorf("unexpected social %+v", cf.Social)
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".siteprofile")
		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfigFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("initializes nil Sites map", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), ".siteprofile")
		if err := os.WriteFile(configPath, []byte("defaults:\n  maxPages: 3\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cf.Sites == nil {
			t.Error("expected Sites map to be initialized")
		}
	})
}

// TestFindConfigFile tests the FindConfigFile function.
func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if exists", func(t *testing.T) {
		t.Parallel()

		configPath := filepath.Join(t.TempDir(), "custom.yaml")
		if err := os.WriteFile(configPath, []byte("defaults: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if result := FindConfigFile(configPath); result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if result := FindConfigFile("/nonexistent/path/config.yaml"); result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})
}

// TestXDGDirs tests XDG directory functions.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	if !strings.HasSuffix(XDGDataDir(), AppName) {
		t.Errorf("unexpected data dir %q", XDGDataDir())
	}
	if !strings.HasSuffix(XDGConfigDir(), AppName) {
		t.Errorf("unexpected config dir %q", XDGConfigDir())
	}
}
