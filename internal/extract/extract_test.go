package extract

import (
	"testing"
)

// fakeDoc is a HomepageDocument backed by maps.
type fakeDoc struct {
	properties map[string]string
	names      map[string]string
	title      *string
}

func (d fakeDoc) MetaProperty(name string) (string, bool) {
	v, ok := d.properties[name]
	return v, ok
}

func (d fakeDoc) MetaName(name string) (string, bool) {
	v, ok := d.names[name]
	return v, ok
}

func (d fakeDoc) Title() (string, bool) {
	if d.title == nil {
		return "", false
	}
	return *d.title, true
}

func strPtr(s string) *string { return &s }

// containsAll reports whether every want value is in got.
func containsAll(got, want []string) bool {
	set := make(map[string]bool, len(got))
	for _, g := range got {
		set[g] = true
	}
	for _, w := range want {
		if !set[w] {
			return false
		}
	}
	return true
}

// TestEmails tests email extraction from page text.
func TestEmails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single address in sentence",
			text: "Contact us at sales@acme.test or +1 (555) 123-4567",
			want: []string{"sales@acme.test"},
		},
		{
			name: "multiple addresses with plus and dots",
			text: "hr.team+jobs@acme.co.uk, press@acme.io",
			want: []string{"hr.team+jobs@acme.co.uk", "press@acme.io"},
		},
		{
			name: "duplicates removed",
			text: "info@acme.test info@acme.test",
			want: []string{"info@acme.test"},
		},
		{
			name: "case is preserved",
			text: "Info@Acme.Test",
			want: []string{"Info@Acme.Test"},
		},
		{
			name: "no tld is not an email",
			text: "user@localhost",
			want: []string{},
		},
		{
			name: "single letter tld is not an email",
			text: "user@acme.c",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Emails(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			if !containsAll(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

// TestPhones tests phone extraction from page text.
func TestPhones(t *testing.T) {
	t.Parallel()

	t.Run("international number with parentheses", func(t *testing.T) {
		t.Parallel()

		got := Phones("Contact us at sales@acme.test or +1 (555) 123-4567")
		if len(got) != 1 {
			t.Fatalf("expected 1 phone, got %v", got)
		}
		if got[0] != "+1 (555) 123-4567" {
			t.Errorf("expected %q, got %q", "+1 (555) 123-4567", got[0])
		}
	})

	t.Run("too short digit run is ignored", func(t *testing.T) {
		t.Parallel()

		if got := Phones("Call 555-12 now"); len(got) != 0 {
			t.Errorf("expected no phones, got %v", got)
		}
	})

	t.Run("duplicates removed", func(t *testing.T) {
		t.Parallel()

		got := Phones("020 7946 0958 | 020 7946 0958 |")
		if len(got) != 1 {
			t.Errorf("expected 1 phone, got %v", got)
		}
	})

	t.Run("no-break spaces between digit groups", func(t *testing.T) {
		t.Parallel()

		got := Phones("Call +1\u00a0555\u00a0123\u00a04567 now")
		if len(got) != 1 || got[0] != "+1\u00a0555\u00a0123\u00a04567 " {
			t.Errorf("expected the nbsp-separated number, got %q", got)
		}
	})

	t.Run("non-ASCII digits", func(t *testing.T) {
		t.Parallel()

		got := Phones("Tel ٠١٢٣٤٥٦٧٨٩")
		if len(got) != 1 || got[0] != "٠١٢٣٤٥٦٧٨٩" {
			t.Errorf("expected Arabic-Indic digits to match, got %q", got)
		}
	})

	t.Run("long digit runs are accepted candidates", func(t *testing.T) {
		t.Parallel()

		got := Phones("Order 123456789")
		if len(got) != 1 || got[0] != "123456789" {
			t.Errorf("expected digit run to be reported, got %v", got)
		}
	})
}

// TestCleanCompanyName tests the title cleanup cascade.
func TestCleanCompanyName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "pipe separator", raw: "Buy Now | Acme Corp", want: "Acme Corp", wantOK: true},
		{name: "no separator", raw: "  Acme Corp  ", want: "Acme Corp", wantOK: true},
		{name: "last occurrence wins", raw: "Home | Shop | Acme", want: "Acme", wantOK: true},
		{name: "separators cascade in order", raw: "Acme – Home | Widgets - Acme Inc", want: "Acme Inc", wantOK: true},
		{name: "en dash", raw: "Welcome – Acme", want: "Acme", wantOK: true},
		{name: "em dash", raw: "Welcome — Acme", want: "Acme", wantOK: true},
		{name: "hyphen in name is split", raw: "Acme-Europe", want: "Europe", wantOK: true},
		{name: "retail words are kept", raw: "Acme | Official Online Store", want: "Official Online Store", wantOK: true},
		{name: "empty title", raw: "", want: "", wantOK: false},
		{name: "trailing separator leaves empty name", raw: "Acme |", want: "", wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := CleanCompanyName(tt.raw)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLooksRetail(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]bool{
		"Official Online Store": true,
		"Buy Now":               true,
		"ACME SHOP":             true,
		"Acme Corp":             false,
		"":                      false,
	} {
		if got := LooksRetail(name); got != want {
			t.Errorf("LooksRetail(%q) = %v, want %v", name, got, want)
		}
	}
}

// TestResolveIdentity tests homepage identity resolution.
func TestResolveIdentity(t *testing.T) {
	t.Parallel()

	t.Run("title is cleaned when og:site_name is absent", func(t *testing.T) {
		t.Parallel()

		id := ResolveIdentity(fakeDoc{title: strPtr("Buy Now | Acme Corp")})
		if id.CompanyName == nil || *id.CompanyName != "Acme Corp" {
			t.Errorf("expected Acme Corp, got %v", id.CompanyName)
		}
		if id.Tagline != nil {
			t.Errorf("expected no tagline, got %q", *id.Tagline)
		}
	})

	t.Run("og:site_name wins over title", func(t *testing.T) {
		t.Parallel()

		id := ResolveIdentity(fakeDoc{
			properties: map[string]string{"og:site_name": "  Acme Industries  "},
			title:      strPtr("Home | Something Else"),
		})
		if id.CompanyName == nil || *id.CompanyName != "Acme Industries" {
			t.Errorf("expected Acme Industries, got %v", id.CompanyName)
		}
	})

	t.Run("empty og:site_name falls back to title", func(t *testing.T) {
		t.Parallel()

		id := ResolveIdentity(fakeDoc{
			properties: map[string]string{"og:site_name": ""},
			title:      strPtr("Acme"),
		})
		if id.CompanyName == nil || *id.CompanyName != "Acme" {
			t.Errorf("expected Acme, got %v", id.CompanyName)
		}
	})

	t.Run("no title and no og leaves name unset", func(t *testing.T) {
		t.Parallel()

		id := ResolveIdentity(fakeDoc{})
		if id.CompanyName != nil {
			t.Errorf("expected no name, got %q", *id.CompanyName)
		}
	})

	t.Run("tagline is verbatim description", func(t *testing.T) {
		t.Parallel()

		id := ResolveIdentity(fakeDoc{
			names: map[string]string{"description": " Anvils since 1949 "},
		})
		if id.Tagline == nil || *id.Tagline != " Anvils since 1949 " {
			t.Errorf("expected verbatim tagline, got %v", id.Tagline)
		}
	})
}
