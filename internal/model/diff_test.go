package model

import (
	"testing"
	"time"
)

// TestDiff tests comparison of two crawls of the same site.
func TestDiff(t *testing.T) {
	t.Parallel()

	older := NewProfile("https://acme.test", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	older.SetCompanyName("Acme")
	older.RecordPage("https://acme.test")
	older.AddKeyPage(IntentAbout, "https://acme.test/about")
	older.AddKeyPage(IntentCareers, "https://acme.test/jobs")
	older.AddEmails("old@acme.test", "sales@acme.test")
	older.SetSocialLink("linkedin", "https://linkedin.com/company/acme")
	older.SetSocialLink("twitter", "https://twitter.com/acme")
	older.Finalize()

	newer := NewProfile("https://acme.test", time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))
	newer.SetCompanyName("Acme Corp")
	newer.RecordPage("https://acme.test")
	newer.RecordPage("https://acme.test/about")
	newer.AddKeyPage(IntentAbout, "https://acme.test/about")
	newer.AddKeyPage(IntentCareers, "https://acme.test/careers")
	newer.AddEmails("sales@acme.test", "new@acme.test")
	newer.SetSocialLink("linkedin", "https://linkedin.com/company/acme-europe")
	newer.SetSocialLink("youtube", "https://youtube.com/acme")
	newer.Finalize()

	d := Diff(older, newer)

	if !d.HasChanges() {
		t.Fatal("expected changes")
	}
	if d.OldCompanyName != "Acme" || d.NewCompanyName != "Acme Corp" {
		t.Errorf("unexpected company change %q -> %q", d.OldCompanyName, d.NewCompanyName)
	}
	if got := d.AddedKeyPages[IntentCareers]; len(got) != 1 || got[0] != "https://acme.test/careers" {
		t.Errorf("unexpected added careers %v", got)
	}
	if got := d.RemovedKeyPages[IntentCareers]; len(got) != 1 || got[0] != "https://acme.test/jobs" {
		t.Errorf("unexpected removed careers %v", got)
	}
	if _, ok := d.AddedKeyPages[IntentAbout]; ok {
		t.Error("unchanged intent should not be listed")
	}
	if len(d.AddedEmails) != 1 || d.AddedEmails[0] != "new@acme.test" {
		t.Errorf("unexpected added emails %v", d.AddedEmails)
	}
	if len(d.RemovedEmails) != 1 || d.RemovedEmails[0] != "old@acme.test" {
		t.Errorf("unexpected removed emails %v", d.RemovedEmails)
	}
	if d.PagesDelta != 1 || d.ErrorsDelta != 0 {
		t.Errorf("unexpected deltas %d %d", d.PagesDelta, d.ErrorsDelta)
	}

	want := []SocialChange{
		{Platform: "linkedin", Old: "https://linkedin.com/company/acme", New: "https://linkedin.com/company/acme-europe"},
		{Platform: "twitter", Old: "https://twitter.com/acme"},
		{Platform: "youtube", New: "https://youtube.com/acme"},
	}
	if len(d.SocialChanges) != len(want) {
		t.Fatalf("expected %d social changes, got %v", len(want), d.SocialChanges)
	}
	for i := range want {
		if d.SocialChanges[i] != want[i] {
			t.Errorf("index %d: expected %+v, got %+v", i, want[i], d.SocialChanges[i])
		}
	}
}

// TestDiffIdentical tests that identical profiles have no changes.
func TestDiffIdentical(t *testing.T) {
	t.Parallel()

	p := NewProfile("https://acme.test", time.Now())
	p.AddKeyPage(IntentContact, "https://acme.test/contact")
	p.AddEmails("a@acme.test")
	p.SetSocialLink("instagram", "https://instagram.com/acme")

	if d := Diff(p, p); d.HasChanges() {
		t.Errorf("expected no changes, got %+v", d)
	}
}
