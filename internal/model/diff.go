package model

import (
	"sort"
	"time"
)

// SocialChange is a social platform whose recorded URL differs between two
// crawls. Old or New is empty when the platform was added or removed.
type SocialChange struct {
	Platform string `json:"platform"`
	Old      string `json:"old,omitempty"`
	New      string `json:"new,omitempty"`
}

// ProfileDiff lists what changed between an older and a newer profile of the
// same website.
type ProfileDiff struct {
	Website        string    `json:"website"`
	OlderTimestamp time.Time `json:"older_timestamp"`
	NewerTimestamp time.Time `json:"newer_timestamp"`

	OldCompanyName string `json:"old_company_name,omitempty"`
	NewCompanyName string `json:"new_company_name,omitempty"`

	AddedKeyPages   map[Intent][]string `json:"added_key_pages,omitempty"`
	RemovedKeyPages map[Intent][]string `json:"removed_key_pages,omitempty"`

	AddedEmails   []string `json:"added_emails,omitempty"`
	RemovedEmails []string `json:"removed_emails,omitempty"`
	AddedPhones   []string `json:"added_phones,omitempty"`
	RemovedPhones []string `json:"removed_phones,omitempty"`

	SocialChanges []SocialChange `json:"social_changes,omitempty"`

	// PagesDelta and ErrorsDelta are newer minus older.
	PagesDelta  int `json:"pages_delta"`
	ErrorsDelta int `json:"errors_delta"`
}

// Diff compares two profiles. Social changes are sorted by platform.
func Diff(older, newer *Profile) *ProfileDiff {
	d := &ProfileDiff{
		Website:         newer.Identity.WebsiteURL,
		OlderTimestamp:  older.Metadata.Timestamp,
		NewerTimestamp:  newer.Metadata.Timestamp,
		AddedKeyPages:   make(map[Intent][]string),
		RemovedKeyPages: make(map[Intent][]string),
		PagesDelta:      len(newer.Metadata.PagesCrawled) - len(older.Metadata.PagesCrawled),
		ErrorsDelta:     len(newer.Metadata.Errors) - len(older.Metadata.Errors),
	}

	if oldName, newName := older.CompanyNameOrEmpty(), newer.CompanyNameOrEmpty(); oldName != newName {
		d.OldCompanyName, d.NewCompanyName = oldName, newName
	}

	for _, intent := range Intents() {
		added, removed := setDiff(older.Evidence.KeyPagesFound[intent], newer.Evidence.KeyPagesFound[intent])
		if len(added) > 0 {
			d.AddedKeyPages[intent] = added
		}
		if len(removed) > 0 {
			d.RemovedKeyPages[intent] = removed
		}
	}

	d.AddedEmails, d.RemovedEmails = setDiff(older.ContactLocation.Emails, newer.ContactLocation.Emails)
	d.AddedPhones, d.RemovedPhones = setDiff(older.ContactLocation.Phones, newer.ContactLocation.Phones)

	platforms := make(map[string]struct{})
	for p := range older.Evidence.SocialLinks {
		platforms[p] = struct{}{}
	}
	for p := range newer.Evidence.SocialLinks {
		platforms[p] = struct{}{}
	}
	for p := range platforms {
		oldURL, newURL := older.Evidence.SocialLinks[p], newer.Evidence.SocialLinks[p]
		if oldURL != newURL {
			d.SocialChanges = append(d.SocialChanges, SocialChange{Platform: p, Old: oldURL, New: newURL})
		}
	}
	sort.Slice(d.SocialChanges, func(i, j int) bool {
		return d.SocialChanges[i].Platform < d.SocialChanges[j].Platform
	})

	return d
}

// HasChanges reports whether any extracted signal changed. Page and error
// count deltas alone do not count.
func (d *ProfileDiff) HasChanges() bool {
	return d.OldCompanyName != d.NewCompanyName ||
		len(d.AddedKeyPages) > 0 || len(d.RemovedKeyPages) > 0 ||
		len(d.AddedEmails) > 0 || len(d.RemovedEmails) > 0 ||
		len(d.AddedPhones) > 0 || len(d.RemovedPhones) > 0 ||
		len(d.SocialChanges) > 0
}

// setDiff returns the values only in newer and only in older, each in the
// order of its own list.
func setDiff(older, newer []string) (added, removed []string) {
	inOld := make(map[string]struct{}, len(older))
	for _, v := range older {
		inOld[v] = struct{}{}
	}
	inNew := make(map[string]struct{}, len(newer))
	for _, v := range newer {
		inNew[v] = struct{}{}
		if _, ok := inOld[v]; !ok {
			added = append(added, v)
		}
	}
	for _, v := range older {
		if _, ok := inNew[v]; !ok {
			removed = append(removed, v)
		}
	}
	return added, removed
}
