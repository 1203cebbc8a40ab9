package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// NoteBusinessSummaryMissing is appended to the notes when no business
// summary could be derived from the crawled pages.
const NoteBusinessSummaryMissing = "Business summary could not be reliably extracted without heuristic inference."

// Profile is the structured output of one company website crawl.
// It is created empty by NewProfile, filled in while pages are crawled,
// and closed off with Finalize once traversal ends.
type Profile struct {
	// Identity holds the company name, website, and tagline.
	Identity Identity `json:"identity"`

	// BusinessSummary is never inferred by the crawler; it exists so the
	// output layout is complete and downstream tools can fill it in.
	BusinessSummary BusinessSummary `json:"business_summary"`

	// Evidence holds categorized internal pages and social profiles.
	Evidence Evidence `json:"evidence"`

	// ContactLocation holds contact signals found in page text.
	ContactLocation ContactLocation `json:"contact_location"`

	// TeamHiring holds hiring-related pages.
	TeamHiring TeamHiring `json:"team_hiring"`

	// Metadata describes the crawl itself.
	Metadata Metadata `json:"metadata"`
}

// Identity describes who the company is.
type Identity struct {
	// CompanyName is resolved from the homepage only. Nil when unknown.
	CompanyName *string `json:"company_name"`

	// WebsiteURL is the seed URL exactly as given.
	WebsiteURL string `json:"website_url"`

	// Tagline is the homepage meta description, if any.
	Tagline *string `json:"tagline"`
}

// BusinessSummary describes what the company does.
type BusinessSummary struct {
	WhatTheyDo       *string  `json:"what_they_do"`
	PrimaryOfferings []string `json:"primary_offerings"`
	TargetSegments   []string `json:"target_segments"`
}

// Evidence collects the links that support the profile.
// Both maps serialize with their keys in sorted order.
type Evidence struct {
	// KeyPagesFound maps an intent to the unique URLs classified with it,
	// in discovery order. A key exists only after its first URL is found.
	KeyPagesFound map[Intent][]string `json:"key_pages_found"`

	// SocialLinks maps a platform name to the most recently seen URL.
	SocialLinks map[string]string `json:"social_links"`
}

// ContactLocation collects contact signals.
type ContactLocation struct {
	Emails []string `json:"emails"`
	Phones []string `json:"phones"`

	// Address is part of the output layout but no extractor fills it.
	Address *string `json:"address"`

	// ContactPage is the last URL classified as a contact page.
	ContactPage *string `json:"contact_page"`
}

// TeamHiring collects hiring signals.
type TeamHiring struct {
	// CareersPage is the last URL classified as a careers page.
	CareersPage *string `json:"careers_page"`
}

// Metadata describes the crawl run.
type Metadata struct {
	// Timestamp is the UTC instant the crawl started.
	Timestamp time.Time `json:"timestamp"`

	// PagesCrawled lists successfully fetched URLs in fetch order.
	PagesCrawled []string `json:"pages_crawled"`

	// Errors lists failed fetches in the order they happened.
	Errors []CrawlError `json:"errors"`

	// Notes holds free-text diagnostics.
	Notes []string `json:"notes"`
}

// CrawlError is a failed fetch. It serializes as a single-key JSON object
// mapping the URL to the error message.
type CrawlError struct {
	URL     string
	Message string
}

// ErrMalformedCrawlError is returned when a serialized crawl error is not a
// single-key object.
var ErrMalformedCrawlError = errors.New("crawl error must be an object with exactly one key")

// MarshalJSON implements json.Marshaler. Query strings keep their literal
// "&" rather than the \u0026 escape.
func (e CrawlError) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(map[string]string{e.URL: e.Message}); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *CrawlError) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return ErrMalformedCrawlError
	}
	for k, v := range m {
		e.URL = k
		e.Message = v
	}
	return nil
}

// NewProfile creates an empty profile for the given website.
// All list and map fields are non-nil so they serialize as [] and {}.
func NewProfile(websiteURL string, startedAt time.Time) *Profile {
	return &Profile{
		Identity: Identity{
			WebsiteURL: websiteURL,
		},
		BusinessSummary: BusinessSummary{
			PrimaryOfferings: make([]string, 0),
			TargetSegments:   make([]string, 0),
		},
		Evidence: Evidence{
			KeyPagesFound: make(map[Intent][]string),
			SocialLinks:   make(map[string]string),
		},
		ContactLocation: ContactLocation{
			Emails: make([]string, 0),
			Phones: make([]string, 0),
		},
		Metadata: Metadata{
			Timestamp:    startedAt.UTC(),
			PagesCrawled: make([]string, 0),
			Errors:       make([]CrawlError, 0),
			Notes:        make([]string, 0),
		},
	}
}

// SetCompanyName sets the company name.
func (p *Profile) SetCompanyName(name string) {
	p.Identity.CompanyName = &name
}

// SetTagline sets the tagline.
func (p *Profile) SetTagline(tagline string) {
	p.Identity.Tagline = &tagline
}

// RecordPage appends a successfully fetched URL.
func (p *Profile) RecordPage(pageURL string) {
	p.Metadata.PagesCrawled = append(p.Metadata.PagesCrawled, pageURL)
}

// RecordError appends a failed fetch.
func (p *Profile) RecordError(pageURL, message string) {
	p.Metadata.Errors = append(p.Metadata.Errors, CrawlError{URL: pageURL, Message: message})
}

// AddNote appends a diagnostic note.
func (p *Profile) AddNote(note string) {
	p.Metadata.Notes = append(p.Metadata.Notes, note)
}

// AddEmails extends the running email list. Duplicates are removed by Finalize.
func (p *Profile) AddEmails(emails ...string) {
	p.ContactLocation.Emails = append(p.ContactLocation.Emails, emails...)
}

// AddPhones extends the running phone list. Duplicates are removed by Finalize.
func (p *Profile) AddPhones(phones ...string) {
	p.ContactLocation.Phones = append(p.ContactLocation.Phones, phones...)
}

// SetSocialLink stores the URL for a platform, replacing any earlier one.
func (p *Profile) SetSocialLink(platform, href string) {
	p.Evidence.SocialLinks[platform] = href
}

// AddKeyPage files a URL under an intent. It returns false if the URL was
// already listed for that intent. Contact and careers URLs also update the
// corresponding single-page fields, whether or not they were new.
func (p *Profile) AddKeyPage(intent Intent, pageURL string) bool {
	switch intent {
	case IntentContact:
		p.ContactLocation.ContactPage = &pageURL
	case IntentCareers:
		p.TeamHiring.CareersPage = &pageURL
	}

	pages := p.Evidence.KeyPagesFound[intent]
	for _, existing := range pages {
		if existing == pageURL {
			return false
		}
	}
	p.Evidence.KeyPagesFound[intent] = append(pages, pageURL)
	return true
}

// Finalize removes duplicate emails and phones and records a note when the
// business summary is still missing. It is safe to call more than once.
func (p *Profile) Finalize() {
	p.ContactLocation.Emails = uniqueStrings(p.ContactLocation.Emails)
	p.ContactLocation.Phones = uniqueStrings(p.ContactLocation.Phones)

	if p.BusinessSummary.WhatTheyDo == nil {
		for _, note := range p.Metadata.Notes {
			if note == NoteBusinessSummaryMissing {
				return
			}
		}
		p.AddNote(NoteBusinessSummaryMissing)
	}
}

// CompanyNameOrEmpty returns the company name or "" when unknown.
func (p *Profile) CompanyNameOrEmpty() string {
	if p.Identity.CompanyName == nil {
		return ""
	}
	return *p.Identity.CompanyName
}

// uniqueStrings returns values without duplicates, keeping first-seen order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		unique = append(unique, v)
	}
	return unique
}
