package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/nao1215/siteprofile/internal/model"
)

// SimpleWriter outputs a plain-text summary for terminal display.
type SimpleWriter struct {
	baseWriter

	// verbose lists every crawled page and fetch error.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables per-page detail.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary.
func (w *SimpleWriter) Write(profile *model.Profile) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, profile)
	w.writeKeyPages(&sb, profile)
	w.writeContact(&sb, profile)
	w.writeCrawl(&sb, profile)

	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

func section(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")
}

func (w *SimpleWriter) writeHeader(sb *strings.Builder, profile *model.Profile) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                          COMPANY PROFILE\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	fmt.Fprintf(sb, "Company:       %s\n", orDash(profile.Identity.CompanyName))
	fmt.Fprintf(sb, "Website:       %s\n", profile.Identity.WebsiteURL)
	fmt.Fprintf(sb, "Tagline:       %s\n", orDash(profile.Identity.Tagline))
	fmt.Fprintf(sb, "Crawled At:    %s\n", profile.Metadata.Timestamp.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(sb, "Pages Crawled: %d\n", len(profile.Metadata.PagesCrawled))
	fmt.Fprintf(sb, "Fetch Errors:  %d\n", len(profile.Metadata.Errors))
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeKeyPages(sb *strings.Builder, profile *model.Profile) {
	section(sb, "KEY PAGES")

	if len(profile.Evidence.KeyPagesFound) == 0 {
		sb.WriteString("  No key pages found\n\n")
		return
	}
	for _, intent := range model.Intents() {
		pages := profile.Evidence.KeyPagesFound[intent]
		if len(pages) == 0 {
			continue
		}
		fmt.Fprintf(sb, "  %-9s %d page(s)\n", strings.ToUpper(intent.String())+":", len(pages))
		if w.verbose {
			for _, p := range pages {
				fmt.Fprintf(sb, "    %s\n", p)
			}
		}
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeContact(sb *strings.Builder, profile *model.Profile) {
	section(sb, "CONTACT")

	fmt.Fprintf(sb, "  Contact page: %s\n", orDash(profile.ContactLocation.ContactPage))
	fmt.Fprintf(sb, "  Careers page: %s\n", orDash(profile.TeamHiring.CareersPage))
	for _, e := range profile.ContactLocation.Emails {
		fmt.Fprintf(sb, "  [@] %s\n", e)
	}
	for _, p := range profile.ContactLocation.Phones {
		fmt.Fprintf(sb, "  [#] %s\n", strings.TrimSpace(p))
	}

	platforms := make([]string, 0, len(profile.Evidence.SocialLinks))
	for p := range profile.Evidence.SocialLinks {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)
	for _, p := range platforms {
		fmt.Fprintf(sb, "  [+] %s: %s\n", p, profile.Evidence.SocialLinks[p])
	}
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeCrawl(sb *strings.Builder, profile *model.Profile) {
	if !w.verbose && len(profile.Metadata.Errors) == 0 && len(profile.Metadata.Notes) == 0 {
		return
	}

	section(sb, "CRAWL")

	if w.verbose {
		for _, p := range profile.Metadata.PagesCrawled {
			fmt.Fprintf(sb, "  [ok] %s\n", p)
		}
	}
	for _, e := range profile.Metadata.Errors {
		fmt.Fprintf(sb, "  [!!] %s: %s\n", e.URL, e.Message)
	}
	for _, n := range profile.Metadata.Notes {
		fmt.Fprintf(sb, "  [i] %s\n", n)
	}
	sb.WriteString("\n")
}
