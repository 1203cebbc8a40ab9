package report

import (
	"io"
	"sort"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/siteprofile/internal/model"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MarkdownWriter outputs a profile summary in GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
	title cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		title:      cases.Title(language.English),
	}
}

// Write outputs the profile summary.
func (w *MarkdownWriter) Write(profile *model.Profile) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, profile)
	w.writeKeyPages(md, profile)
	w.writeContact(md, profile)
	w.writeSocial(md, profile)
	w.writeCrawl(md, profile)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the identity table and a crawl status alert.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, profile *model.Profile) {
	name := profile.CompanyNameOrEmpty()
	if name == "" {
		name = profile.Identity.WebsiteURL
	}
	md.H1("Company Profile: " + name)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Company", orDash(profile.Identity.CompanyName)},
			{"Website", "`" + profile.Identity.WebsiteURL + "`"},
			{"Tagline", orDash(profile.Identity.Tagline)},
			{"Crawled At", profile.Metadata.Timestamp.Format("2006-01-02 15:04:05 MST")},
			{"Pages Crawled", strconv.Itoa(len(profile.Metadata.PagesCrawled))},
			{"Fetch Errors", strconv.Itoa(len(profile.Metadata.Errors))},
		},
	})
	md.PlainText("")

	pages, errs := len(profile.Metadata.PagesCrawled), len(profile.Metadata.Errors)
	switch {
	case pages == 0:
		md.Cautionf("The website could not be crawled. %d fetch error(s) were recorded.", errs)
	case errs > 0:
		md.Warningf("%d page(s) could not be fetched. The profile may be incomplete.", errs)
	default:
		md.Tip("Every discovered page was fetched successfully.")
	}
	md.PlainText("")
}

// writeKeyPages writes the classified pages in intent priority order.
func (w *MarkdownWriter) writeKeyPages(md *markdown.Markdown, profile *model.Profile) {
	md.H2("Key Pages")
	md.PlainText("")

	if len(profile.Evidence.KeyPagesFound) == 0 {
		md.PlainText("No key pages found.")
		md.PlainText("")
		return
	}

	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Key Pages by Category"),
		piechart.WithShowData(true),
	)

	rows := make([][]string, 0)
	for _, intent := range model.Intents() {
		pages := profile.Evidence.KeyPagesFound[intent]
		if len(pages) == 0 {
			continue
		}
		label := w.title.String(intent.String())
		chart.LabelAndIntValue(label, uint64(len(pages)))
		for _, p := range pages {
			rows = append(rows, []string{label, p})
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Category", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeContact writes contact and hiring signals.
func (w *MarkdownWriter) writeContact(md *markdown.Markdown, profile *model.Profile) {
	md.H2("Contact")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Signal", "Value"},
		Rows: [][]string{
			{"Contact Page", orDash(profile.ContactLocation.ContactPage)},
			{"Careers Page", orDash(profile.TeamHiring.CareersPage)},
			{"Emails", strconv.Itoa(len(profile.ContactLocation.Emails))},
			{"Phones", strconv.Itoa(len(profile.ContactLocation.Phones))},
		},
	})
	md.PlainText("")

	if len(profile.ContactLocation.Emails) > 0 {
		md.PlainText("**Emails**")
		md.PlainText("")
		md.BulletList(profile.ContactLocation.Emails...)
		md.PlainText("")
	}
	if len(profile.ContactLocation.Phones) > 0 {
		md.PlainText("**Phones**")
		md.PlainText("")
		md.BulletList(profile.ContactLocation.Phones...)
		md.PlainText("")
	}
}

// writeSocial writes social links sorted by platform.
func (w *MarkdownWriter) writeSocial(md *markdown.Markdown, profile *model.Profile) {
	md.H2("Social Links")
	md.PlainText("")

	if len(profile.Evidence.SocialLinks) == 0 {
		md.PlainText("No social links found.")
		md.PlainText("")
		return
	}

	platforms := make([]string, 0, len(profile.Evidence.SocialLinks))
	for p := range profile.Evidence.SocialLinks {
		platforms = append(platforms, p)
	}
	sort.Strings(platforms)

	rows := make([][]string, len(platforms))
	for i, p := range platforms {
		rows[i] = []string{w.title.String(p), profile.Evidence.SocialLinks[p]}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Platform", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeCrawl writes the crawled pages, fetch errors, and notes.
func (w *MarkdownWriter) writeCrawl(md *markdown.Markdown, profile *model.Profile) {
	md.H2("Crawl")
	md.PlainText("")

	if len(profile.Metadata.PagesCrawled) > 0 {
		md.BulletList(profile.Metadata.PagesCrawled...)
		md.PlainText("")
	}

	for _, e := range profile.Metadata.Errors {
		md.Details(e.URL, e.Message)
	}
	if len(profile.Metadata.Errors) > 0 {
		md.PlainText("")
	}

	for _, note := range profile.Metadata.Notes {
		md.Note(note)
		md.PlainText("")
	}
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by siteprofile*")
}
