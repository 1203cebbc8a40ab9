// Package report renders a crawled company profile.
//
// Writers:
//   - JSONWriter: the persisted profile record
//   - MarkdownWriter: a shareable summary with tables and alerts
//   - SimpleWriter: a plain-text summary for the terminal
//
// All writers implement Writer and can be combined with MultiWriter.
package report
