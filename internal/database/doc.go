// Package database stores crawl history for siteprofile in SQLite
// (modernc.org/sqlite, no cgo).
//
// Every crawl becomes one row in crawls holding the full profile JSON plus
// summary columns, and one row per fetched page in pages with its depth and
// fetch order. The history command reads these back to list past runs.
package database
