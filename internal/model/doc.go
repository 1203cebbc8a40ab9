// Package model defines the data structures shared across siteprofile.
//
// This package contains the following main types:
//   - Profile: The structured company profile produced by one crawl
//   - Intent: The purpose category assigned to an internal link
//   - CrawlError: A single failed fetch, serialized as {url: message}
//
// The crawler populates a Profile incrementally; the report and database
// packages only read it. Keeping the types here avoids import cycles between
// those packages.
//
// All types serialize to the JSON layout written by the scan command, so
// field names and tags must stay stable.
package model
