// Package main provides the entry point for the siteprofile CLI.
//
// siteprofile crawls a company website breadth-first within a small page
// and depth budget and writes a structured JSON profile of what it found:
// identity, key pages, contact signals, and social links.
//
// Usage:
//
//	siteprofile scan https://example.com
//	siteprofile history https://example.com
//
// See --help for all available options.
package main

func main() {
	Execute()
}
