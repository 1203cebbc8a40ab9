// Package crawler provides the bounded company-site crawl.
//
// # Architecture
//
// The Spider drives a breadth-first traversal from a single seed URL. It
// owns the frontier (a FIFO of URL and depth pairs), the visited set, and
// the page and depth budgets. For every fetched page it runs the signal
// extractors and link matchers and writes the results into a model.Profile.
//
// # Components
//
//   - Spider: the frontier and crawl controller
//   - Fetcher / HTTPFetcher: the page fetch contract and its net/http implementation
//   - Document: the parsed page (visible text, meta tags, title, anchors)
//
// # Traversal rules
//
//   - Only links that classify under an intent are followed
//   - Only links on the seed's host are followed; social links may be off-site
//   - A URL is fetched at most once; failed fetches are recorded, not retried
//   - Visited keys drop the fragment and are lowercased
//
// # Usage
//
//	spider := crawler.NewSpider(crawler.NewHTTPFetcher(http.DefaultClient), crawler.WithMaxPages(15))
//	profile, err := spider.Crawl(ctx, "https://example.com")
package crawler
