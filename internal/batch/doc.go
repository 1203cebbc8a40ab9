// Package batch runs independent crawls of several websites with bounded
// concurrency.
//
// Each target is handled by its own job; a failing job never stops the
// others. Within one job the crawl itself stays sequential.
package batch
