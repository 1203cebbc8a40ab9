// Package log builds the slog loggers used by siteprofile.
//
// Crawls may be configured with cookies and extra request headers, so every
// logger returned here wraps its handler in a RedactingHandler that masks
// credential-bearing attributes before they reach the output:
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("request headers", "headers", cfg.Headers) // Authorization value masked
//	logger.Debug("cookie", "cookie", "session=abc")          // masked
package log
