package crawler

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nao1215/siteprofile/internal/classify"
	"github.com/nao1215/siteprofile/internal/extract"
	"github.com/nao1215/siteprofile/internal/model"
)

// Default crawl budgets.
const (
	// DefaultMaxDepth is the deepest level fetched, inclusive. The seed is depth 0.
	DefaultMaxDepth = 2

	// DefaultMaxPages is the maximum number of successfully fetched pages.
	DefaultMaxPages = 15
)

// PageHook is called after every successful fetch.
type PageHook func(pageURL string, depth int)

// Spider crawls one company website breadth-first and builds its profile.
// A Spider may be reused; each Crawl starts with an empty frontier and
// visited set. Crawl must not be called concurrently on the same Spider.
type Spider struct {
	// fetcher retrieves page bodies.
	fetcher Fetcher

	// maxDepth limits how deep to crawl from the seed URL.
	// 0 means only the seed page.
	maxDepth int

	// maxPages limits the number of successfully fetched pages.
	maxPages int

	// classifier files internal links under an intent.
	classifier *classify.Classifier

	// social recognizes social profile links.
	social *classify.SocialMatcher

	logger *slog.Logger

	// onPage is optional.
	onPage PageHook

	// now returns the crawl start time.
	now func() time.Time

	// mutex protects stats.
	mutex sync.Mutex

	// stats describes the most recent crawl.
	stats SpiderStats
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithMaxDepth sets the maximum crawl depth.
func WithMaxDepth(depth int) SpiderOption {
	return func(s *Spider) {
		s.maxDepth = depth
	}
}

// WithMaxPages sets the maximum number of pages to fetch successfully.
func WithMaxPages(maxPages int) SpiderOption {
	return func(s *Spider) {
		s.maxPages = maxPages
	}
}

// WithIntentRules replaces the link classification rules.
func WithIntentRules(rules []classify.IntentRule) SpiderOption {
	return func(s *Spider) {
		s.classifier = classify.NewClassifier(rules)
	}
}

// WithSocialPlatforms replaces the social platform table.
func WithSocialPlatforms(platforms []classify.SocialPlatform) SpiderOption {
	return func(s *Spider) {
		s.social = classify.NewSocialMatcher(platforms)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// WithPageHook registers a callback for every successful fetch.
func WithPageHook(hook PageHook) SpiderOption {
	return func(s *Spider) {
		s.onPage = hook
	}
}

// WithClock sets the function used to stamp the crawl start.
func WithClock(now func() time.Time) SpiderOption {
	return func(s *Spider) {
		s.now = now
	}
}

// NewSpider creates a new Spider that fetches pages with fetcher.
func NewSpider(fetcher Fetcher, opts ...SpiderOption) *Spider {
	s := &Spider{
		fetcher:    fetcher,
		maxDepth:   DefaultMaxDepth,
		maxPages:   DefaultMaxPages,
		classifier: classify.NewClassifier(nil),
		social:     classify.NewSocialMatcher(nil),
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s
}

// queueItem is a frontier entry.
type queueItem struct {
	url   string
	depth int
}

// crawlState is the per-crawl mutable state.
type crawlState struct {
	profile  *model.Profile
	queue    []queueItem
	visited  map[string]bool
	failed   map[string]bool
	base     *url.URL
	seedHost string
	stats    SpiderStats
}

// Crawl crawls the site at seedURL and returns its profile.
// Fetch failures never abort the crawl; they are listed in the profile's
// metadata. The returned error is non-nil only when ctx ends the crawl
// early, in which case the partial, finalized profile is still returned.
func (s *Spider) Crawl(ctx context.Context, seedURL string) (*model.Profile, error) {
	st := &crawlState{
		profile: model.NewProfile(seedURL, s.now()),
		queue:   []queueItem{{url: seedURL, depth: 0}},
		visited: make(map[string]bool),
		failed:  make(map[string]bool),
	}
	if base, err := url.Parse(seedURL); err == nil {
		st.base = base
		st.seedHost = base.Host
	}

	s.logger.Info("starting crawl",
		"seed", seedURL,
		"maxDepth", s.maxDepth,
		"maxPages", s.maxPages,
	)

	err := s.run(ctx, st)
	st.profile.Finalize()
	s.setStats(st.stats)

	s.logger.Info("crawl finished",
		"seed", seedURL,
		"pages", st.stats.PagesVisited,
		"failures", st.stats.FetchFailures,
	)

	return st.profile, err
}

// run processes the frontier until it is empty, the page budget is spent,
// or ctx is done.
func (s *Spider) run(ctx context.Context, st *crawlState) error {
	for len(st.queue) > 0 && len(st.visited) < s.maxPages {
		if err := ctx.Err(); err != nil {
			st.profile.AddNote("Crawl stopped early: " + err.Error())
			return err
		}

		item := st.queue[0]
		st.queue = st.queue[1:]

		key := NormalizeURL(item.url)
		if st.visited[key] || st.failed[key] || item.depth > s.maxDepth {
			st.stats.Discarded++
			continue
		}

		s.logger.Debug("fetching page", "url", item.url, "depth", item.depth)

		body, err := s.fetcher.Fetch(ctx, item.url)
		if err != nil {
			st.failed[key] = true
			st.stats.FetchFailures++
			st.profile.RecordError(item.url, err.Error())
			s.logger.Warn("fetch failed", "url", item.url, "error", err)
			continue
		}

		st.visited[key] = true
		st.stats.PagesVisited++
		st.profile.RecordPage(item.url)
		if s.onPage != nil {
			s.onPage(item.url, item.depth)
		}

		s.processPage(st, item, NewDocument(body))
	}
	return nil
}

// processPage extracts signals from doc and enqueues its classified links.
func (s *Spider) processPage(st *crawlState, item queueItem, doc *Document) {
	if item.depth == 0 {
		id := extract.ResolveIdentity(doc)
		if id.CompanyName != nil {
			st.profile.SetCompanyName(*id.CompanyName)
			if extract.LooksRetail(*id.CompanyName) {
				s.logger.Debug("company name looks like a storefront title", "name", *id.CompanyName)
			}
		}
		if id.Tagline != nil {
			st.profile.SetTagline(*id.Tagline)
		}
	}

	text := doc.Text()
	st.profile.AddEmails(extract.Emails(text)...)
	st.profile.AddPhones(extract.Phones(text)...)

	anchors := doc.Anchors()
	for _, a := range anchors {
		if platform, ok := s.social.Match(a.Href); ok {
			st.profile.SetSocialLink(platform, a.Href)
		}
	}

	if st.base == nil {
		return
	}

	for _, a := range anchors {
		link, ok := s.resolveInternal(st, a.Href)
		if !ok {
			continue
		}

		intent, ok := s.classifier.Classify(a.Text, link)
		if !ok {
			continue
		}
		st.profile.AddKeyPage(intent, link)

		if !st.visited[NormalizeURL(link)] {
			st.queue = append(st.queue, queueItem{url: link, depth: item.depth + 1})
		}
	}
}

// resolveInternal resolves href against the seed URL and reports whether the
// result is on the seed's host.
func (s *Spider) resolveInternal(st *crawlState, href string) (string, bool) {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", false
	}
	resolved := st.base.ResolveReference(ref)
	if resolved.Host != st.seedHost {
		return "", false
	}
	return resolved.String(), true
}

// NormalizeURL returns the visited-set key for pageURL: the URL without its
// fragment, lowercased in full. Case-sensitive paths that differ only by
// case share one key.
func NormalizeURL(pageURL string) string {
	if i := strings.IndexByte(pageURL, '#'); i >= 0 {
		pageURL = pageURL[:i]
	}
	return strings.ToLower(pageURL)
}

// SpiderStats describes a finished crawl.
type SpiderStats struct {
	// PagesVisited is the number of pages successfully fetched.
	PagesVisited int

	// FetchFailures is the number of failed fetches.
	FetchFailures int

	// Discarded is the number of frontier entries dropped as already
	// visited, already failed, or too deep.
	Discarded int
}

// Stats returns statistics for the most recent crawl.
func (s *Spider) Stats() SpiderStats {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.stats
}

func (s *Spider) setStats(stats SpiderStats) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stats = stats
}
