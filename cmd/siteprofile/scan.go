package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/nao1215/siteprofile/internal/batch"
	"github.com/nao1215/siteprofile/internal/config"
	"github.com/nao1215/siteprofile/internal/crawler"
	"github.com/nao1215/siteprofile/internal/database"
	"github.com/nao1215/siteprofile/internal/log"
	"github.com/nao1215/siteprofile/internal/model"
	"github.com/nao1215/siteprofile/internal/report"
	"github.com/spf13/cobra"
)

// urlPrompt is shown when scan is run without a URL argument.
const urlPrompt = "Enter company website URL: "

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [url...]",
		Short: "Crawl a company website and save its profile",
		Long: `Scan crawls a company website breadth-first from the given URL.

Only links on the same host whose text or URL suggests an about, products,
research, careers, or contact page are followed. Emails and phone numbers are
collected from every fetched page; the company name and tagline come from the
homepage only. Fetch failures are recorded in the profile and never stop the
crawl.

The profile is written as JSON to outputs/<site>_output.json unless --output
is given, and every crawl is recorded in the history database.

Several URLs are crawled independently, --batch of them at a time, each into
its own output file.

Examples:
  # Crawl a site with the default budget (15 pages, depth 2)
  siteprofile scan https://www.example.com

  # Prompt for the URL
  siteprofile scan

  # Smaller budget, also write a Markdown summary
  siteprofile scan -p 5 -d 1 --markdown https://www.example.com

  # Write to an explicit file and skip the history database
  siteprofile scan -o profile.json --no-db https://www.example.com

  # Crawl several websites, two at a time
  siteprofile scan -b 2 https://a.example.com https://b.example.com https://c.example.com`,
		Args: cobra.ArbitraryArgs,
		RunE: runScanCmd,
	}

	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each request")
	cmd.Flags().IntP("depth", "d", config.DefaultMaxDepth,
		"Maximum link depth to follow (0 crawls only the given page)")
	cmd.Flags().IntP("max-pages", "p", config.DefaultMaxPages,
		"Maximum number of pages to fetch")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .siteprofile in current or home directory)")
	cmd.Flags().String("output-dir", config.DefaultOutputDir,
		"Directory for derived output file names")
	cmd.Flags().StringP("output", "o", "",
		"Write the profile to this file instead of the derived name")
	cmd.Flags().BoolP("markdown", "m", false,
		"Also write a Markdown summary next to the JSON profile")
	cmd.Flags().BoolP("summary", "s", false,
		"Print a text summary of the profile")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of websites crawled at once when several URLs are given")
	cmd.Flags().Bool("no-db", false,
		"Do not record the crawl in the history database")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory of the history database")

	return cmd
}

// errOutputWithBatch is returned when --output is combined with several URLs.
var errOutputWithBatch = errors.New("--output cannot be used with more than one URL")

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	targets, err := resolveTargets(cmd, args)
	if err != nil {
		return err
	}

	cfgs := make([]*config.Config, 0, len(targets))
	for _, target := range targets {
		cfg, err := buildConfig(cmd, target)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("configuration error: %w", err)
		}
		cfgs = append(cfgs, cfg)
	}
	if len(cfgs) > 1 && cfgs[0].OutputFile != "" {
		return errOutputWithBatch
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfgs[0].Verbose)
	slog.SetDefault(logger)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(cfgs) == 1 {
		return runScan(ctx, cfgs[0], logger, cmd.OutOrStdout())
	}
	return runBatchScan(ctx, cfgs, logger, cmd.OutOrStdout())
}

// resolveTargets returns the URL arguments, or prompts for one on stdin.
func resolveTargets(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		targets := make([]string, len(args))
		for i, a := range args {
			targets[i] = strings.TrimSpace(a)
		}
		return targets, nil
	}

	fmt.Fprint(cmd.OutOrStdout(), urlPrompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read URL: %w", err)
	}
	return []string{strings.TrimSpace(line)}, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the config file, and flags,
// in increasing order of precedence.
func buildConfig(cmd *cobra.Command, target string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Target = target
	cfg.Verbose = getVerboseFlag(cmd)

	flags := cmd.Flags()

	var err error
	if cfg.ConfigFilePath, err = flags.GetString("config"); err != nil {
		return nil, err
	}

	// An explicitly named config file must exist; a missing default one is fine.
	if path := config.FindConfigFile(cfg.ConfigFilePath); path != "" {
		cf, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		if err := cfg.ApplyFile(cf, targetHost(target)); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("depth") {
		if cfg.MaxDepth, err = flags.GetInt("depth"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("max-pages") {
		if cfg.MaxPages, err = flags.GetInt("max-pages"); err != nil {
			return nil, err
		}
	}

	if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
		return nil, err
	}
	if cfg.OutputFile, err = flags.GetString("output"); err != nil {
		return nil, err
	}
	if cfg.Markdown, err = flags.GetBool("markdown"); err != nil {
		return nil, err
	}
	if cfg.Summary, err = flags.GetBool("summary"); err != nil {
		return nil, err
	}
	if cfg.BatchSize, err = flags.GetInt("batch"); err != nil {
		return nil, err
	}
	if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
		return nil, err
	}
	noDB, err := flags.GetBool("no-db")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noDB

	return cfg, nil
}

// targetHost returns the host used to look up per-site settings.
func targetHost(target string) string {
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		return u.Host
	}
	host := strings.TrimPrefix(strings.TrimPrefix(target, "https://"), "http://")
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	return host
}

// newSpider builds the crawler for cfg. onPage may be nil.
func newSpider(cfg *config.Config, client *http.Client, logger *slog.Logger, onPage crawler.PageHook) *crawler.Spider {
	fetcher := crawler.NewHTTPFetcher(client,
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithTimeout(cfg.Timeout),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
		crawler.WithHeaders(cfg.Headers),
		crawler.WithCookie(cfg.Cookie),
	)

	opts := []crawler.SpiderOption{
		crawler.WithMaxDepth(cfg.MaxDepth),
		crawler.WithMaxPages(cfg.MaxPages),
		crawler.WithLogger(logger),
	}
	if len(cfg.IntentRules) > 0 {
		opts = append(opts, crawler.WithIntentRules(cfg.IntentRules))
	}
	if len(cfg.SocialPlatforms) > 0 {
		opts = append(opts, crawler.WithSocialPlatforms(cfg.SocialPlatforms))
	}
	if onPage != nil {
		opts = append(opts, crawler.WithPageHook(onPage))
	}
	return crawler.NewSpider(fetcher, opts...)
}

// scanResult is one finished crawl whose profile files have been written.
type scanResult struct {
	profile    *model.Profile
	visits     []database.PageVisit
	outputPath string

	// crawlErr is non-nil when the crawl was interrupted.
	crawlErr error
}

// runScan crawls cfg.Target and writes the results. An interrupted crawl
// still writes its partial profile before the interruption is reported.
func runScan(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) error {
	res, err := crawlTarget(ctx, cfg, logger)
	if err != nil {
		return err
	}
	return recordScan(ctx, cfg, logger, out, res)
}

// runBatchScan crawls several websites with at most cfgs[0].BatchSize
// crawls running at once. Results are recorded one at a time.
func runBatchScan(ctx context.Context, cfgs []*config.Config, logger *slog.Logger, out io.Writer) error {
	targets := make([]string, len(cfgs))
	for i, cfg := range cfgs {
		targets[i] = cfg.Target
	}

	var mu sync.Mutex
	processor := batch.NewProcessor(
		batch.WithConcurrency(cfgs[0].BatchSize),
		batch.WithLogger(logger),
	)
	errs := processor.Process(ctx, targets, func(ctx context.Context, i int, _ string) error {
		res, err := crawlTarget(ctx, cfgs[i], logger)
		if err != nil {
			return err
		}
		mu.Lock()
		defer mu.Unlock()
		return recordScan(ctx, cfgs[i], logger, out, res)
	})

	var failed []error
	for i, err := range errs {
		if err != nil {
			failed = append(failed, fmt.Errorf("%s: %w", targets[i], err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d crawls failed: %w", len(failed), len(targets), errors.Join(failed...))
	}
	return nil
}

// crawlTarget crawls cfg.Target and writes the profile files. The returned
// error is non-nil only when an output file could not be written.
func crawlTarget(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*scanResult, error) {
	logger.Debug("request settings",
		"target", cfg.Target,
		"userAgent", cfg.UserAgent,
		"headers", cfg.Headers,
		"cookie", cfg.Cookie,
	)

	res := &scanResult{outputPath: cfg.OutputPath()}
	spider := newSpider(cfg, &http.Client{}, logger, func(pageURL string, depth int) {
		res.visits = append(res.visits, database.PageVisit{URL: pageURL, Depth: depth})
	})

	res.profile, res.crawlErr = spider.Crawl(ctx, cfg.Target)

	jsonWriter := func(w io.Writer) report.Writer { return report.NewJSONWriter(w, report.WithPrettyPrint()) }
	if err := writeProfile(res.outputPath, jsonWriter, res.profile); err != nil {
		return nil, err
	}
	if cfg.Markdown {
		mdWriter := func(w io.Writer) report.Writer { return report.NewMarkdownWriter(w) }
		if err := writeProfile(markdownPath(res.outputPath), mdWriter, res.profile); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// recordScan saves res to the history database, prints the optional summary
// and the completion message, and reports an interrupted crawl.
func recordScan(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer, res *scanResult) error {
	if cfg.SaveToDB {
		if err := saveProfile(context.WithoutCancel(ctx), cfg.DBDir, res.profile, res.visits, logger); err != nil {
			logger.Error("failed to save crawl history", "error", err)
		}
	}

	if cfg.Summary {
		if _, err := report.NewSimpleWriter(out, report.WithVerbose(cfg.Verbose)).Write(res.profile); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Scrape completed. Output saved to %s\n", res.outputPath)

	if res.crawlErr != nil {
		return fmt.Errorf("crawl interrupted: %w", res.crawlErr)
	}
	return nil
}

// markdownPath replaces the extension of the JSON output path with .md.
func markdownPath(jsonPath string) string {
	return strings.TrimSuffix(jsonPath, filepath.Ext(jsonPath)) + ".md"
}

// writeProfile creates path and its parent directories and renders profile
// into it with a writer built by newWriter.
func writeProfile(path string, newWriter func(io.Writer) report.Writer, profile *model.Profile) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if _, err := newWriter(f).Write(profile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// saveProfile records the crawl in the history database in dbDir.
func saveProfile(ctx context.Context, dbDir string, profile *model.Profile, visits []database.PageVisit, logger *slog.Logger) error {
	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveProfile(ctx, profile, visits)
	if err != nil {
		return err
	}
	logger.Info("crawl saved to history", "id", id, "website", profile.Identity.WebsiteURL)
	return nil
}
