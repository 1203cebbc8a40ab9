package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/siteprofile/internal/model"
)

// FileName is the database file created inside the data directory.
const FileName = "siteprofile.db"

// timestampLayout is fixed-width so that stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ProfileDB provides SQLite-based storage for crawl history.
type ProfileDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures ProfileDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the ProfileDB in dbDir.
func Open(dbDir string, opts Options) (*ProfileDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	} else if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		}
		return nil, fmt.Errorf("failed to check database path: %w", err)
	}

	// mode=rw refuses to create a missing file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	pdb := &ProfileDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := pdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pdb, nil
}

// Path returns the database file path.
func (pdb *ProfileDB) Path() string {
	return pdb.dbPath
}

// Close closes the database connection.
func (pdb *ProfileDB) Close() error {
	return pdb.db.Close()
}

func (pdb *ProfileDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS crawls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		website TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		company_name TEXT,
		page_count INTEGER NOT NULL,
		error_count INTEGER NOT NULL,
		profile_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_crawls_website ON crawls(website);
	CREATE INDEX IF NOT EXISTS idx_crawls_timestamp ON crawls(timestamp);

	CREATE TABLE IF NOT EXISTS pages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		crawl_id INTEGER NOT NULL REFERENCES crawls(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		depth INTEGER NOT NULL,
		fetch_order INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pages_crawl ON pages(crawl_id);
	`

	_, err := pdb.db.ExecContext(context.Background(), schema)
	return err
}

// PageVisit is one successfully fetched page.
type PageVisit struct {
	URL   string
	Depth int
}

// CrawlSummary describes a stored crawl without loading its profile.
type CrawlSummary struct {
	ID          int64
	Website     string
	Timestamp   time.Time
	CompanyName string
	PageCount   int
	ErrorCount  int
}

// SaveProfile stores a finished crawl and the pages it fetched, in fetch
// order, and returns the new crawl ID.
func (pdb *ProfileDB) SaveProfile(ctx context.Context, profile *model.Profile, pages []PageVisit) (id int64, err error) {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize profile: %w", err)
	}

	tx, err := pdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var companyName sql.NullString
	if profile.Identity.CompanyName != nil {
		companyName = sql.NullString{String: *profile.Identity.CompanyName, Valid: true}
	}

	res, err := tx.ExecContext(ctx, `
	INSERT INTO crawls (website, timestamp, company_name, page_count, error_count, profile_json)
	VALUES (?, ?, ?, ?, ?, ?)
	`,
		profile.Identity.WebsiteURL,
		profile.Metadata.Timestamp.UTC().Format(timestampLayout),
		companyName,
		len(profile.Metadata.PagesCrawled),
		len(profile.Metadata.Errors),
		string(profileJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save crawl: %w", err)
	}

	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get crawl id: %w", err)
	}

	for i, p := range pages {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO pages (crawl_id, url, depth, fetch_order) VALUES (?, ?, ?, ?)`,
			id, p.URL, p.Depth, i,
		); err != nil {
			return 0, fmt.Errorf("failed to save page %s: %w", p.URL, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit crawl: %w", err)
	}
	return id, nil
}

// LatestProfile returns the most recent profile for website, or nil if the
// site was never crawled.
func (pdb *ProfileDB) LatestProfile(ctx context.Context, website string) (*model.Profile, error) {
	query := `
	SELECT profile_json FROM crawls
	WHERE website = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT 1
	`
	return pdb.queryProfile(ctx, query, website)
}

// ProfileByID returns the stored profile with the given ID, or nil.
func (pdb *ProfileDB) ProfileByID(ctx context.Context, id int64) (*model.Profile, error) {
	return pdb.queryProfile(ctx, `SELECT profile_json FROM crawls WHERE id = ?`, id)
}

func (pdb *ProfileDB) queryProfile(ctx context.Context, query string, args ...any) (*model.Profile, error) {
	var profileJSON string
	err := pdb.db.QueryRowContext(ctx, query, args...).Scan(&profileJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var profile model.Profile
	if err := json.Unmarshal([]byte(profileJSON), &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	return &profile, nil
}

// ListWebsites returns every crawled website in alphabetical order.
func (pdb *ProfileDB) ListWebsites(ctx context.Context) ([]string, error) {
	rows, err := pdb.db.QueryContext(ctx, `SELECT DISTINCT website FROM crawls ORDER BY website`)
	if err != nil {
		return nil, fmt.Errorf("failed to list websites: %w", err)
	}
	defer rows.Close()

	var websites []string
	for rows.Next() {
		var website string
		if err := rows.Scan(&website); err != nil {
			return nil, fmt.Errorf("failed to scan website: %w", err)
		}
		websites = append(websites, website)
	}
	return websites, rows.Err()
}

// History returns summaries of every crawl of website, newest first.
func (pdb *ProfileDB) History(ctx context.Context, website string) ([]CrawlSummary, error) {
	query := `
	SELECT id, website, timestamp, company_name, page_count, error_count
	FROM crawls
	WHERE website = ?
	ORDER BY timestamp DESC, id DESC
	`

	rows, err := pdb.db.QueryContext(ctx, query, website)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var results []CrawlSummary
	for rows.Next() {
		var (
			s           CrawlSummary
			timestamp   string
			companyName sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.Website, &timestamp, &companyName, &s.PageCount, &s.ErrorCount); err != nil {
			return nil, fmt.Errorf("failed to scan crawl: %w", err)
		}
		s.Timestamp = parseTimestamp(timestamp)
		s.CompanyName = companyName.String
		results = append(results, s)
	}
	return results, rows.Err()
}

// Pages returns the pages fetched by a crawl, in fetch order.
func (pdb *ProfileDB) Pages(ctx context.Context, crawlID int64) ([]PageVisit, error) {
	rows, err := pdb.db.QueryContext(ctx,
		`SELECT url, depth FROM pages WHERE crawl_id = ? ORDER BY fetch_order`, crawlID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pages: %w", err)
	}
	defer rows.Close()

	var pages []PageVisit
	for rows.Next() {
		var p PageVisit
		if err := rows.Scan(&p.URL, &p.Depth); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// timestampFormats are tried in order by parseTimestamp.
var timestampFormats = []string{
	timestampLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseTimestamp returns the zero time if s matches no known format.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
