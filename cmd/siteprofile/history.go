package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/nao1215/siteprofile/internal/config"
	"github.com/nao1215/siteprofile/internal/database"
	"github.com/nao1215/siteprofile/internal/report"
	"github.com/spf13/cobra"
)

// errNoHistory is returned when the history database has not been created.
var errNoHistory = errors.New("no crawl history found (run 'siteprofile scan' first)")

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "List recorded crawls",
		Long: `History lists the crawls recorded by 'siteprofile scan'.

Without a URL it lists every website crawled so far. With a URL it lists each
crawl of that website, newest first.

Examples:
  # List all crawled websites
  siteprofile history

  # List crawls of one website
  siteprofile history https://www.example.com

  # Show the pages fetched by crawl 3
  siteprofile history --pages 3

  # Print the stored profile of crawl 3 as JSON
  siteprofile history --show 3`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64("pages", 0, "List the pages fetched by the crawl with this ID")
	cmd.Flags().Int64("show", 0, "Print the stored profile of the crawl with this ID")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory of the history database")

	return cmd
}

// openHistory opens an existing history database without creating one.
func openHistory(dbDir string) (*database.ProfileDB, error) {
	if _, err := os.Stat(filepath.Join(dbDir, database.FileName)); os.IsNotExist(err) {
		return nil, errNoHistory
	}
	return database.Open(dbDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	pagesID, err := cmd.Flags().GetInt64("pages")
	if err != nil {
		return err
	}
	showID, err := cmd.Flags().GetInt64("show")
	if err != nil {
		return err
	}

	db, err := openHistory(dbDir)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case showID > 0:
		profile, err := db.ProfileByID(ctx, showID)
		if err != nil {
			return err
		}
		if profile == nil {
			return fmt.Errorf("crawl %d not found", showID)
		}
		_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).Write(profile)
		return err

	case pagesID > 0:
		pages, err := db.Pages(ctx, pagesID)
		if err != nil {
			return err
		}
		if len(pages) == 0 {
			fmt.Fprintf(out, "No pages recorded for crawl %d.\n", pagesID)
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tDEPTH\tURL")
		for i, p := range pages {
			fmt.Fprintf(tw, "%d\t%d\t%s\n", i+1, p.Depth, p.URL)
		}
		return tw.Flush()

	case len(args) == 0:
		websites, err := db.ListWebsites(ctx)
		if err != nil {
			return err
		}
		if len(websites) == 0 {
			fmt.Fprintln(out, "No crawls recorded.")
			return nil
		}
		for _, w := range websites {
			fmt.Fprintln(out, w)
		}
		return nil
	}

	history, err := db.History(ctx, args[0])
	if err != nil {
		return err
	}
	return printHistory(out, args[0], history)
}

func printHistory(out io.Writer, website string, history []database.CrawlSummary) error {
	if len(history) == 0 {
		fmt.Fprintf(out, "No crawls recorded for %s.\n", website)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCRAWLED AT\tPAGES\tERRORS\tCOMPANY")
	for _, h := range history {
		company := h.CompanyName
		if company == "" {
			company = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n",
			h.ID, h.Timestamp.Format(time.DateTime), h.PageCount, h.ErrorCount, company)
	}
	return tw.Flush()
}
