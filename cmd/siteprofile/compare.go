package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/nao1215/siteprofile/internal/config"
	"github.com/nao1215/siteprofile/internal/database"
	"github.com/nao1215/siteprofile/internal/model"
	"github.com/spf13/cobra"
)

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <url>",
		Short: "Compare the two most recent crawls of a website",
		Long: `Compare shows what changed between two recorded crawls of a website.

By default the latest crawl is compared with the one before it. Use
--with-crawl-id to compare the latest crawl with a specific earlier one.

Examples:
  # Compare the latest two crawls
  siteprofile compare https://www.example.com

  # Compare the latest crawl with crawl 3
  siteprofile compare --with-crawl-id 3 https://www.example.com

  # Output the differences as JSON
  siteprofile compare --json https://www.example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runCompareCmd,
	}

	cmd.Flags().Int64("with-crawl-id", 0, "Compare the latest crawl with the crawl with this ID")
	cmd.Flags().Bool("json", false, "Output the differences as JSON")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory of the history database")

	return cmd
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	withID, err := cmd.Flags().GetInt64("with-crawl-id")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	db, err := openHistory(dbDir)
	if err != nil {
		return err
	}
	defer db.Close()

	older, newer, err := loadComparison(cmd.Context(), db, args[0], withID)
	if err != nil {
		return err
	}

	diff := model.Diff(older, newer)
	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(diff)
	}
	printDiff(out, diff)
	return nil
}

// loadComparison returns the older and newer profiles to compare.
func loadComparison(ctx context.Context, db *database.ProfileDB, website string, withID int64) (*model.Profile, *model.Profile, error) {
	history, err := db.History(ctx, website)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get crawl history: %w", err)
	}
	if len(history) == 0 {
		return nil, nil, fmt.Errorf("no crawl history found for %s", website)
	}

	olderID := withID
	if olderID == 0 {
		if len(history) < 2 {
			return nil, nil, fmt.Errorf("at least 2 crawls are required for comparison (found %d)", len(history))
		}
		olderID = history[1].ID
	} else {
		found := false
		for _, h := range history {
			if h.ID == olderID {
				found = true
				break
			}
		}
		if !found {
			return nil, nil, fmt.Errorf("crawl %d not found for %s", olderID, website)
		}
		if olderID == history[0].ID {
			return nil, nil, fmt.Errorf("crawl %d is the latest crawl; choose an earlier one", olderID)
		}
	}

	newer, err := db.ProfileByID(ctx, history[0].ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load crawl %d: %w", history[0].ID, err)
	}
	older, err := db.ProfileByID(ctx, olderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load crawl %d: %w", olderID, err)
	}
	if newer == nil || older == nil {
		return nil, nil, fmt.Errorf("stored profile missing for %s", website)
	}
	return older, newer, nil
}

func printDiff(out io.Writer, d *model.ProfileDiff) {
	fmt.Fprintf(out, "Comparing %s\n", d.Website)
	fmt.Fprintf(out, "  older: %s\n", d.OlderTimestamp.Format(time.DateTime))
	fmt.Fprintf(out, "  newer: %s\n\n", d.NewerTimestamp.Format(time.DateTime))

	if !d.HasChanges() {
		fmt.Fprintln(out, "No changes in extracted signals.")
	}

	if d.OldCompanyName != d.NewCompanyName {
		fmt.Fprintf(out, "Company name: %q -> %q\n", d.OldCompanyName, d.NewCompanyName)
	}

	for _, intent := range model.Intents() {
		for _, u := range d.AddedKeyPages[intent] {
			fmt.Fprintf(out, "+ %s page: %s\n", intent, u)
		}
		for _, u := range d.RemovedKeyPages[intent] {
			fmt.Fprintf(out, "- %s page: %s\n", intent, u)
		}
	}

	printListChange(out, "email", d.AddedEmails, d.RemovedEmails)
	printListChange(out, "phone", d.AddedPhones, d.RemovedPhones)

	for _, c := range d.SocialChanges {
		switch {
		case c.Old == "":
			fmt.Fprintf(out, "+ %s: %s\n", c.Platform, c.New)
		case c.New == "":
			fmt.Fprintf(out, "- %s: %s\n", c.Platform, c.Old)
		default:
			fmt.Fprintf(out, "~ %s: %s -> %s\n", c.Platform, c.Old, c.New)
		}
	}

	fmt.Fprintf(out, "\nPages crawled: %s\n", signed(d.PagesDelta))
	fmt.Fprintf(out, "Errors: %s\n", signed(d.ErrorsDelta))
}

func printListChange(out io.Writer, label string, added, removed []string) {
	for _, v := range added {
		fmt.Fprintf(out, "+ %s: %s\n", label, v)
	}
	for _, v := range removed {
		fmt.Fprintf(out, "- %s: %s\n", label, v)
	}
}

func signed(n int) string {
	if n == 0 {
		return "0"
	}
	return fmt.Sprintf("%+d", n)
}
