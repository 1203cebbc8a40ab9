package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for siteprofile.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "siteprofile",
		Short: "Build a structured profile of a company website",
		Long: `siteprofile crawls a company website, starting at its homepage and following
only internal links that look like about, products, research, careers, or
contact pages. It records the company name, tagline, emails, phone numbers,
social profiles, and every fetch error into a JSON profile.

Crawls are bounded: by default at most 15 pages and 2 link levels deep.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
