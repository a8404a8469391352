package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/use-agent/talentclip/browser"
	"github.com/use-agent/talentclip/extractor"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Extract the profile from the current tab and print it as JSON",
	Long: `Extract the profile from the current tab and print it as JSON.

Examples:
  talentclip collect
  talentclip collect --html saved-profile.html --url https://www.linkedin.com/in/someone`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		host, closeHost, err := openHost(ctx, cmd, cfg.Browser)
		if err != nil {
			return err
		}
		defer closeHost()

		tab, err := host.ActiveTab(ctx)
		if err != nil {
			return fmt.Errorf("reading current tab: %w", err)
		}
		if tab == nil {
			return browser.ErrNoTab
		}
		if !strings.Contains(tab.URL, cfg.Browser.SiteMarker) {
			slog.Warn("tab is not a LinkedIn page, results may be empty", "url", tab.URL)
		}

		snap, err := host.Inject(ctx, tab.ID, extractor.Extract)
		if err != nil {
			return fmt.Errorf("extracting: %w", err)
		}
		if snap == nil {
			return fmt.Errorf("extracting: no result")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	},
}

func init() {
	addPageFlags(collectCmd)
}
