package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/use-agent/talentclip/browser"
	"github.com/use-agent/talentclip/config"
	"github.com/use-agent/talentclip/controller"
	"github.com/use-agent/talentclip/extractor"
	"github.com/use-agent/talentclip/store"
	"github.com/use-agent/talentclip/submit"
)

// app bundles the long-lived dependencies of a command.
type app struct {
	host  browser.Host
	store store.Store
	ctl   *controller.Controller

	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// addPageFlags registers the offline page flags shared by commands.
func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().String("html", "", "read the profile from a saved HTML file instead of the browser")
	cmd.Flags().String("url", "", "page URL to report with --html")
}

// openHost returns a StaticHost when --html is given, else a RodHost.
func openHost(ctx context.Context, cmd *cobra.Command, bc config.BrowserConfig) (browser.Host, func(), error) {
	htmlFile, _ := cmd.Flags().GetString("html")
	if htmlFile != "" {
		url, _ := cmd.Flags().GetString("url")
		if url == "" {
			return nil, nil, fmt.Errorf("--url is required with --html")
		}
		h, err := browser.LoadStaticHost(url, htmlFile)
		if err != nil {
			return nil, nil, err
		}
		return h, func() {}, nil
	}

	h, err := browser.NewRodHost(ctx, bc)
	if err != nil {
		return nil, nil, err
	}
	return h, h.Close, nil
}

// newApp wires host, store, submission client and controller. A store that
// cannot be opened only disables persistence.
func newApp(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (*app, error) {
	a := &app{}

	host, closeHost, err := openHost(ctx, cmd, cfg.Browser)
	if err != nil {
		return nil, err
	}
	a.host = host
	a.closers = append(a.closers, closeHost)

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		slog.Warn("manual defaults store unavailable, fields will not be remembered",
			"backend", cfg.Store.Backend, "error", err)
	} else {
		a.store = st
		a.closers = append(a.closers, func() {
			if err := st.Close(); err != nil {
				slog.Warn("closing store", "error", err)
			}
		})
	}

	a.ctl = controller.New(a.host, a.store,
		submit.NewClient(cfg.Submit.Endpoint, cfg.Submit.Timeout),
		controller.Options{
			SiteMarker: cfg.Browser.SiteMarker,
			Extract:    extractor.Extract,
		})
	return a, nil
}
