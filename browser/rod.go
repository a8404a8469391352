package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/ysmood/gson"

	"github.com/use-agent/talentclip/config"
	"github.com/use-agent/talentclip/models"
)

// RodHost reaches tabs over the Chrome DevTools Protocol. It either attaches
// to the user's running Chrome or launches its own Chromium.
// It is safe for concurrent use.
type RodHost struct {
	browser  *rod.Browser
	launcher *launcher.Launcher // nil when attached
	cfg      config.BrowserConfig

	mu sync.Mutex // serializes page attach and evaluation
}

// NewRodHost connects according to cfg.
//
// With cfg.CDPURL set the host attaches to that browser and never changes
// its pages or closes it. Otherwise a browser is launched with stealth
// scripts and an Accept-Language header, optionally seeded with the site's
// session cookies and opened on cfg.StartURL.
func NewRodHost(ctx context.Context, cfg config.BrowserConfig) (*RodHost, error) {
	if cfg.CDPURL != "" {
		return attach(cfg)
	}
	return launch(ctx, cfg)
}

func attach(cfg config.BrowserConfig) (*RodHost, error) {
	controlURL, err := launcher.ResolveURL(cfg.CDPURL)
	if err != nil {
		return nil, models.NewAppError(models.ErrCodeBrowser, "failed to resolve CDP URL", err)
	}

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		return nil, models.NewAppError(models.ErrCodeBrowser, "failed to connect to CDP URL", err)
	}
	slog.Info("attached to browser", "controlURL", controlURL)

	return &RodHost{browser: b, cfg: cfg}, nil
}

func launch(ctx context.Context, cfg config.BrowserConfig) (*RodHost, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("no-first-run"))
	if cfg.AcceptLanguage != "" {
		l.Set(flags.Flag("lang"), primaryLanguage(cfg.AcceptLanguage))
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewAppError(models.ErrCodeBrowser, "failed to launch browser", err)
	}
	slog.Info("browser launched", "controlURL", controlURL, "headless", cfg.Headless)

	b := rod.New().ControlURL(controlURL)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, models.NewAppError(models.ErrCodeBrowser, "failed to connect to browser", err)
	}

	h := &RodHost{browser: b, launcher: l, cfg: cfg}

	if cfg.Cookies {
		if err := h.seedCookies(ctx); err != nil {
			slog.Warn("cookie seeding failed, continuing without session", "error", err)
		}
	}

	page, err := b.Page(proto.TargetCreateTarget{})
	if err != nil {
		h.Close()
		return nil, models.NewAppError(models.ErrCodeBrowser, "failed to open page", err)
	}
	h.preparePage(page)

	if cfg.StartURL != "" {
		if err := page.Context(ctx).Navigate(cfg.StartURL); err != nil {
			slog.Warn("failed to open start URL", "url", cfg.StartURL, "error", err)
		} else {
			_ = page.Context(ctx).WaitLoad()
		}
	}

	return h, nil
}

// preparePage installs stealth and request headers. Both apply only to
// navigations made after the call.
func (h *RodHost) preparePage(page *rod.Page) {
	if _, err := page.EvalOnNewDocument(stealth.JS); err != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", err)
	}
	if h.cfg.AcceptLanguage != "" {
		err := proto.NetworkSetExtraHTTPHeaders{
			Headers: toHeadersMap(map[string]string{"Accept-Language": h.cfg.AcceptLanguage}),
		}.Call(page)
		if err != nil {
			slog.Warn("failed to set extra headers", "error", err)
		}
	}
}

// ActiveTab returns the first page whose document is visible, else the
// first page.
func (h *RodHost) ActiveTab(ctx context.Context) (*Tab, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	pages, err := h.browser.Context(ctx).Pages()
	if err != nil {
		return nil, models.NewAppError(models.ErrCodeBrowser, "failed to list pages", err)
	}
	if len(pages) == 0 {
		return nil, ErrNoTab
	}

	active := pages[0]
	for _, p := range pages {
		if evalStringOrEmpty(p.Context(ctx), `() => document.visibilityState`) == "visible" {
			active = p
			break
		}
	}

	info, err := active.Context(ctx).Info()
	if err != nil {
		return nil, models.NewAppError(models.ErrCodeBrowser, "failed to read page info", err)
	}
	return &Tab{ID: string(active.TargetID), URL: info.URL}, nil
}

// Inject reads the rendered HTML and location of the tab and runs fn over
// the parsed document.
func (h *RodHost) Inject(ctx context.Context, tabID string, fn PageFunc) (*models.ProfileSnapshot, error) {
	h.mu.Lock()
	page, err := h.browser.PageFromTarget(proto.TargetTargetID(tabID))
	if err != nil {
		h.mu.Unlock()
		return nil, models.NewAppError(models.ErrCodeBrowser, "failed to attach to tab", err)
	}
	p := page.Context(ctx)
	rawHTML, err := p.HTML()
	location := evalStringOrEmpty(p, `() => window.location.href`)
	h.mu.Unlock()

	if err != nil {
		return nil, categorizeError(err, "failed to read page HTML")
	}
	if location == "" {
		if info, infoErr := p.Info(); infoErr == nil {
			location = info.URL
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("browser: parse document: %w", err)
	}
	return fn(doc, location), nil
}

// Close shuts down a launched browser. An attached browser is left running.
func (h *RodHost) Close() {
	if h.launcher == nil {
		return
	}
	slog.Info("closing browser")
	if err := h.browser.Close(); err != nil {
		slog.Warn("browser close failed", "error", err)
	}
	h.launcher.Cleanup()
}

// evalStringOrEmpty evaluates a JS function and returns its string result,
// or "" on any error.
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// toHeadersMap converts a plain string map to proto.NetworkHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// primaryLanguage returns the first tag of an Accept-Language value,
// "en-US,en;q=0.9" -> "en-US".
func primaryLanguage(acceptLanguage string) string {
	first, _, _ := strings.Cut(acceptLanguage, ",")
	first, _, _ = strings.Cut(first, ";")
	return strings.TrimSpace(first)
}

func categorizeError(err error, msg string) *models.AppError {
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return models.NewAppError(models.ErrCodeBrowser, "request canceled", err)
	default:
		return models.NewAppError(models.ErrCodeBrowser, msg, err)
	}
}
