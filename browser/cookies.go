package browser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/browserutils/kooky"
	_ "github.com/browserutils/kooky/browser/all" // register every cookie store
	"github.com/go-rod/rod/lib/proto"
)

// sessionCookies are the cookies that carry a logged-in LinkedIn session.
var sessionCookies = map[string]bool{
	"li_at":      true,
	"JSESSIONID": true,
	"lidc":       true,
	"bcookie":    true,
	"bscookie":   true,
	"liap":       true,
}

// seedCookies copies the site's session cookies from the user's local
// browser profiles into the launched browser.
func (h *RodHost) seedCookies(ctx context.Context) error {
	domain := cookieDomain(h.cfg.SiteMarker)

	kookies, err := kooky.ReadCookies(ctx, kooky.Valid, kooky.DomainHasSuffix(domain))
	if err != nil && len(kookies) == 0 {
		return fmt.Errorf("reading browser cookies: %w", err)
	}

	params := cookieParams(kookies)
	if len(params) == 0 {
		slog.Info("no session cookies found in local browsers", "domain", domain)
		return nil
	}

	if err := h.browser.SetCookies(params); err != nil {
		return fmt.Errorf("setting cookies: %w", err)
	}
	slog.Info("seeded session cookies", "domain", domain, "count", len(params))
	return nil
}

// cookieParams keeps the session cookies and converts them for CDP. When a
// cookie name appears in several stores the first one wins.
func cookieParams(kookies []*kooky.Cookie) []*proto.NetworkCookieParam {
	seen := make(map[string]bool)
	var params []*proto.NetworkCookieParam
	for _, c := range kookies {
		if c == nil || !sessionCookies[c.Name] || seen[c.Name] {
			continue
		}
		seen[c.Name] = true

		path := c.Path
		if path == "" {
			path = "/"
		}
		p := &proto.NetworkCookieParam{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     path,
			Secure:   c.Secure,
			HTTPOnly: c.HttpOnly,
		}
		if !c.Expires.IsZero() {
			p.Expires = proto.TimeSinceEpoch(c.Expires.Unix())
		}
		params = append(params, p)
	}
	return params
}

// cookieDomain turns a site marker such as "www.linkedin.com/" into the
// registrable domain used for cookie lookups.
func cookieDomain(marker string) string {
	d := strings.TrimSpace(marker)
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d, _, _ = strings.Cut(d, "/")
	d = strings.TrimPrefix(d, "www.")
	if d == "" {
		return "linkedin.com"
	}
	return d
}
