package browser

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/talentclip/models"
)

const staticTabID = "static"

// StaticHost serves one fixed document as the active tab.
type StaticHost struct {
	URL  string
	HTML string
}

// NewStaticHost returns a host whose only tab shows html at url.
func NewStaticHost(url, html string) *StaticHost {
	return &StaticHost{URL: url, HTML: html}
}

// LoadStaticHost reads a saved page from path.
func LoadStaticHost(url, path string) (*StaticHost, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("browser: read %s: %w", path, err)
	}
	return NewStaticHost(url, string(raw)), nil
}

func (h *StaticHost) ActiveTab(ctx context.Context) (*Tab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Tab{ID: staticTabID, URL: h.URL}, nil
}

func (h *StaticHost) Inject(ctx context.Context, tabID string, fn PageFunc) (*models.ProfileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if tabID != staticTabID {
		return nil, fmt.Errorf("browser: unknown tab %q", tabID)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(h.HTML))
	if err != nil {
		return nil, fmt.Errorf("browser: parse document: %w", err)
	}
	return fn(doc, h.URL), nil
}
