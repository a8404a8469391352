// Package browser gives the form controller access to the user's current
// browser tab: which page is active and what its rendered DOM contains.
package browser

import (
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"

	"github.com/use-agent/talentclip/models"
)

// ErrNoTab is returned when no tab can be found.
var ErrNoTab = errors.New("browser: no active tab")

// Tab identifies a browser tab.
type Tab struct {
	ID  string
	URL string
}

// PageFunc runs against the parsed document of a tab. location is the
// tab's current href.
type PageFunc func(doc *goquery.Document, location string) *models.ProfileSnapshot

// Host is the environment the controller runs in.
type Host interface {
	// ActiveTab returns the tab the user is looking at.
	ActiveTab(ctx context.Context) (*Tab, error)

	// Inject runs fn inside the tab and returns its result. A nil snapshot
	// with a nil error means fn produced nothing.
	Inject(ctx context.Context, tabID string, fn PageFunc) (*models.ProfileSnapshot, error)
}
