// Package controller owns the talent form: it restores the remembered manual
// fields, pulls profile data from the active browser tab, applies user edits
// with write-through persistence and submits the finished record.
//
// All form state lives behind one mutex that is never held across I/O, so
// the state stays readable while the host, store or network is slow.
package controller

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/use-agent/talentclip/browser"
	"github.com/use-agent/talentclip/models"
	"github.com/use-agent/talentclip/store"
	"github.com/use-agent/talentclip/submit"
)

// Status line messages.
const (
	MsgCollecting      = "collecting data from LinkedIn..."
	MsgNoTab           = "cannot read current tab"
	MsgWrongSite       = "open a LinkedIn profile to collect data automatically"
	MsgNoResult        = "could not auto-collect data"
	MsgCollectFailed   = "error collecting data, fill in the form manually if needed"
	MsgCollected       = "data collected from LinkedIn, review before submitting"
	MsgNameRequired    = "full name is required"
	MsgProfileRequired = "profile URL is required"
	MsgSending         = "sending data to the API..."
	MsgSubmitted       = "talent registered successfully"
	msgSendFailed      = "failed to send: "
)

// DefaultSiteMarker must appear in the tab URL for extraction to run.
const DefaultSiteMarker = "linkedin.com"

// Sentinels for errors.Is. They match any *models.AppError with the same
// code.
var (
	// ErrUnknownField is matched by Edit errors for ids outside models.Fields.
	ErrUnknownField = models.NewAppError(models.ErrCodeUnknownField, "unknown field", nil)

	// ErrSubmitting is returned by Submit while another submission is in
	// flight.
	ErrSubmitting = models.NewAppError(models.ErrCodeConflict, "a submission is already in progress", nil)
)

// Submitter delivers a finished record. *submit.Client implements it.
type Submitter interface {
	Submit(ctx context.Context, rec *models.TalentRecord) error
}

// Options configures a Controller.
type Options struct {
	// SiteMarker must appear in the tab URL; default DefaultSiteMarker.
	SiteMarker string

	// Extract runs inside the tab. Required.
	Extract browser.PageFunc
}

// Controller is safe for concurrent use.
type Controller struct {
	host       browser.Host
	store      store.Store // nil disables persistence
	submitter  Submitter
	extract    browser.PageFunc
	siteMarker string

	mu         sync.Mutex
	values     map[models.Field]string
	status     models.Status
	focus      models.Field
	submitting bool
}

// New creates a Controller with an empty form. Call Open to populate it.
func New(host browser.Host, st store.Store, sub Submitter, opts Options) *Controller {
	marker := opts.SiteMarker
	if marker == "" {
		marker = DefaultSiteMarker
	}
	values := make(map[models.Field]string, len(models.Fields))
	for _, f := range models.Fields {
		values[f] = ""
	}
	return &Controller{
		host:       host,
		store:      st,
		submitter:  sub,
		extract:    opts.Extract,
		siteMarker: marker,
		values:     values,
	}
}

// Open restores the manual defaults and runs a first extraction. Storage
// failures only degrade persistence; the returned error is the extraction
// outcome, which is also reflected in the status line.
func (c *Controller) Open(ctx context.Context) error {
	c.restoreManualDefaults(ctx)
	return c.refresh(ctx, false)
}

// Refresh re-runs extraction against the active tab.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.refresh(ctx, true)
}

func (c *Controller) restoreManualDefaults(ctx context.Context) {
	defaults, err := store.LoadManualDefaults(ctx, c.store)
	if err != nil {
		slog.Warn("could not restore manual fields, continuing with empty defaults",
			"error", models.NewAppError(models.ErrCodeStorage, "could not restore manual fields", err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, f := range models.ManualFields {
		if v := defaults.Get(f); v != "" {
			c.values[f] = v
		}
	}
}

func (c *Controller) refresh(ctx context.Context, feedback bool) error {
	if feedback {
		c.setStatus(models.StatusInfo, MsgCollecting)
	}

	tab, err := c.host.ActiveTab(ctx)
	if err != nil || tab == nil {
		c.setStatus(models.StatusError, MsgNoTab)
		return models.NewAppError(models.ErrCodeNoActiveTab, MsgNoTab, err)
	}

	if !strings.Contains(tab.URL, c.siteMarker) {
		c.mu.Lock()
		c.values[models.FieldProfileURL] = tab.URL
		c.setStatusLocked(models.StatusError, MsgWrongSite)
		c.mu.Unlock()
		return models.NewAppError(models.ErrCodeWrongSite, MsgWrongSite, nil)
	}

	snap, err := c.host.Inject(ctx, tab.ID, c.extract)
	if err != nil {
		slog.Error("extraction failed", "tab", tab.ID, "url", tab.URL, "error", err)
		c.setStatus(models.StatusError, MsgCollectFailed)
		return models.NewAppError(models.ErrCodeExtractionEmpty, MsgCollectFailed, err)
	}
	if snap == nil {
		c.setStatus(models.StatusError, MsgNoResult)
		return models.NewAppError(models.ErrCodeExtractionEmpty, MsgNoResult, nil)
	}

	c.mu.Lock()
	for f, v := range snap.Values() {
		// Fresh data never erases a field it failed to find.
		if v != "" {
			c.values[f] = v
		}
	}
	c.setStatusLocked(models.StatusSuccess, MsgCollected)
	c.mu.Unlock()
	return nil
}

// Edit sets one field. Editing a manual field persists all three manual
// fields in a single write; a storage failure is logged and otherwise
// ignored.
func (c *Controller) Edit(ctx context.Context, field models.Field, value string) error {
	if !field.Valid() {
		return models.NewAppError(models.ErrCodeUnknownField, "unknown field: "+string(field), nil)
	}

	c.mu.Lock()
	c.values[field] = value
	var defaults models.ManualDefaults
	if field.Manual() {
		defaults = models.ManualDefaultsFrom(c.values)
	}
	c.mu.Unlock()

	if field.Manual() {
		if err := c.persist(ctx, defaults); err != nil {
			slog.Warn("could not persist manual fields", "field", field, "error", err)
		}
	}
	return nil
}

// Submit validates the form and posts the record. Validation and delivery
// failures are reported in the status line and returned as *models.AppError.
// ErrSubmitting is returned, with no state change, while a previous call is
// still in flight.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitting
	}

	rec := models.NewTalentRecord(c.values)
	if rec.FullName == "" {
		c.setStatusLocked(models.StatusError, MsgNameRequired)
		c.focus = models.FieldFullName
		c.mu.Unlock()
		return models.NewAppError(models.ErrCodeValidation, MsgNameRequired, nil)
	}
	if rec.ProfileURL == "" {
		c.setStatusLocked(models.StatusError, MsgProfileRequired)
		c.focus = models.FieldProfileURL
		c.mu.Unlock()
		return models.NewAppError(models.ErrCodeValidation, MsgProfileRequired, nil)
	}

	c.submitting = true
	c.setStatusLocked(models.StatusInfo, MsgSending)
	c.mu.Unlock()

	err := c.submitter.Submit(ctx, rec)

	c.mu.Lock()
	c.submitting = false
	if err != nil {
		msg := msgSendFailed + sendFailure(err)
		c.setStatusLocked(models.StatusError, msg)
		c.mu.Unlock()
		slog.Warn("talent submission failed", "profile_url", rec.ProfileURL, "error", err)
		return models.NewAppError(models.ErrCodeSubmitFailed, msg, err)
	}

	for _, f := range models.ManualFields {
		c.values[f] = ""
	}
	c.setStatusLocked(models.StatusSuccess, MsgSubmitted)
	c.mu.Unlock()

	slog.Info("talent submitted", "profile_url", rec.ProfileURL)

	// The record is already delivered: a caller that stops waiting must not
	// leave the sent values in storage for the next Open to restore.
	if err := c.persist(context.WithoutCancel(ctx), models.ManualDefaults{}); err != nil {
		slog.Warn("could not clear manual fields after submission", "error", err)
	}
	return nil
}

// sendFailure picks the user-facing text for a failed submission.
func sendFailure(err error) string {
	var httpErr *submit.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Message
	}
	return err.Error()
}

// State returns a copy of the form state.
func (c *Controller) State() models.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()

	values := make(map[models.Field]string, len(c.values))
	for f, v := range c.values {
		values[f] = v
	}
	return models.FormState{
		Values:     values,
		Status:     c.status,
		Focus:      c.focus,
		Submitting: c.submitting,
	}
}

// persist writes d. A nil store is not an error: persistence is simply off.
func (c *Controller) persist(ctx context.Context, d models.ManualDefaults) error {
	if c.store == nil {
		return nil
	}
	if err := store.SaveManualDefaults(ctx, c.store, d); err != nil {
		return models.NewAppError(models.ErrCodeStorage, "could not persist manual fields", err)
	}
	return nil
}

func (c *Controller) setStatus(kind models.StatusKind, msg string) {
	c.mu.Lock()
	c.setStatusLocked(kind, msg)
	c.mu.Unlock()
}

// setStatusLocked replaces the status line and drops any validation focus.
// c.mu must be held.
func (c *Controller) setStatusLocked(kind models.StatusKind, msg string) {
	c.status = models.Status{Kind: kind, Message: msg}
	c.focus = ""
}
