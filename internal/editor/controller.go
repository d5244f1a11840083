// Package editor orchestrates the list and editor views: it lists saved load
// maps, opens one into a Session, and saves or deletes it through a Backend.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"warehouse/loadmap/internal/loadmap"
)

var (
	ErrSaveFailed     = errors.New("save failed")
	ErrDeleteFailed   = errors.New("delete failed")
	ErrNotConfirmed   = errors.New("delete not confirmed")
	ErrNoSession      = errors.New("no load map is open")
	ErrStaleResponse  = errors.New("list response superseded by a newer request")
	DeleteConfirmText = "Delete this load map?"
)

// Backend is the remote load map store.
type Backend interface {
	List(ctx context.Context, query string) ([]loadmap.Summary, error)
	Get(ctx context.Context, id uint) (*loadmap.LoadMap, error)
	Create(ctx context.Context, m *loadmap.LoadMap) (*loadmap.LoadMap, error)
	Replace(ctx context.Context, id uint, m *loadmap.LoadMap) (*loadmap.LoadMap, error)
	Delete(ctx context.Context, id uint) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// Controller owns the currently open Session and the last list shown.
type Controller struct {
	backend Backend
	now     func() time.Time

	listSeq atomic.Uint64

	mu        sync.Mutex
	session   *Session
	summaries []loadmap.Summary
	query     string
	observers []func(*Session)
}

// NewController returns a controller with no record open.
func NewController(backend Backend) *Controller {
	return &Controller{backend: backend, now: time.Now}
}

// SetClock overrides the time source used for new-record defaults.
func (c *Controller) SetClock(now func() time.Time) { c.now = now }

// Observe registers fn on every session this controller opens from now on.
func (c *Controller) Observe(fn func(*Session)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
	if c.session != nil {
		c.session.OnChange(fn)
	}
}

// List fetches summaries matching query. When another List was dispatched
// after this one, the response is dropped and ErrStaleResponse returned so a
// slow reply never overwrites a newer one.
func (c *Controller) List(ctx context.Context, query string) ([]loadmap.Summary, error) {
	seq := c.listSeq.Add(1)

	items, err := c.backend.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list load maps: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.listSeq.Load() {
		return nil, ErrStaleResponse
	}
	c.summaries = items
	c.query = query
	return copySummaries(items), nil
}

// Summaries returns the last applied list.
func (c *Controller) Summaries() []loadmap.Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copySummaries(c.summaries)
}

// Query returns the search text of the last applied list.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Open loads record id into a new session, replacing whatever was open.
// id 0 starts a new record.
func (c *Controller) Open(ctx context.Context, id uint) (*Session, error) {
	var rec *loadmap.LoadMap
	if id != 0 {
		var err error
		rec, err = c.backend.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("open load map %d: %w", id, err)
		}
	}

	s := NewSession(rec, c.now())

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, fn := range c.observers {
		s.OnChange(fn)
	}
	c.session = s
	return s, nil
}

// Session returns the open session or nil.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// Close discards the open session and any unsaved edits.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
}

// Update runs fn against the open session while holding the controller lock.
func (c *Controller) Update(fn func(*Session) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return ErrNoSession
	}
	return fn(c.session)
}

// EditPallet edits one slot of the open record.
func (c *Controller) EditPallet(pos int, e loadmap.Edit) error {
	return c.Update(func(s *Session) error { return s.EditPallet(pos, e) })
}

// ClearPallet blanks one slot of the open record.
func (c *Controller) ClearPallet(pos int) error {
	return c.Update(func(s *Session) error { return s.ClearPallet(pos) })
}

// Save sends the open record to the backend: a create when it has no id, a
// full replace otherwise. On success the list is refreshed and the editor
// closed. On failure the error wraps ErrSaveFailed and the session is left
// untouched so nothing typed is lost.
func (c *Controller) Save(ctx context.Context) (*loadmap.LoadMap, error) {
	c.mu.Lock()
	s := c.session
	if s == nil {
		c.mu.Unlock()
		return nil, ErrNoSession
	}
	payload := s.Payload()
	query := c.query
	c.mu.Unlock()

	var (
		saved *loadmap.LoadMap
		err   error
	)
	if payload.IsNew() {
		saved, err = c.backend.Create(ctx, payload)
	} else {
		saved, err = c.backend.Replace(ctx, payload.ID, payload)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}

	c.closeIf(s)
	if _, err := c.List(ctx, query); err != nil && !errors.Is(err, ErrStaleResponse) {
		return saved, fmt.Errorf("refresh after save: %w", err)
	}
	return saved, nil
}

// Delete removes the open record after the user confirms. An unsaved record
// is simply closed. A declined confirmation issues no request and keeps the
// editor open.
func (c *Controller) Delete(ctx context.Context, confirm Confirmer) error {
	c.mu.Lock()
	s := c.session
	query := c.query
	c.mu.Unlock()

	if s == nil {
		return ErrNoSession
	}
	if s.IsNew() {
		c.closeIf(s)
		return nil
	}
	if confirm == nil || !confirm.Confirm(DeleteConfirmText) {
		return ErrNotConfirmed
	}

	if err := c.backend.Delete(ctx, s.ID()); err != nil {
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}

	c.closeIf(s)
	if _, err := c.List(ctx, query); err != nil && !errors.Is(err, ErrStaleResponse) {
		return fmt.Errorf("refresh after delete: %w", err)
	}
	return nil
}

func (c *Controller) closeIf(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == s {
		c.session = nil
	}
}

func copySummaries(in []loadmap.Summary) []loadmap.Summary {
	if in == nil {
		return nil
	}
	out := make([]loadmap.Summary, len(in))
	copy(out, in)
	return out
}
