package editor

import (
	"net/url"
	"time"

	"warehouse/loadmap/internal/form"
	"warehouse/loadmap/internal/loadmap"
)

// Session is the state of the record currently open in the editor. It owns
// the form values, the pallet grid and the totals derived from the grid.
type Session struct {
	id       uint
	form     url.Values
	grid     *loadmap.Grid
	totals   loadmap.Totals
	onChange []func(*Session)
}

// NewSession opens rec for editing. A nil record starts a new load map with
// form defaults and a blank grid.
func NewSession(rec *loadmap.LoadMap, now time.Time) *Session {
	s := &Session{
		form: form.Populate(rec, now),
		grid: loadmap.NewGrid(),
	}
	if rec != nil {
		s.id = rec.ID
		s.grid.LoadFrom(rec.Pallets, rec.Bulkheads)
	}
	s.totals = loadmap.ComputeTotals(s.grid.Pallets())
	return s
}

// ID is the backend id of the open record, zero when it was never saved.
func (s *Session) ID() uint { return s.id }

// IsNew reports whether saving will create a record.
func (s *Session) IsNew() bool { return s.id == 0 }

// Form returns a copy of the current form values.
func (s *Session) Form() url.Values {
	out := make(url.Values, len(s.form))
	for k, v := range s.form {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Field returns a single form value.
func (s *Session) Field(name string) string { return s.form.Get(name) }

// SetForm replaces the form values with what the user submitted. Only known
// field names matter; Collect ignores anything else.
func (s *Session) SetForm(v url.Values) {
	s.form = make(url.Values, len(v))
	for k, vals := range v {
		s.form[k] = append([]string(nil), vals...)
	}
}

func (s *Session) Pallets() []loadmap.Pallet              { return s.grid.Pallets() }
func (s *Session) Rows() [][]loadmap.Pallet               { return s.grid.Rows() }
func (s *Session) Bulkheads() []int                       { return s.grid.Bulkheads() }
func (s *Session) IsBulkhead(pos int) bool                { return s.grid.IsBulkhead(pos) }
func (s *Session) Pallet(pos int) (loadmap.Pallet, error) { return s.grid.Pallet(pos) }

// Totals returns the totals computed after the last mutation.
func (s *Session) Totals() loadmap.Totals { return s.totals }

// OnChange registers a callback run after every successful mutation, once
// totals have been recomputed.
func (s *Session) OnChange(fn func(*Session)) {
	s.onChange = append(s.onChange, fn)
}

// ApplyMutation is the only way the grid changes. It runs fn, then
// recomputes totals from scratch and notifies the change callbacks. If fn
// fails nothing is refreshed.
func (s *Session) ApplyMutation(fn func(*loadmap.Grid) error) error {
	if err := fn(s.grid); err != nil {
		return err
	}
	s.totals = loadmap.ComputeTotals(s.grid.Pallets())
	for _, cb := range s.onChange {
		cb(s)
	}
	return nil
}

// EditPallet applies the pallet modal's values to one slot.
func (s *Session) EditPallet(pos int, e loadmap.Edit) error {
	return s.ApplyMutation(func(g *loadmap.Grid) error {
		return g.EditPallet(pos, e)
	})
}

// ClearPallet blanks one slot.
func (s *Session) ClearPallet(pos int) error {
	return s.ApplyMutation(func(g *loadmap.Grid) error {
		return g.ClearPallet(pos)
	})
}

// Payload assembles the document sent on save: collected form fields, the
// pallets, the bulkheads and freshly computed totals.
func (s *Session) Payload() *loadmap.LoadMap {
	pallets := s.grid.Pallets()
	return &loadmap.LoadMap{
		ID:        s.id,
		Fields:    form.Collect(s.form),
		Pallets:   pallets,
		Bulkheads: s.grid.Bulkheads(),
		Totals:    loadmap.ComputeTotals(pallets),
	}
}
