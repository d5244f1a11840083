// Package form binds the editor's named form fields to load map records.
package form

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"warehouse/loadmap/internal/loadmap"
)

// Field names posted by the editor form.
const (
	FieldTitle             = "title"
	FieldRunNumber         = "run_number"
	FieldTrailerNumber     = "trailer_number"
	FieldDoor              = "door"
	FieldFuelLevel         = "fuel_level"
	FieldLoadedTemp        = "loaded_temp"
	FieldLoaderName        = "loader_name"
	FieldDriverName        = "driver_name"
	FieldDate              = "date_field"
	FieldWolOlpnCount      = "wol_olpn_count"
	FieldPlbsLoaded        = "plbs_loaded"
	FieldPlbsCreated       = "plbs_created"
	FieldDprRebuilds       = "dpr_rebuilds"
	FieldDprRewraps        = "dpr_rewraps"
	FieldDprConsolidations = "dpr_consolidations"
	FieldLoaderNotes       = "loader_notes"
	FieldDriverNotes       = "driver_notes"
)

const (
	// DefaultTitle replaces a blank title on collect.
	DefaultTitle = "Load Map"
	// TitleLayout renders the new-record title like an en-US locale timestamp.
	TitleLayout = "1/2/2006, 3:04:05 PM"
	// DateLayout is the value format of the date input.
	DateLayout = "2006-01-02"
)

// SanitaryField returns the form name of checklist question q (1-based).
func SanitaryField(q int) string { return fmt.Sprintf("san_q%d", q) }

// StopLoaderField returns the loader input name of stop row n (1-based).
func StopLoaderField(n int) string { return fmt.Sprintf("stop_%d_loader", n) }

// StopDriverField returns the driver input name of stop row n (1-based).
func StopDriverField(n int) string { return fmt.Sprintf("stop_%d_driver", n) }

type textField struct {
	name string
	get  func(*loadmap.Fields) *string
}

type numberField struct {
	name string
	get  func(*loadmap.Fields) *int
}

var textFields = []textField{
	{FieldRunNumber, func(f *loadmap.Fields) *string { return &f.RunNumber }},
	{FieldTrailerNumber, func(f *loadmap.Fields) *string { return &f.TrailerNumber }},
	{FieldDoor, func(f *loadmap.Fields) *string { return &f.Door }},
	{FieldFuelLevel, func(f *loadmap.Fields) *string { return &f.FuelLevel }},
	{FieldLoadedTemp, func(f *loadmap.Fields) *string { return &f.LoadedTemp }},
	{FieldLoaderName, func(f *loadmap.Fields) *string { return &f.LoaderName }},
	{FieldDriverName, func(f *loadmap.Fields) *string { return &f.DriverName }},
}

var numberFields = []numberField{
	{FieldWolOlpnCount, func(f *loadmap.Fields) *int { return &f.WolOlpnCount }},
	{FieldPlbsLoaded, func(f *loadmap.Fields) *int { return &f.PlbsLoaded }},
	{FieldPlbsCreated, func(f *loadmap.Fields) *int { return &f.PlbsCreated }},
	{FieldDprRebuilds, func(f *loadmap.Fields) *int { return &f.DprRebuilds }},
	{FieldDprRewraps, func(f *loadmap.Fields) *int { return &f.DprRewraps }},
	{FieldDprConsolidations, func(f *loadmap.Fields) *int { return &f.DprConsolidations }},
}

// Populate fills the form from rec. A nil record yields the new-record
// defaults: a timestamp title, zero counters, today's date, empty stop rows
// and unanswered sanitary questions.
func Populate(rec *loadmap.LoadMap, now time.Time) url.Values {
	v := url.Values{}
	today := now.Format(DateLayout)

	if rec == nil {
		v.Set(FieldTitle, now.Format(TitleLayout))
		for _, tf := range textFields {
			v.Set(tf.name, "")
		}
		for _, nf := range numberFields {
			v.Set(nf.name, "0")
		}
		v.Set(FieldDate, today)
		v.Set(FieldLoaderNotes, "")
		v.Set(FieldDriverNotes, "")
		for q := 1; q <= 4; q++ {
			v.Set(SanitaryField(q), "")
		}
		for n := 1; n <= loadmap.StopRows; n++ {
			v.Set(StopLoaderField(n), "")
			v.Set(StopDriverField(n), "")
		}
		return v
	}

	f := rec.Fields
	v.Set(FieldTitle, f.Title)
	for _, tf := range textFields {
		v.Set(tf.name, *tf.get(&f))
	}
	for _, nf := range numberFields {
		v.Set(nf.name, strconv.Itoa(*nf.get(&f)))
	}
	date := f.LoadDate
	if date == "" {
		date = today
	}
	v.Set(FieldDate, date)
	v.Set(FieldLoaderNotes, f.LoaderNotes)
	v.Set(FieldDriverNotes, f.DriverNotes)
	for i, a := range f.Sanitary() {
		v.Set(SanitaryField(i+1), a.Label())
	}
	for n := 1; n <= loadmap.StopRows; n++ {
		var s loadmap.Stop
		if n <= len(f.Stops) {
			s = f.Stops[n-1]
		}
		v.Set(StopLoaderField(n), s.Loader)
		v.Set(StopDriverField(n), s.Driver)
	}
	return v
}

// Collect reads the form back into record fields. Numbers that are blank or
// not numeric become 0, text is trimmed (notes are kept verbatim) and every
// stop row is emitted whether or not it was filled in.
func Collect(v url.Values) loadmap.Fields {
	var f loadmap.Fields

	f.Title = strings.TrimSpace(v.Get(FieldTitle))
	if f.Title == "" {
		f.Title = DefaultTitle
	}
	for _, tf := range textFields {
		*tf.get(&f) = strings.TrimSpace(v.Get(tf.name))
	}
	for _, nf := range numberFields {
		*nf.get(&f) = ParseCount(v.Get(nf.name))
	}
	f.LoadDate = strings.TrimSpace(v.Get(FieldDate))
	f.LoaderNotes = v.Get(FieldLoaderNotes)
	f.DriverNotes = v.Get(FieldDriverNotes)
	for i, a := range f.Sanitary() {
		*a = loadmap.AnswerFromLabel(v.Get(SanitaryField(i + 1)))
	}

	f.Stops = make([]loadmap.Stop, loadmap.StopRows)
	for n := 1; n <= loadmap.StopRows; n++ {
		f.Stops[n-1] = loadmap.Stop{
			Stop:   n,
			Loader: strings.TrimSpace(v.Get(StopLoaderField(n))),
			Driver: strings.TrimSpace(v.Get(StopDriverField(n))),
		}
	}
	return f
}

// ParseCount coerces free-form counter input to an int. Fractions are
// truncated; anything unparseable or outside the int range is 0.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	fv, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(fv) || math.IsInf(fv, 0) {
		return 0
	}
	if fv >= math.MaxInt || fv <= math.MinInt {
		return 0
	}
	return int(fv)
}
