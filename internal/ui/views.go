package ui

import (
	"net/url"

	"warehouse/loadmap/internal/editor"
	"warehouse/loadmap/internal/export"
	"warehouse/loadmap/internal/form"
	"warehouse/loadmap/internal/loadmap"
)

type fieldView struct {
	Name  string
	Label string
	Kind  string
	Value string
}

type cellView struct {
	Pos      int
	Type     loadmap.PalletType
	Store    string
	Zone     string
	Bulkhead bool
}

type totalView struct {
	Label string
	Count int
}

type stopView struct {
	N           int
	LoaderField string
	DriverField string
	Loader      string
	Driver      string
}

type sanitaryView struct {
	Field string
	Label string
	Value string
}

var headerFields = []fieldView{
	{Name: form.FieldTitle, Label: "Title", Kind: "text"},
	{Name: form.FieldDate, Label: "Date", Kind: "date"},
	{Name: form.FieldRunNumber, Label: "Run #", Kind: "text"},
	{Name: form.FieldTrailerNumber, Label: "Trailer #", Kind: "text"},
	{Name: form.FieldDoor, Label: "Door", Kind: "text"},
	{Name: form.FieldFuelLevel, Label: "Fuel level", Kind: "text"},
	{Name: form.FieldLoadedTemp, Label: "Loaded temp", Kind: "text"},
	{Name: form.FieldLoaderName, Label: "Loader", Kind: "text"},
	{Name: form.FieldDriverName, Label: "Driver", Kind: "text"},
}

var counterFields = []fieldView{
	{Name: form.FieldWolOlpnCount, Label: "WOL/OLPN count", Kind: "number"},
	{Name: form.FieldPlbsLoaded, Label: "PLBs loaded", Kind: "number"},
	{Name: form.FieldPlbsCreated, Label: "PLBs created", Kind: "number"},
	{Name: form.FieldDprRebuilds, Label: "DPR rebuilds", Kind: "number"},
	{Name: form.FieldDprRewraps, Label: "DPR rewraps", Kind: "number"},
	{Name: form.FieldDprConsolidations, Label: "DPR consolidations", Kind: "number"},
}

func withValues(fields []fieldView, v url.Values) []fieldView {
	out := make([]fieldView, len(fields))
	for i, f := range fields {
		f.Value = v.Get(f.Name)
		out[i] = f
	}
	return out
}

func gridView(s *editor.Session) [][]cellView {
	rows := s.Rows()
	out := make([][]cellView, len(rows))
	for i, row := range rows {
		cells := make([]cellView, len(row))
		for j, p := range row {
			cells[j] = cellView{
				Pos:      p.Pos,
				Type:     p.Type,
				Store:    p.Store,
				Zone:     p.Zone,
				Bulkhead: s.IsBulkhead(p.Pos),
			}
		}
		out[i] = cells
	}
	return out
}

func totalsView(t loadmap.Totals) []totalView {
	out := make([]totalView, 0, len(loadmap.PalletTypes))
	for _, pt := range loadmap.PalletTypes {
		out = append(out, totalView{Label: string(pt), Count: t.Count(pt)})
	}
	return out
}

func stopsView(v url.Values) []stopView {
	out := make([]stopView, loadmap.StopRows)
	for i := range out {
		n := i + 1
		out[i] = stopView{
			N:           n,
			LoaderField: form.StopLoaderField(n),
			DriverField: form.StopDriverField(n),
			Loader:      v.Get(form.StopLoaderField(n)),
			Driver:      v.Get(form.StopDriverField(n)),
		}
	}
	return out
}

func sanitaryViews(v url.Values) []sanitaryView {
	out := make([]sanitaryView, 4)
	for i := range out {
		q := i + 1
		out[i] = sanitaryView{
			Field: form.SanitaryField(q),
			Label: export.SanitaryLabel(q),
			Value: v.Get(form.SanitaryField(q)),
		}
	}
	return out
}

// editorData snapshots the session for the editor template. Callers hold the
// controller lock.
func editorData(s *editor.Session) map[string]interface{} {
	v := s.Form()
	return map[string]interface{}{
		"ID":          s.ID(),
		"IsNew":       s.IsNew(),
		"Header":      withValues(headerFields, v),
		"Counters":    withValues(counterFields, v),
		"Stops":       stopsView(v),
		"Sanitary":    sanitaryViews(v),
		"LoaderNotes": v.Get(form.FieldLoaderNotes),
		"DriverNotes": v.Get(form.FieldDriverNotes),
		"Rows":        gridView(s),
		"Totals":      totalsView(s.Totals()),
		"Total":       s.Totals().Total,
		"Types":       loadmap.PalletTypes,
	}
}

// gridData is the subset of editorData the grid partial needs.
func gridData(s *editor.Session) map[string]interface{} {
	return map[string]interface{}{
		"Rows":   gridView(s),
		"Totals": totalsView(s.Totals()),
		"Total":  s.Totals().Total,
	}
}
