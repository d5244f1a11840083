package loadmap

import "time"

// StopRows is the number of stop rows on the load sheet.
const StopRows = 4

// Stop is one delivery point on the route. Index is positional.
type Stop struct {
	Stop   int    `json:"stop"`
	Loader string `json:"loader"`
	Driver string `json:"driver"`
}

// Fields holds the scalar metadata bound to the editor form.
type Fields struct {
	Title             string `json:"title"`
	RunNumber         string `json:"run_number"`
	TrailerNumber     string `json:"trailer_number"`
	Door              string `json:"door"`
	FuelLevel         string `json:"fuel_level"`
	LoadedTemp        string `json:"loaded_temp"`
	LoaderName        string `json:"loader_name"`
	DriverName        string `json:"driver_name"`
	LoadDate          string `json:"load_date"`
	WolOlpnCount      int    `json:"wol_olpn_count"`
	PlbsLoaded        int    `json:"plbs_loaded"`
	PlbsCreated       int    `json:"plbs_created"`
	DprRebuilds       int    `json:"dpr_rebuilds"`
	DprRewraps        int    `json:"dpr_rewraps"`
	DprConsolidations int    `json:"dpr_consolidations"`
	LoaderNotes       string `json:"loader_notes"`
	DriverNotes       string `json:"driver_notes"`
	SanitaryQ1        Answer `json:"sanitary_q1"`
	SanitaryQ2        Answer `json:"sanitary_q2"`
	SanitaryQ3        Answer `json:"sanitary_q3"`
	SanitaryQ4        Answer `json:"sanitary_q4"`
	Stops             []Stop `json:"stops_json"`
}

// Sanitary returns the four checklist answers in question order.
func (f *Fields) Sanitary() [4]*Answer {
	return [4]*Answer{&f.SanitaryQ1, &f.SanitaryQ2, &f.SanitaryQ3, &f.SanitaryQ4}
}

// LoadMap is the persisted record: metadata, pallet grid and derived totals.
// ID is zero until the backend has stored it.
type LoadMap struct {
	ID uint `json:"id,omitempty"`
	Fields
	Pallets   []Pallet   `json:"pallets_json"`
	Bulkheads []int      `json:"bulkheads_json"`
	Totals    Totals     `json:"totals_json"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// IsNew reports whether the record has never been saved.
func (m *LoadMap) IsNew() bool { return m.ID == 0 }

// Grid builds a grid from the record's pallets and bulkheads.
func (m *LoadMap) Grid() *Grid {
	g := NewGrid()
	g.LoadFrom(m.Pallets, m.Bulkheads)
	return g
}

// Normalize rebuilds pallets, bulkheads and totals from a grid so the
// snapshot obeys the fixed-size and recompute invariants.
func (m *LoadMap) Normalize() {
	g := m.Grid()
	m.Pallets = g.Pallets()
	m.Bulkheads = g.Bulkheads()
	m.Totals = ComputeTotals(m.Pallets)
}

// Summary is a list row as returned by GET /api/loadmaps.
type Summary struct {
	ID            uint      `json:"id" db:"id"`
	Title         string    `json:"title" db:"title"`
	RunNumber     string    `json:"run_number" db:"run_number"`
	TrailerNumber string    `json:"trailer_number" db:"trailer_number"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
