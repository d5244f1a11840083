package gorm

import (
	"time"

	"gorm.io/datatypes"

	"warehouse/loadmap/internal/loadmap"
)

// LoadMap is the load_maps row. JSON columns keep the wire key names.
type LoadMap struct {
	ID                uint                                 `gorm:"column:id;primaryKey;autoIncrement"`
	Title             string                               `gorm:"column:title;not null"`
	RunNumber         string                               `gorm:"column:run_number"`
	TrailerNumber     string                               `gorm:"column:trailer_number"`
	Door              string                               `gorm:"column:door"`
	FuelLevel         string                               `gorm:"column:fuel_level"`
	LoadedTemp        string                               `gorm:"column:loaded_temp"`
	LoaderName        string                               `gorm:"column:loader_name"`
	DriverName        string                               `gorm:"column:driver_name"`
	LoadDate          string                               `gorm:"column:load_date"`
	WolOlpnCount      int                                  `gorm:"column:wol_olpn_count;default:0"`
	PlbsLoaded        int                                  `gorm:"column:plbs_loaded;default:0"`
	PlbsCreated       int                                  `gorm:"column:plbs_created;default:0"`
	DprRebuilds       int                                  `gorm:"column:dpr_rebuilds;default:0"`
	DprRewraps        int                                  `gorm:"column:dpr_rewraps;default:0"`
	DprConsolidations int                                  `gorm:"column:dpr_consolidations;default:0"`
	LoaderNotes       string                               `gorm:"column:loader_notes;type:text"`
	DriverNotes       string                               `gorm:"column:driver_notes;type:text"`
	SanitaryQ1        loadmap.Answer                       `gorm:"column:sanitary_q1"`
	SanitaryQ2        loadmap.Answer                       `gorm:"column:sanitary_q2"`
	SanitaryQ3        loadmap.Answer                       `gorm:"column:sanitary_q3"`
	SanitaryQ4        loadmap.Answer                       `gorm:"column:sanitary_q4"`
	Stops             datatypes.JSONType[[]loadmap.Stop]   `gorm:"column:stops_json;not null"`
	Pallets           datatypes.JSONType[[]loadmap.Pallet] `gorm:"column:pallets_json;not null"`
	Bulkheads         datatypes.JSONType[[]int]            `gorm:"column:bulkheads_json;not null"`
	Totals            datatypes.JSONType[loadmap.Totals]   `gorm:"column:totals_json;not null"`
	CreatedAt         time.Time                            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time                            `gorm:"column:updated_at;autoUpdateTime;index"`
}

// TableName specifies the table name for GORM
func (LoadMap) TableName() string {
	return "load_maps"
}

// FromDomain builds a row from a record. The id is copied as-is.
func FromDomain(m *loadmap.LoadMap) *LoadMap {
	f := m.Fields
	stops := f.Stops
	if stops == nil {
		stops = []loadmap.Stop{}
	}
	bulkheads := m.Bulkheads
	if bulkheads == nil {
		bulkheads = []int{}
	}
	pallets := m.Pallets
	if pallets == nil {
		pallets = []loadmap.Pallet{}
	}

	return &LoadMap{
		ID:                m.ID,
		Title:             f.Title,
		RunNumber:         f.RunNumber,
		TrailerNumber:     f.TrailerNumber,
		Door:              f.Door,
		FuelLevel:         f.FuelLevel,
		LoadedTemp:        f.LoadedTemp,
		LoaderName:        f.LoaderName,
		DriverName:        f.DriverName,
		LoadDate:          f.LoadDate,
		WolOlpnCount:      f.WolOlpnCount,
		PlbsLoaded:        f.PlbsLoaded,
		PlbsCreated:       f.PlbsCreated,
		DprRebuilds:       f.DprRebuilds,
		DprRewraps:        f.DprRewraps,
		DprConsolidations: f.DprConsolidations,
		LoaderNotes:       f.LoaderNotes,
		DriverNotes:       f.DriverNotes,
		SanitaryQ1:        f.SanitaryQ1,
		SanitaryQ2:        f.SanitaryQ2,
		SanitaryQ3:        f.SanitaryQ3,
		SanitaryQ4:        f.SanitaryQ4,
		Stops:             datatypes.NewJSONType(stops),
		Pallets:           datatypes.NewJSONType(pallets),
		Bulkheads:         datatypes.NewJSONType(bulkheads),
		Totals:            datatypes.NewJSONType(m.Totals),
	}
}

// ToDomain converts the row back to a record.
func (r *LoadMap) ToDomain() *loadmap.LoadMap {
	created, updated := r.CreatedAt, r.UpdatedAt
	return &loadmap.LoadMap{
		ID: r.ID,
		Fields: loadmap.Fields{
			Title:             r.Title,
			RunNumber:         r.RunNumber,
			TrailerNumber:     r.TrailerNumber,
			Door:              r.Door,
			FuelLevel:         r.FuelLevel,
			LoadedTemp:        r.LoadedTemp,
			LoaderName:        r.LoaderName,
			DriverName:        r.DriverName,
			LoadDate:          r.LoadDate,
			WolOlpnCount:      r.WolOlpnCount,
			PlbsLoaded:        r.PlbsLoaded,
			PlbsCreated:       r.PlbsCreated,
			DprRebuilds:       r.DprRebuilds,
			DprRewraps:        r.DprRewraps,
			DprConsolidations: r.DprConsolidations,
			LoaderNotes:       r.LoaderNotes,
			DriverNotes:       r.DriverNotes,
			SanitaryQ1:        r.SanitaryQ1,
			SanitaryQ2:        r.SanitaryQ2,
			SanitaryQ3:        r.SanitaryQ3,
			SanitaryQ4:        r.SanitaryQ4,
			Stops:             r.Stops.Data(),
		},
		Pallets:   r.Pallets.Data(),
		Bulkheads: r.Bulkheads.Data(),
		Totals:    r.Totals.Data(),
		CreatedAt: &created,
		UpdatedAt: &updated,
	}
}
