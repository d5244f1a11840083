package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"warehouse/loadmap/internal/loadmap"
)

const (
	sheetDetails = "Load Map"
	sheetPallets = "Pallets"
)

// LoadMapXLSX builds a workbook with a details sheet (metadata, stops,
// checklist, totals) and a pallets sheet with one row per slot.
func LoadMapXLSX(rec *loadmap.LoadMap) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("workbook: nil record")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetDetails); err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}
	if _, err := f.NewSheet(sheetPallets); err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D9E1F2"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	writeDetails(f, rec, titleStyle, headerStyle)
	writePallets(f, rec, headerStyle)
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func writeDetails(f *excelize.File, rec *loadmap.LoadMap, titleStyle, headerStyle int) {
	s := sheetDetails
	f.SetCellValue(s, "A1", rec.Title)
	f.SetCellStyle(s, "A1", "A1", titleStyle)
	f.SetRowHeight(s, 1, 28)
	f.SetColWidth(s, "A", "A", 22)
	f.SetColWidth(s, "B", "C", 24)

	rows := []struct {
		label string
		value interface{}
	}{
		{"Run number", rec.RunNumber},
		{"Trailer number", rec.TrailerNumber},
		{"Door", rec.Door},
		{"Date", rec.LoadDate},
		{"Fuel level", rec.FuelLevel},
		{"Loaded temp", rec.LoadedTemp},
		{"Loader", rec.LoaderName},
		{"Driver", rec.DriverName},
		{"WOL/OLPN count", rec.WolOlpnCount},
		{"PLBs loaded", rec.PlbsLoaded},
		{"PLBs created", rec.PlbsCreated},
		{"DPR rebuilds", rec.DprRebuilds},
		{"DPR rewraps", rec.DprRewraps},
		{"DPR consolidations", rec.DprConsolidations},
		{"Loader notes", rec.LoaderNotes},
		{"Driver notes", rec.DriverNotes},
	}
	row := 3
	for _, r := range rows {
		setRow(f, s, row, r.label, r.value)
		row++
	}

	row++
	for i, a := range rec.Sanitary() {
		setRow(f, s, row, SanitaryLabel(i+1), a.Label())
		row++
	}

	row++
	setRow(f, s, row, "Stop", "Loader", "Driver")
	styleRow(f, s, row, 3, headerStyle)
	row++
	for i := 0; i < loadmap.StopRows; i++ {
		var st loadmap.Stop
		if i < len(rec.Stops) {
			st = rec.Stops[i]
		}
		setRow(f, s, row, i+1, st.Loader, st.Driver)
		row++
	}

	row++
	setRow(f, s, row, "Category", "Pallets")
	styleRow(f, s, row, 2, headerStyle)
	row++
	for _, pt := range loadmap.PalletTypes {
		setRow(f, s, row, string(pt), rec.Totals.Count(pt))
		row++
	}
	setRow(f, s, row, "Total", rec.Totals.Total)
}

func writePallets(f *excelize.File, rec *loadmap.LoadMap, headerStyle int) {
	s := sheetPallets
	setRow(f, s, 1, "Pos", "Row", "Col", "Type", "Store", "Zone", "Bulkhead")
	styleRow(f, s, 1, 7, headerStyle)
	f.SetColWidth(s, "A", "G", 12)

	g := rec.Grid()
	for i, p := range g.Pallets() {
		bulkhead := ""
		if g.IsBulkhead(p.Pos) {
			bulkhead = "Yes"
		}
		setRow(f, s, i+2, p.Pos, p.Row, p.Col, string(p.Type), p.Store, p.Zone, bulkhead)
	}
	f.SetPanes(s, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for col, v := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		f.SetCellValue(sheet, cell, v)
	}
}

func styleRow(f *excelize.File, sheet string, row, cols, style int) {
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(cols, row)
	f.SetCellStyle(sheet, first, last, style)
}
