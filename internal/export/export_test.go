package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"warehouse/loadmap/internal/loadmap"
	"warehouse/loadmap/internal/printlayout"
)

func sampleRecord(t *testing.T) *loadmap.LoadMap {
	t.Helper()
	rec := &loadmap.LoadMap{
		ID: 12,
		Fields: loadmap.Fields{
			Title:       "Run 12",
			RunNumber:   "12",
			LoaderNotes: "Top load bread\nCheck seal",
			SanitaryQ1:  loadmap.AnswerYes,
			SanitaryQ2:  loadmap.AnswerNo,
			Stops:       []loadmap.Stop{{Stop: 1, Loader: "Ann", Driver: "Bo"}},
		},
	}
	g := loadmap.NewGrid()
	require.NoError(t, g.EditPallet(1, loadmap.Edit{Type: loadmap.TypeFrozen, Store: "101", Bulkhead: true}))
	require.NoError(t, g.EditPallet(30, loadmap.Edit{Type: loadmap.TypeEggs, Zone: "B"}))
	rec.Pallets = g.Pallets()
	rec.Bulkheads = g.Bulkheads()
	rec.Totals = loadmap.ComputeTotals(rec.Pallets)
	return rec
}

func TestLoadSheetPDF(t *testing.T) {
	out, err := LoadSheetPDF(sampleRecord(t), PDFOptions{LinkURL: "http://localhost:5501/ui/loadmaps/12"})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	require.Contains(t, string(out), "/Count 1")
}

func TestLoadSheetPDFWithoutLink(t *testing.T) {
	out, err := LoadSheetPDF(&loadmap.LoadMap{}, PDFOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, out)
}

func TestLoadSheetPDFNilRecord(t *testing.T) {
	_, err := LoadSheetPDF(nil, PDFOptions{})
	require.Error(t, err)
}

func TestSheetIsScaledToFit(t *testing.T) {
	w, h := sheet{}.Measure()
	scale := printlayout.Scale(w, h)
	require.Less(t, scale, 1.0)
	require.Greater(t, scale, 0.0)
}

func TestLoadMapXLSX(t *testing.T) {
	out, err := LoadMapXLSX(sampleRecord(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{sheetDetails, sheetPallets}, f.GetSheetList())

	title, err := f.GetCellValue(sheetDetails, "A1")
	require.NoError(t, err)
	require.Equal(t, "Run 12", title)

	rows, err := f.GetRows(sheetPallets)
	require.NoError(t, err)
	require.Len(t, rows, loadmap.PalletCount+1)
	require.Equal(t, []string{"1", "1", "1", "Frozen", "101", "", "Yes"}, rows[1])
	require.Equal(t, []string{"30", "2", "15", "Eggs", "", "B"}, rows[30])
}
