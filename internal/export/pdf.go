// Package export renders load maps as a one-page PDF load sheet and as an
// XLSX workbook.
package export

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"warehouse/loadmap/internal/loadmap"
	"warehouse/loadmap/internal/printlayout"
)

const (
	PDFContentType  = "application/pdf"
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	mmPerInch = 25.4
	margin    = 10.0

	// Natural (unscaled) sheet geometry in mm.
	cellW    = 22.0
	cellH    = 18.0
	headerH  = 42.0
	sectionH = 62.0
	qrSize   = 26.0
)

// PDFOptions controls the load sheet.
type PDFOptions struct {
	// LinkURL is encoded as a QR code in the header when set.
	LinkURL string
}

// sheet is the printable content; its natural size drives the print scale.
type sheet struct {
	rec *loadmap.LoadMap
}

func (s sheet) naturalSize() (w, h float64) {
	w = cellW * loadmap.RowLength
	rows := float64(loadmap.PalletCount / loadmap.RowLength)
	h = headerH + rows*cellH + sectionH
	return w, h
}

// Measure reports the natural size in CSS pixels at the print DPI.
func (s sheet) Measure() (float64, float64) {
	w, h := s.naturalSize()
	return w / mmPerInch * printlayout.DPI, h / mmPerInch * printlayout.DPI
}

// LoadSheetPDF renders rec on a single letter page, scaled down as needed so
// the full grid fits.
func LoadSheetPDF(rec *loadmap.LoadMap, opts PDFOptions) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("load sheet: nil record")
	}

	scale := printlayout.Scale(sheet{rec: rec}.Measure())

	var buf bytes.Buffer
	if err := renderSheet(&buf, rec, opts, scale); err != nil {
		return nil, fmt.Errorf("load sheet: %w", err)
	}
	return buf.Bytes(), nil
}

func renderSheet(buf *bytes.Buffer, rec *loadmap.LoadMap, opts PDFOptions, scale float64) error {
	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	usableW := pageW - 2*margin
	cw := math.Min(cellW*scale, usableW/loadmap.RowLength)
	ch := cellH * scale

	if err := drawHeader(pdf, rec, opts, usableW); err != nil {
		return err
	}

	y := margin + headerH
	drawGrid(pdf, rec, margin, y, cw, ch)

	y += ch*float64(loadmap.PalletCount/loadmap.RowLength) + 4
	drawTotals(pdf, rec.Totals, margin, y, usableW)
	drawStops(pdf, rec.Stops, margin, y+10, usableW/2-2)
	drawChecklist(pdf, &rec.Fields, margin+usableW/2+2, y+10, usableW/2-2)
	drawNotes(pdf, &rec.Fields, margin, y+42, usableW)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(buf)
}

func drawHeader(pdf *gofpdf.Fpdf, rec *loadmap.LoadMap, opts PDFOptions, usableW float64) error {
	textW := usableW
	if opts.LinkURL != "" {
		png, err := qrcode.Encode(opts.LinkURL, qrcode.Medium, 256)
		if err != nil {
			return fmt.Errorf("qr code: %w", err)
		}
		imgOptions := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader("qr", imgOptions, bytes.NewReader(png))
		pdf.ImageOptions("qr", margin+usableW-qrSize, margin, qrSize, qrSize, false, imgOptions, 0, opts.LinkURL)
		textW -= qrSize + 2
	}

	pdf.SetXY(margin, margin)
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(textW, 8, pdfText(rec.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	lines := [][2]string{
		{"Run", rec.RunNumber}, {"Trailer", rec.TrailerNumber}, {"Door", rec.Door},
		{"Date", rec.LoadDate}, {"Fuel", rec.FuelLevel}, {"Temp", rec.LoadedTemp},
		{"Loader", rec.LoaderName}, {"Driver", rec.DriverName},
		{"WOL/OLPN", fmt.Sprint(rec.WolOlpnCount)}, {"PLBs loaded", fmt.Sprint(rec.PlbsLoaded)},
		{"PLBs created", fmt.Sprint(rec.PlbsCreated)}, {"DPR rebuilds", fmt.Sprint(rec.DprRebuilds)},
		{"DPR rewraps", fmt.Sprint(rec.DprRewraps)}, {"DPR consolidations", fmt.Sprint(rec.DprConsolidations)},
	}
	colW := textW / 4
	for i, kv := range lines {
		x := margin + float64(i%4)*colW
		y := margin + 10 + float64(i/4)*6
		pdf.SetXY(x, y)
		pdf.CellFormat(colW, 5, pdfText(kv[0]+": "+kv[1]), "", 0, "L", false, 0, "")
	}
	return nil
}

func drawGrid(pdf *gofpdf.Fpdf, rec *loadmap.LoadMap, x0, y0, cw, ch float64) {
	g := rec.Grid()
	for r, row := range g.Rows() {
		for c, p := range row {
			x := x0 + float64(c)*cw
			y := y0 + float64(r)*ch

			if g.IsBulkhead(p.Pos) {
				pdf.SetLineWidth(0.8)
			} else {
				pdf.SetLineWidth(0.2)
			}
			pdf.Rect(x, y, cw, ch, "D")

			pdf.SetFont("Arial", "", 6)
			pdf.SetXY(x+0.5, y+0.5)
			pdf.CellFormat(cw-1, 3, fmt.Sprint(p.Pos), "", 0, "L", false, 0, "")

			pdf.SetFont("Arial", "B", 7)
			pdf.SetXY(x, y+ch/2-3)
			pdf.CellFormat(cw, 3, pdfText(string(p.Type)), "", 0, "C", false, 0, "")
			pdf.SetFont("Arial", "", 6)
			pdf.SetXY(x, y+ch/2+0.5)
			pdf.CellFormat(cw, 3, pdfText(strings.TrimSpace(p.Store+" "+p.Zone)), "", 0, "C", false, 0, "")
		}
	}
	pdf.SetLineWidth(0.2)
}

func drawTotals(pdf *gofpdf.Fpdf, t loadmap.Totals, x, y, w float64) {
	pdf.SetXY(x, y)
	pdf.SetFont("Arial", "B", 9)
	parts := make([]string, 0, len(loadmap.PalletTypes)+1)
	for _, pt := range loadmap.PalletTypes {
		parts = append(parts, fmt.Sprintf("%s %d", pt, t.Count(pt)))
	}
	parts = append(parts, fmt.Sprintf("Total %d", t.Total))
	pdf.CellFormat(w, 6, strings.Join(parts, "   "), "1", 0, "L", false, 0, "")
}

func drawStops(pdf *gofpdf.Fpdf, stops []loadmap.Stop, x, y, w float64) {
	pdf.SetXY(x, y)
	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(w*0.2, 5, "Stop", "1", 0, "C", false, 0, "")
	pdf.CellFormat(w*0.4, 5, "Loader", "1", 0, "C", false, 0, "")
	pdf.CellFormat(w*0.4, 5, "Driver", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	for i := 0; i < loadmap.StopRows; i++ {
		var s loadmap.Stop
		if i < len(stops) {
			s = stops[i]
		}
		pdf.SetX(x)
		pdf.CellFormat(w*0.2, 5, fmt.Sprint(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(w*0.4, 5, pdfText(s.Loader), "1", 0, "L", false, 0, "")
		pdf.CellFormat(w*0.4, 5, pdfText(s.Driver), "1", 1, "L", false, 0, "")
	}
}

func drawChecklist(pdf *gofpdf.Fpdf, f *loadmap.Fields, x, y, w float64) {
	pdf.SetXY(x, y)
	pdf.SetFont("Arial", "B", 8)
	pdf.CellFormat(w, 5, "Sanitary checklist", "1", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	for i, a := range f.Sanitary() {
		label := a.Label()
		if label == "" {
			label = "-"
		}
		pdf.SetX(x)
		pdf.CellFormat(w*0.75, 5, SanitaryLabel(i+1), "1", 0, "L", false, 0, "")
		pdf.CellFormat(w*0.25, 5, label, "1", 1, "C", false, 0, "")
	}
}

func drawNotes(pdf *gofpdf.Fpdf, f *loadmap.Fields, x, y, w float64) {
	pdf.SetFont("Arial", "B", 8)
	pdf.SetXY(x, y)
	pdf.CellFormat(w/2-2, 5, "Loader notes", "", 0, "L", false, 0, "")
	pdf.SetXY(x+w/2+2, y)
	pdf.CellFormat(w/2-2, 5, "Driver notes", "", 0, "L", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	pdf.SetXY(x, y+5)
	pdf.MultiCell(w/2-2, 4, pdfText(f.LoaderNotes), "1", "L", false)
	pdf.SetXY(x+w/2+2, y+5)
	pdf.MultiCell(w/2-2, 4, pdfText(f.DriverNotes), "1", "L", false)
}

// SanitaryLabel names checklist question q (1-based).
func SanitaryLabel(q int) string { return fmt.Sprintf("Sanitary Q%d", q) }

// pdfText maps text to the core fonts' cp1252 encoding.
var pdfText = gofpdf.New("P", "mm", "Letter", "").UnicodeTranslatorFromDescriptor("")
