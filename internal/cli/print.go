package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"warehouse/loadmap/internal/editor"
	"warehouse/loadmap/internal/export"
	"warehouse/loadmap/internal/form"
	"warehouse/loadmap/internal/loadmap"
)

var typeColors = map[loadmap.PalletType]*color.Color{
	loadmap.TypeFrozen:  color.New(color.FgHiBlue),
	loadmap.TypeChiller: color.New(color.FgCyan),
	loadmap.TypeAmbient: color.New(color.FgYellow),
	loadmap.TypeEggs:    color.New(color.FgHiYellow),
	loadmap.TypeBread:   color.New(color.FgRed),
	loadmap.TypeDP:      color.New(color.FgMagenta),
	loadmap.TypeFlower:  color.New(color.FgHiMagenta),
	loadmap.TypeEquip:   color.New(color.FgWhite),
}

var detailFields = []struct{ label, name string }{
	{"Date", form.FieldDate},
	{"Run", form.FieldRunNumber},
	{"Trailer", form.FieldTrailerNumber},
	{"Door", form.FieldDoor},
	{"Fuel", form.FieldFuelLevel},
	{"Loaded temp", form.FieldLoadedTemp},
	{"Loader", form.FieldLoaderName},
	{"Driver", form.FieldDriverName},
}

func printSession(opts *Options, s *editor.Session) {
	out := opts.Out
	bold := color.New(color.Bold)

	bold.Fprintf(out, "#%d %s\n", s.ID(), s.Field(form.FieldTitle))
	for _, f := range detailFields {
		if v := s.Field(f.name); v != "" {
			fmt.Fprintf(out, "  %-12s %s\n", f.label+":", v)
		}
	}
	fmt.Fprintln(out)

	for _, row := range s.Rows() {
		cells := make([]string, len(row))
		for i, p := range row {
			cells[i] = cell(p, s.IsBulkhead(p.Pos))
		}
		fmt.Fprintln(out, strings.Join(cells, " "))
	}
	fmt.Fprintln(out)

	t := s.Totals()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, pt := range loadmap.PalletTypes {
		fmt.Fprintf(w, "%s\t", pt)
	}
	fmt.Fprintln(w, "Total")
	for _, pt := range loadmap.PalletTypes {
		fmt.Fprintf(w, "%d\t", t.Count(pt))
	}
	fmt.Fprintf(w, "%d\n", t.Total)
	w.Flush()

	printChecklist(opts, s)
}

// cell renders one slot as a fixed-width token; bulkheads are bracketed.
func cell(p loadmap.Pallet, bulkhead bool) string {
	label := "--"
	if p.Type != loadmap.TypeNone {
		label = string(p.Type)
		if len(label) > 2 {
			label = label[:2]
		}
	}
	text := fmt.Sprintf("%02d:%-2s", p.Pos, label)
	if bulkhead {
		text = "[" + text + "]"
	} else {
		text = " " + text + " "
	}
	if c, ok := typeColors[p.Type]; ok {
		return c.Sprint(text)
	}
	return text
}

func printChecklist(opts *Options, s *editor.Session) {
	fmt.Fprintln(opts.Out)
	for q := 1; q <= 4; q++ {
		answer := s.Field(form.SanitaryField(q))
		switch answer {
		case "Yes":
			answer = color.GreenString(answer)
		case "No":
			answer = color.RedString(answer)
		default:
			answer = "-"
		}
		fmt.Fprintf(opts.Out, "  %s: %s\n", export.SanitaryLabel(q), answer)
	}
}
