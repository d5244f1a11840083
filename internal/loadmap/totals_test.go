package loadmap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComputeTotals_Scenario(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.EditPallet(1, Edit{Type: TypeFrozen}))
	require.NoError(t, g.EditPallet(16, Edit{Type: TypeFrozen}))
	require.NoError(t, g.EditPallet(30, Edit{Type: TypeEggs}))

	totals := ComputeTotals(g.Pallets())
	require.Equal(t, Totals{Frozen: 2, Eggs: 1, Total: 3}, totals)
}

func TestComputeTotals_TotalIsSumOfCategories(t *testing.T) {
	types := []PalletType{TypeNone, "Mystery", "frozen"}
	types = append(types, PalletTypes...)

	pallets := make([]Pallet, PalletCount)
	recognized := 0
	for i := range pallets {
		pallets[i] = NewPallet(i + 1)
		pallets[i].Type = types[(i*7)%len(types)]
		if pallets[i].Type.Known() {
			recognized++
		}
	}

	totals := ComputeTotals(pallets)
	sum := 0
	for _, pt := range PalletTypes {
		sum += totals.Count(pt)
	}
	require.Equal(t, sum, totals.Total)
	require.Equal(t, recognized, totals.Total)
	require.Equal(t, 0, totals.Count("Mystery"))
}

func TestComputeTotals_Idempotent(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.EditPallet(4, Edit{Type: TypeAmbient}))
	require.NoError(t, g.EditPallet(22, Edit{Type: TypeEquip}))

	first := ComputeTotals(g.Pallets())
	second := ComputeTotals(g.Pallets())
	require.Equal(t, first, second)
}

func TestComputeTotals_UnknownTypesCountNowhere(t *testing.T) {
	pallets := []Pallet{{Pos: 1, Type: "Pallet Jack"}, {Pos: 2, Type: TypeFlower}}
	require.Equal(t, Totals{Flower: 1, Total: 1}, ComputeTotals(pallets))
}
