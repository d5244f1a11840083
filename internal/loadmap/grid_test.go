package loadmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewGrid_DefaultLayout(t *testing.T) {
	g := NewGrid()
	pallets := g.Pallets()

	require.Len(t, pallets, PalletCount)
	for i, p := range pallets {
		pos := i + 1
		require.Equal(t, pos, p.Pos)
		require.True(t, p.Empty(), "pallet %d should be blank", pos)
	}

	first, _ := g.Pallet(1)
	require.Equal(t, 1, first.Row)
	require.Equal(t, 1, first.Col)

	last, _ := g.Pallet(15)
	require.Equal(t, 1, last.Row)
	require.Equal(t, 15, last.Col)

	rowTwo, _ := g.Pallet(16)
	require.Equal(t, 2, rowTwo.Row)
	require.Equal(t, 1, rowTwo.Col)

	end, _ := g.Pallet(30)
	require.Equal(t, 2, end.Row)
	require.Equal(t, 15, end.Col)

	require.Empty(t, g.Bulkheads())
	require.Equal(t, Totals{}, ComputeTotals(pallets))
}

func TestGrid_EditAndClear(t *testing.T) {
	g := NewGrid()

	require.NoError(t, g.EditPallet(7, Edit{Store: "  1042 ", Type: TypeChiller, Zone: "C", Bulkhead: true}))
	p, err := g.Pallet(7)
	require.NoError(t, err)
	require.Equal(t, "1042", p.Store)
	require.Equal(t, TypeChiller, p.Type)
	require.Equal(t, "C", p.Zone)
	require.True(t, g.IsBulkhead(7))

	require.NoError(t, g.ClearPallet(7))
	p, _ = g.Pallet(7)
	require.True(t, p.Empty())
	require.False(t, g.IsBulkhead(7))
	require.Equal(t, 1, p.Row)
	require.Equal(t, 7, p.Col)
}

func TestGrid_InvalidPosition(t *testing.T) {
	g := NewGrid()
	for _, pos := range []int{0, -1, 31} {
		err := g.EditPallet(pos, Edit{Type: TypeFrozen})
		require.True(t, errors.Is(err, ErrInvalidPosition))
		require.ErrorIs(t, g.ClearPallet(pos), ErrInvalidPosition)
		require.ErrorIs(t, g.SetBulkhead(pos, true), ErrInvalidPosition)
	}
	require.Empty(t, g.Bulkheads())
}

func TestGrid_BulkheadToggleTwiceRestoresSet(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.SetBulkhead(3, true))
	before := g.Bulkheads()

	require.NoError(t, g.SetBulkhead(9, true))
	require.NoError(t, g.SetBulkhead(9, false))
	require.Equal(t, before, g.Bulkheads())

	// Removing an absent flag is a no-op.
	require.NoError(t, g.SetBulkhead(20, false))
	require.Equal(t, before, g.Bulkheads())
}

func TestGrid_BulkheadMarkedTwiceIsNotDuplicated(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.EditPallet(5, Edit{Bulkhead: true}))
	require.NoError(t, g.EditPallet(5, Edit{Bulkhead: true}))
	require.Equal(t, []int{5}, g.Bulkheads())

	require.NoError(t, g.EditPallet(5, Edit{Bulkhead: false}))
	require.Empty(t, g.Bulkheads())
}

func TestGrid_LoadFromNilFallsBackToDefaults(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.EditPallet(1, Edit{Type: TypeFrozen, Bulkhead: true}))

	g.LoadFrom(nil, nil)
	require.Equal(t, NewGrid().Pallets(), g.Pallets())
	require.Empty(t, g.Bulkheads())
}

func TestGrid_LoadFromShortArrayFillsByPosition(t *testing.T) {
	g := NewGrid()
	g.LoadFrom([]Pallet{
		{Pos: 1, Type: TypeFrozen, Store: "12"},
		{Pos: 16, Row: 9, Col: 9, Type: TypeEggs},
		{Type: TypeBread}, // no position: slice index 2 -> pos 3
		{Pos: 44, Type: TypeDP},
	}, []int{16, 0, 16, 31, 2})

	pallets := g.Pallets()
	require.Len(t, pallets, PalletCount)
	require.Equal(t, TypeFrozen, pallets[0].Type)
	require.Equal(t, "12", pallets[0].Store)
	require.Equal(t, TypeEggs, pallets[15].Type)
	require.Equal(t, 2, pallets[15].Row)
	require.Equal(t, 1, pallets[15].Col)
	require.Equal(t, TypeBread, pallets[2].Type)
	require.True(t, pallets[29].Empty())
	require.Equal(t, []int{16, 2}, g.Bulkheads())

	totals := ComputeTotals(pallets)
	require.Equal(t, 3, totals.Total)
	require.Equal(t, 0, totals.DP)
}

func TestGrid_PalletsReturnsCopy(t *testing.T) {
	g := NewGrid()
	pallets := g.Pallets()
	pallets[0].Type = TypeFrozen

	p, _ := g.Pallet(1)
	require.Equal(t, TypeNone, p.Type)

	rows := g.Rows()
	require.Len(t, rows, 2)
	require.Len(t, rows[0], RowLength)
	require.Equal(t, 16, rows[1][0].Pos)
}
