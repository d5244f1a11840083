package printlayout

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPageSize(t *testing.T) {
	require.InDelta(t, 646.0, PageWidthPx, 1e-9)
	require.InDelta(t, 836.0, PageHeightPx, 1e-9)
}

func TestScale(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
		want float64
	}{
		{"fits already", 600, 800, 1},
		{"twice as wide", 1292, 836, 0.5},
		{"height bound", 646, 1672, 0.5},
		{"both over, width tighter", 2584, 1672, 0.25},
		{"zero width", 0, 500, 1},
		{"negative height", 500, -1, 1},
		{"nan", math.NaN(), 500, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, Scale(tt.w, tt.h), 1e-9)
		})
	}
}

func TestWrapIsIdempotent(t *testing.T) {
	w := NewWrapper(MeasureFunc(func() (float64, float64) { return 100, 100 }))

	require.True(t, w.Wrap())
	require.False(t, w.Wrap())
	w.Apply()
	require.False(t, w.Wrap())
}

func TestApplyWithoutContent(t *testing.T) {
	w := NewWrapper(nil)
	require.Equal(t, 1.0, w.Apply())
	require.False(t, w.Wrap())
	require.Empty(t, w.Style())
}

func TestPrintAppliesThenResets(t *testing.T) {
	w := NewWrapper(MeasureFunc(func() (float64, float64) { return 1292, 836 }))
	w.ResetDelay = 20 * time.Millisecond

	var during string
	err := w.Print(func() error {
		during = w.Style()
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, "--print-scale: 0.5", during)

	require.Eventually(t, func() bool {
		_, ok := w.Current()
		return !ok
	}, time.Second, 5*time.Millisecond)
	require.Empty(t, w.Style())
}

func TestPrintReturnsTriggerError(t *testing.T) {
	boom := errors.New("boom")
	w := NewWrapper(nil)
	require.ErrorIs(t, w.Print(func() error { return boom }), boom)
}
