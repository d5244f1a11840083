package form

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"warehouse/loadmap/internal/loadmap"
)

var fixedNow = time.Date(2026, 10, 19, 15, 4, 5, 0, time.UTC)

func fullRecord() *loadmap.LoadMap {
	return &loadmap.LoadMap{
		ID: 42,
		Fields: loadmap.Fields{
			Title:             "Run 12 - Monday",
			RunNumber:         "12",
			TrailerNumber:     "T-4471",
			Door:              "7",
			FuelLevel:         "3/4",
			LoadedTemp:        "-18",
			LoaderName:        "Sam",
			DriverName:        "Alex",
			LoadDate:          "2026-10-18",
			WolOlpnCount:      14,
			PlbsLoaded:        3,
			PlbsCreated:       2,
			DprRebuilds:       1,
			DprRewraps:        4,
			DprConsolidations: 5,
			LoaderNotes:       "  door seal replaced\n",
			DriverNotes:       "call store 12 on arrival",
			SanitaryQ1:        loadmap.AnswerYes,
			SanitaryQ2:        loadmap.AnswerNo,
			SanitaryQ3:        loadmap.AnswerUnset,
			SanitaryQ4:        loadmap.AnswerYes,
			Stops: []loadmap.Stop{
				{Stop: 1, Loader: "Sam", Driver: "Alex"},
				{Stop: 2, Loader: "Kim", Driver: ""},
				{Stop: 3},
				{Stop: 4, Loader: "", Driver: "Lee"},
			},
		},
	}
}

func TestPopulate_NewRecordDefaults(t *testing.T) {
	v := Populate(nil, fixedNow)

	require.Equal(t, "10/19/2026, 3:04:05 PM", v.Get(FieldTitle))
	require.Equal(t, "2026-10-19", v.Get(FieldDate))
	for _, name := range []string{FieldWolOlpnCount, FieldPlbsLoaded, FieldPlbsCreated, FieldDprRebuilds, FieldDprRewraps, FieldDprConsolidations} {
		require.Equal(t, "0", v.Get(name), name)
	}
	for q := 1; q <= 4; q++ {
		require.Equal(t, "", v.Get(SanitaryField(q)))
	}
	for n := 1; n <= loadmap.StopRows; n++ {
		require.Equal(t, "", v.Get(StopLoaderField(n)))
		require.Equal(t, "", v.Get(StopDriverField(n)))
	}

	f := Collect(v)
	for _, a := range f.Sanitary() {
		require.Equal(t, loadmap.AnswerUnset, *a)
	}
}

func TestPopulate_SanitaryLabels(t *testing.T) {
	v := Populate(fullRecord(), fixedNow)
	require.Equal(t, "Yes", v.Get("san_q1"))
	require.Equal(t, "No", v.Get("san_q2"))
	require.Equal(t, "", v.Get("san_q3"))
	require.Equal(t, "Yes", v.Get("san_q4"))
}

func TestCollect_RoundTrip(t *testing.T) {
	rec := fullRecord()
	got := Collect(Populate(rec, fixedNow))
	require.Equal(t, rec.Fields, got)
}

func TestCollect_RoundTripAbsentFieldsTakeDefaults(t *testing.T) {
	rec := &loadmap.LoadMap{Fields: loadmap.Fields{RunNumber: "9"}}
	got := Collect(Populate(rec, fixedNow))

	require.Equal(t, DefaultTitle, got.Title)
	require.Equal(t, "9", got.RunNumber)
	require.Equal(t, "2026-10-19", got.LoadDate)
	require.Equal(t, 0, got.WolOlpnCount)
	require.Len(t, got.Stops, loadmap.StopRows)
	for i, s := range got.Stops {
		require.Equal(t, loadmap.Stop{Stop: i + 1}, s)
	}
}

func TestCollect_CoercesAndTrims(t *testing.T) {
	v := url.Values{}
	v.Set(FieldTitle, "   ")
	v.Set(FieldRunNumber, "  44  ")
	v.Set(FieldWolOlpnCount, "abc")
	v.Set(FieldPlbsLoaded, " 12 ")
	v.Set(FieldPlbsCreated, "3.9")
	v.Set(FieldDprRebuilds, "")
	v.Set(SanitaryField(1), "Yes")
	v.Set(SanitaryField(2), "No")
	v.Set(SanitaryField(3), "yes")
	v.Set(StopLoaderField(2), " Jo ")

	f := Collect(v)
	require.Equal(t, DefaultTitle, f.Title)
	require.Equal(t, "44", f.RunNumber)
	require.Equal(t, 0, f.WolOlpnCount)
	require.Equal(t, 12, f.PlbsLoaded)
	require.Equal(t, 3, f.PlbsCreated)
	require.Equal(t, 0, f.DprRebuilds)
	require.Equal(t, loadmap.AnswerYes, f.SanitaryQ1)
	require.Equal(t, loadmap.AnswerNo, f.SanitaryQ2)
	require.Equal(t, loadmap.AnswerUnset, f.SanitaryQ3)
	require.Equal(t, loadmap.AnswerUnset, f.SanitaryQ4)
	require.Equal(t, []loadmap.Stop{
		{Stop: 1},
		{Stop: 2, Loader: "Jo"},
		{Stop: 3},
		{Stop: 4},
	}, f.Stops)
}

func TestParseCount(t *testing.T) {
	cases := map[string]int{
		"":       0,
		"7":      7,
		"-2":     -2,
		"1e2":    100,
		"NaN":    0,
		"seven":  0,
		"1e300":  0,
		"-1e300": 0,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseCount(in), in)
	}
}
