package scraper

import (
	"testing"

	"github.com/stretchr/testify/require"

	"moviehub/pkg/models"
)

func TestParseRuntimeMinutes(t *testing.T) {
	testCases := []struct {
		in       string
		expected *int
	}{
		{"2h 22m", intp(142)},
		{"45m", intp(45)},
		{"3h", intp(180)},
		{"1h 0m", intp(60)},
		{"0h 0m", nil},
		{"", nil},
		{"PG-13", nil},
		{"some text 1h 30m around", intp(90)},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.expected, parseRuntimeMinutes(tc.in))
		})
	}
}

func TestParseYear(t *testing.T) {
	require.Equal(t, intp(1994), parseYear("1994"))
	require.Equal(t, intp(2019), parseYear(" 2019 "))
	require.Nil(t, parseYear(""))
	require.Nil(t, parseYear("N/A"))
	require.Nil(t, parseYear("19 94"))
}

func TestParseRating(t *testing.T) {
	require.Equal(t, floatp(9.3), parseRating("9.3"))
	require.Equal(t, floatp(7.0), parseRating("7"))
	require.Nil(t, parseRating(""))
	require.Nil(t, parseRating("N/A"))
	require.Nil(t, parseRating("11.2"))
	require.Nil(t, parseRating("-1"))
}

func TestParseScore(t *testing.T) {
	require.Equal(t, intp(87), parseScore("87%"))
	require.Equal(t, intp(100), parseScore("100"))
	require.Equal(t, intp(0), parseScore("0%"))
	require.Nil(t, parseScore(""))
	require.Nil(t, parseScore("--"))
	require.Nil(t, parseScore("101%"))
}

func TestNormalizeCast(t *testing.T) {
	raw := []rawCastEntry{
		{Actor: "Tim Robbins", Character: "Andy Dufresne"},
		{Actor: "Morgan Freeman", Character: ""},
		{Actor: "", Character: "Warden Norton"},
		{Actor: "William Sadler", Character: "Heywood"},
		{Actor: "Clancy Brown", Character: "Captain Hadley"},
		{Actor: "Gil Bellows", Character: "Tommy"},
	}

	got := normalizeCast(raw, 5)
	require.Len(t, got, 5, "cast must be capped at the limit")
	require.Equal(t, models.CastMember{Actor: "Tim Robbins", Character: "Andy Dufresne"}, got[0])
	require.Equal(t, models.CastMember{Actor: "Morgan Freeman", Character: UnknownCredit}, got[1])
	require.Equal(t, models.CastMember{Actor: UnknownCredit, Character: "Warden Norton"}, got[2])

	require.Empty(t, normalizeCast(nil, 5))
}

func intp(n int) *int { return &n }

func floatp(f float64) *float64 { return &f }

func strp(s string) *string { return &s }
