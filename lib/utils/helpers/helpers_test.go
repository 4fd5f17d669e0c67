package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFmtHHMM(t *testing.T) {
	require.Equal(t, "00:00", FmtHHMM(0))
	require.Equal(t, "01:30", FmtHHMM(90))
	require.Equal(t, "03:30", FmtHHMM(210))
	require.Equal(t, "10:05", FmtHHMM(605))
	require.Equal(t, "00:00", FmtHHMM(-15))
}

func TestParseHHMM(t *testing.T) {
	cases := map[string]int{
		"90":    90,
		"1:30":  90,
		"1h30":  90,
		"2h":    120,
		"1.5":   90,
		"1,5":   90,
		"0":     0,
		"":      0,
		" 2:15 ": 135,
		"abc":   0,
	}
	for in, want := range cases {
		require.Equal(t, want, ParseHHMM(in), "вход: %q", in)
	}
}
