package registers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCellDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2026-01-05", "2026-01-05", true},
		{"2026/01/05", "2026-01-05", true},
		{"01/05/2026", "2026-01-05", true},
		{"1/5/2026", "2026-01-05", true},
		{"05-Jan-2026", "2026-01-05", true},
		{"Jan 5, 2026", "2026-01-05", true},
		{"  2026-01-05  ", "2026-01-05", true},
		{"45000", "2023-03-15", true}, // Excel serial
		{"", "", false},
		{"BUYING", "", false},
		{"99999999", "", false}, // serial out of plausible range
	}

	for _, tc := range cases {
		got, ok := ParseCellDate(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseCellFloat(t *testing.T) {
	assert.Equal(t, 1234.56, ParseCellFloat("1,234.56"))
	assert.Equal(t, 2000.0, ParseCellFloat("\"2,000\""))
	assert.Equal(t, 150000.0, ParseCellFloat(" 150 000 "))
	assert.Equal(t, -42.5, ParseCellFloat("-42.5"))
	assert.Equal(t, 0.0, ParseCellFloat(""))
	assert.Equal(t, 0.0, ParseCellFloat("n/a"))
}
