package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Vladimir PUTIN", "vladimir putin"},
		{"strips accents", "Gérard Müller", "gerard muller"},
		{"strips punctuation", "O'Brien, John-Paul", "o brien john paul"},
		{"collapses whitespace", "  ACME   Corp  ", "acme corp"},
		{"empty", "", ""},
		{"only punctuation", "---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Fold(tt.input))
		})
	}
}

func TestIdentifier(t *testing.T) {
	assert.Equal(t, "RU84BA99810", Identifier("ru-84 BA/99810"))
	assert.Equal(t, "RU84BA99810", Identifier("RU84BA99810"))
	assert.Equal(t, "", Identifier(" -/ "))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input     string
		ok        bool
		year      int
		precision Precision
	}{
		{"1952", true, 1952, PrecisionYear},
		{"1952-10", true, 1952, PrecisionMonth},
		{"1952-10-07", true, 1952, PrecisionDay},
		{"not-a-date", false, 0, 0},
		{"1952-13", false, 0, 0},
		{"52", false, 0, 0},
		{"", false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, ok := ParseDate(tt.input)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.year, d.Year)
				assert.Equal(t, tt.precision, d.Precision)
			}
		})
	}
}

func TestEqualAtSharedPrecision(t *testing.T) {
	yearOnly, _ := ParseDate("1952")
	full, _ := ParseDate("1952-10-07")
	otherDay, _ := ParseDate("1952-10-08")

	shared := SharedPrecision(yearOnly, full)
	assert.Equal(t, PrecisionYear, shared)
	assert.True(t, EqualAt(yearOnly, full, shared))

	assert.False(t, EqualAt(full, otherDay, SharedPrecision(full, otherDay)))
	assert.True(t, EqualAt(full, otherDay, PrecisionMonth))
}

func TestTokenOverlap(t *testing.T) {
	assert.Equal(t, 1.0, TokenOverlap([]string{"ru"}, []string{"ru"}))
	assert.Equal(t, 0.0, TokenOverlap([]string{"ru"}, []string{"us"}))
	assert.Equal(t, 0.0, TokenOverlap(nil, []string{"us"}))
	assert.InDelta(t, 1.0/3.0, TokenOverlap([]string{"ru", "cy"}, []string{"ru", "us"}), 1e-9)
	// Duplicates collapse: overlap is set-wise.
	assert.Equal(t, 1.0, TokenOverlap([]string{"ru", "ru"}, []string{"ru"}))
}
