package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchlist-screener/internal/phonetics"
	"github.com/watchlist-screener/internal/schema"
)

// vals builds a single-property value map, nil when no values are given so
// absence reads the same as an unpopulated entity.
func vals(prop string, values ...string) map[string][]string {
	if len(values) == 0 {
		return nil
	}
	return map[string][]string{prop: values}
}

func TestNameExactAndFuzzy(t *testing.T) {
	ex := Name(phonetics.New())

	exact := ex.Compare(vals("name", "Vladimir Putin"), vals("name", "VLADIMIR PUTIN"))
	require.True(t, exact.Applicable)
	assert.Equal(t, 1.0, exact.Score, "case folding makes these identical")

	fuzzy := ex.Compare(vals("name", "Vladimir Putin"), vals("name", "Vladimir Putinov"))
	require.True(t, fuzzy.Applicable)
	assert.Greater(t, fuzzy.Score, 0.7)
	assert.Less(t, fuzzy.Score, 1.0)

	miss := ex.Compare(vals("name", "Vladimir Putin"), vals("name", "Angela Merkel"))
	assert.Less(t, miss.Score, 0.6)
}

func TestNameBestAliasWins(t *testing.T) {
	ex := Name(phonetics.New())

	// One perfect alias among weak ones: maximum wins, no dilution.
	s := ex.Compare(
		vals("name", "Vladimir Putin"),
		vals("alias", "Some Other Person", "Vladimir Putin", "Unrelated Alias"),
	)
	assert.Equal(t, 1.0, s.Score)
}

func TestNameNotApplicable(t *testing.T) {
	ex := Name(phonetics.New())
	s := ex.Compare(nil, vals("name", "Vladimir Putin"))
	assert.False(t, s.Applicable)
	s = ex.Compare(vals("name", "---"), vals("name", "Vladimir Putin"))
	assert.False(t, s.Applicable, "values that fold to empty count as absent")
}

func TestIdentifier(t *testing.T) {
	ex := Identifier()

	hit := ex.Compare(vals("idNumber", "84BA99810"), vals("idNumber", "84-ba-99810"))
	require.True(t, hit.Applicable)
	assert.Equal(t, 1.0, hit.Score, "normalization strips punctuation and case")

	miss := ex.Compare(vals("idNumber", "84BA99810"), vals("idNumber", "99999999"))
	require.True(t, miss.Applicable)
	assert.Equal(t, 0.0, miss.Score)

	absent := ex.Compare(vals("idNumber", "84BA99810"), nil)
	assert.False(t, absent.Applicable, "absence is not a mismatch")
}

func TestIdentifierTypeScoped(t *testing.T) {
	ex := Identifier()

	// Equal strings under different identifier types never count as a hit.
	cross := ex.Compare(vals("taxNumber", "84BA99810"), vals("passportNumber", "84BA99810"))
	assert.False(t, cross.Applicable, "no identifier type populated on both sides")

	// A conflict within a shared type stays a mismatch even when another
	// type on the candidate carries the same string.
	miss := ex.Compare(
		map[string][]string{"taxNumber": {"84BA99810"}},
		map[string][]string{"taxNumber": {"11111111"}, "passportNumber": {"84BA99810"}},
	)
	require.True(t, miss.Applicable)
	assert.Equal(t, 0.0, miss.Score)
}

func TestBirthDate(t *testing.T) {
	ex := BirthDate(0.35)

	tests := []struct {
		name       string
		q, c       []string
		applicable bool
		score      float64
	}{
		{"exact at shared year precision", []string{"1952"}, []string{"1952-10-07"}, true, 1.0},
		{"exact full date", []string{"1952-10-07"}, []string{"1952-10-07"}, true, 1.0},
		{"one year off", []string{"1952"}, []string{"1953"}, true, 0.65},
		{"two years off", []string{"1952"}, []string{"1954"}, true, 0.3},
		{"far off", []string{"1952"}, []string{"1965"}, true, 0.0},
		{"absent side", []string{"1952"}, nil, false, 0},
		{"malformed degrades to absent", []string{"1952"}, []string{"unknown"}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := ex.Compare(vals("birthDate", tt.q...), vals("birthDate", tt.c...))
			assert.Equal(t, tt.applicable, s.Applicable)
			if tt.applicable {
				assert.InDelta(t, tt.score, s.Score, 1e-9)
			}
		})
	}
}

func TestBirthDateSubYearMismatch(t *testing.T) {
	ex := BirthDate(0.35)
	// Same year, different month: worse than exact, better than a year off.
	s := ex.Compare(vals("birthDate", "1952-10"), vals("birthDate", "1952-03"))
	require.True(t, s.Applicable)
	assert.Less(t, s.Score, 1.0)
	assert.Greater(t, s.Score, 0.65)
}

func TestCountryOverlap(t *testing.T) {
	ex := Country()

	full := ex.Compare(vals("country", "ru"), vals("country", "RU"))
	require.True(t, full.Applicable)
	assert.Equal(t, 1.0, full.Score)

	partial := ex.Compare(vals("country", "ru", "cy"), vals("country", "ru", "us"))
	assert.InDelta(t, 1.0/3.0, partial.Score, 1e-9)

	empty := ex.Compare(nil, vals("country", "ru"))
	assert.False(t, empty.Applicable)
}

func TestProgramOverlap(t *testing.T) {
	ex := Program()

	full := ex.Compare(vals("program", "US-SDN"), vals("program", "us-sdn"))
	require.True(t, full.Applicable)
	assert.Equal(t, 1.0, full.Score)

	partial := ex.Compare(vals("program", "US-SDN", "EU-FSF"), vals("program", "US-SDN"))
	assert.InDelta(t, 0.5, partial.Score, 1e-9)

	empty := ex.Compare(nil, vals("program", "US-SDN"))
	assert.False(t, empty.Applicable)
}

func TestSchemaGate(t *testing.T) {
	reg := schema.Builtin()

	ok, err := SchemaGate(reg, "Person", "LegalEntity")
	require.NoError(t, err)
	assert.Equal(t, 1.0, ok.Score)

	blocked, err := SchemaGate(reg, "Person", "Vessel")
	require.NoError(t, err)
	assert.Equal(t, 0.0, blocked.Score)

	_, err = SchemaGate(reg, "Person", "Spaceship")
	assert.Error(t, err)
}
