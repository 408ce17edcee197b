package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokensExpandAbbreviations(t *testing.T) {
	assert.Equal(t,
		[]string{"12", "tverskaya", "street", "moscow"},
		Tokens("12 Tverskaya St., Moscow"))
}

func TestOverlap(t *testing.T) {
	assert.Equal(t, 1.0, Overlap("12 Tverskaya St, Moscow", "12 Tverskaya Street Moscow"))
	assert.Equal(t, 0.0, Overlap("12 Tverskaya St, Moscow", "Unter den Linden 5, Berlin"))
	assert.Equal(t, 0.0, Overlap("", "anything"))

	partial := Overlap("12 Main Street Springfield", "14 Main Street Springfield")
	assert.Greater(t, partial, 0.3)
	assert.Less(t, partial, 1.0)
}
