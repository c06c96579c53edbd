package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountryFlag(t *testing.T) {
	assert.Equal(t, "🇫🇷", CountryFlag("FR"))
	assert.Equal(t, "🇫🇷", CountryFlag("fr"))
	assert.Equal(t, "🏳", CountryFlag("F1"))
	assert.Equal(t, "🏳", CountryFlag("FRA"))
	assert.LessOrEqual(t, len(CountryFlag("US")), 16)
}
