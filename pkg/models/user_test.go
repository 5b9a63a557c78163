package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func locPtr(s string) *string {
	return &s
}

func TestLocationList(t *testing.T) {
	tests := []struct {
		name      string
		locations *string
		expected  []string
	}{
		{
			name:      "nil locations yield empty list",
			locations: nil,
			expected:  []string{},
		},
		{
			name:      "plain comma separated values",
			locations: locPtr("Lager A,Lager B"),
			expected:  []string{"Lager A", "Lager B"},
		},
		{
			name:      "whitespace around entries is trimmed",
			locations: locPtr(" Lager A , Lager B "),
			expected:  []string{"Lager A", "Lager B"},
		},
		{
			name:      "empty entries are dropped",
			locations: locPtr("Lager A,,Lager B,"),
			expected:  []string{"Lager A", "Lager B"},
		},
		{
			name:      "only separators yield empty list",
			locations: locPtr(" , ,"),
			expected:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := User{Locations: tt.locations}
			got := user.LocationList()
			assert.Equal(t, tt.expected, got)
			assert.NotNil(t, got)
		})
	}
}

func TestDTOCarriesNormalizedLocations(t *testing.T) {
	user := User{
		ID:        1,
		Username:  "mmeier",
		Locations: locPtr("Lager A, Lager B"),
	}

	dto := user.DTO()
	assert.Equal(t, []string{"Lager A", "Lager B"}, dto.Locations)

	settingsDTO := user.SettingsDTO()
	assert.Equal(t, "Lager A, Lager B", *settingsDTO.Locations)
}
