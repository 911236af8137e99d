package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		want    int
		wantErr bool
	}{
		{name: "trailing slash", ref: "https://pokeapi.co/api/v2/pokemon/25/", want: 25},
		{name: "no trailing slash", ref: "https://pokeapi.co/api/v2/pokemon/4", want: 4},
		{name: "bare number", ref: "150", want: 150},
		{name: "double slash", ref: "https://pokeapi.co/api/v2/pokemon/7//", want: 7},
		{name: "name segment", ref: "https://pokeapi.co/api/v2/pokemon/pikachu/", wantErr: true},
		{name: "empty", ref: "", wantErr: true},
		{name: "only slashes", ref: "///", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseID(tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestArtworkURL(t *testing.T) {
	assert.Equal(t,
		"https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/25.png",
		ArtworkURL(25))
}

func TestStatPercent(t *testing.T) {
	assert.InDelta(t, 50.0, Stat{Value: 100}.Percent(), 1e-9)
	assert.InDelta(t, 125.0, Stat{Value: 250}.Percent(), 1e-9, "values over the ceiling are not clamped")
}

func TestNormalize_EmptyPayload(t *testing.T) {
	d := normalize(&detailPayload{ID: 3, Name: "venusaur"})
	assert.Equal(t, 3, d.ID)
	assert.Empty(t, d.ImageURL)
	assert.NotNil(t, d.Categories)
	assert.NotNil(t, d.Stats)
	assert.NotNil(t, d.Abilities)
}
