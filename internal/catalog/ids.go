package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// PlaceholderImage is shown when a detail record has no artwork.
const PlaceholderImage = "/placeholder.png"

const artworkURLFormat = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"

// ParseID extracts the integer ID from the final path segment of a reference
// URL, e.g. ".../pokemon/25/" -> 25.
func ParseID(ref string) (int, error) {
	segments := strings.FieldsFunc(ref, func(r rune) bool { return r == '/' })
	if len(segments) == 0 {
		return 0, fmt.Errorf("parse id from %q: empty reference", ref)
	}
	id, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil {
		return 0, fmt.Errorf("parse id from %q: %w", ref, err)
	}
	return id, nil
}

// ArtworkURL returns the official artwork URL for id without a detail fetch.
func ArtworkURL(id int) string {
	return fmt.Sprintf(artworkURLFormat, id)
}
