package catalog

// StatCeiling is the stat value drawn as a full bar. Larger values overflow
// the scale; they are not clamped.
const StatCeiling = 200

// IndexEntry is one row of the remote index.
type IndexEntry struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ID returns the item ID encoded in the entry's URL.
func (e IndexEntry) ID() (int, error) { return ParseID(e.URL) }

// Stat is one named base stat.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Percent returns Value as a percentage of StatCeiling.
func (s Stat) Percent() float64 {
	return float64(s.Value) / StatCeiling * 100
}

// Detail is the normalised full record for one item.
type Detail struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	ImageURL   string   `json:"image_url,omitempty"`
	Categories []string `json:"categories"`
	Stats      []Stat   `json:"stats"`
	Abilities  []string `json:"abilities"`
}

// Image returns the artwork URL, or PlaceholderImage when there is none.
func (d *Detail) Image() string {
	if d.ImageURL == "" {
		return PlaceholderImage
	}
	return d.ImageURL
}

type namedRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// listPayload is the shape of both the paged index and the type list.
type listPayload struct {
	Count   int        `json:"count"`
	Next    *string    `json:"next"`
	Results []namedRef `json:"results"`
}

type detailPayload struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Sprites struct {
		Other map[string]struct {
			FrontDefault *string `json:"front_default"`
		} `json:"other"`
	} `json:"sprites"`
	Types []struct {
		Slot int      `json:"slot"`
		Type namedRef `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int      `json:"base_stat"`
		Stat     namedRef `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability namedRef `json:"ability"`
	} `json:"abilities"`
}

// normalize is the single place that maps a detail payload onto Detail,
// whichever path (ID or index URL) produced it.
func normalize(p *detailPayload) *Detail {
	d := &Detail{
		ID:         p.ID,
		Name:       p.Name,
		Categories: make([]string, 0, len(p.Types)),
		Stats:      make([]Stat, 0, len(p.Stats)),
		Abilities:  make([]string, 0, len(p.Abilities)),
	}
	if art, ok := p.Sprites.Other["official-artwork"]; ok && art.FrontDefault != nil {
		d.ImageURL = *art.FrontDefault
	}
	for _, t := range p.Types {
		d.Categories = append(d.Categories, t.Type.Name)
	}
	for _, s := range p.Stats {
		d.Stats = append(d.Stats, Stat{Name: s.Stat.Name, Value: s.BaseStat})
	}
	for _, a := range p.Abilities {
		d.Abilities = append(d.Abilities, a.Ability.Name)
	}
	return d
}
