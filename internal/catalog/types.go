package catalog

import (
	"encoding/json"
	"math"
	"sort"
	"time"
)

// TagKind identifies the shape of a TagField.
type TagKind int

const (
	// TagWeights is the mapping shape: tag name to vote weight.
	TagWeights TagKind = iota
	// TagNames is the list shape: bare tag names without weights.
	TagNames
)

// TagField is the tag collection of one game. The raw dataset stores tags as
// a mapping, a list, a stringified literal of either, or nothing at all;
// TagField is the tagged variant the ingestion boundary normalizes all of
// those into. The zero value behaves as an empty weight mapping.
type TagField struct {
	kind    TagKind
	weights map[string]float64
	names   []string
}

// TagsFromWeights creates a mapping-shaped TagField.
func TagsFromWeights(weights map[string]float64) TagField {
	return TagField{kind: TagWeights, weights: weights}
}

// TagsFromNames creates a list-shaped TagField. The list shape is preserved
// as-is downstream, not coerced to a mapping.
func TagsFromNames(names []string) TagField {
	if names == nil {
		names = []string{}
	}
	return TagField{kind: TagNames, names: names}
}

// Kind returns the shape of the field.
func (t TagField) Kind() TagKind {
	return t.kind
}

// Weights returns the weight mapping. Empty for list-shaped fields.
func (t TagField) Weights() map[string]float64 {
	if t.kind != TagWeights || t.weights == nil {
		return map[string]float64{}
	}
	return t.weights
}

// Len returns the number of tags regardless of shape.
func (t TagField) Len() int {
	if t.kind == TagNames {
		return len(t.names)
	}
	return len(t.weights)
}

// List flattens the field to a list of tag names: list-shaped fields are
// returned as-is, mapping keys are returned sorted.
func (t TagField) List() []string {
	if t.kind == TagNames {
		return t.names
	}
	names := make([]string, 0, len(t.weights))
	for name := range t.weights {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether the field contains the given tag name.
func (t TagField) Has(name string) bool {
	if t.kind == TagNames {
		for _, n := range t.names {
			if n == name {
				return true
			}
		}
		return false
	}
	_, ok := t.weights[name]
	return ok
}

// MarshalJSON renders the field in its original shape: an object for the
// mapping kind, an array for the list kind.
func (t TagField) MarshalJSON() ([]byte, error) {
	if t.kind == TagNames {
		return json.Marshal(t.names)
	}
	if t.weights == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t.weights)
}

// Game is one row of the canonical table. Numeric fields are imputed to 0
// when the raw value was absent or unparseable; ReleaseDate uses the zero
// time as the not-a-time sentinel.
type Game struct {
	AppID              string    `json:"app_id,omitempty"`
	Name               string    `json:"name"`
	ReleaseDate        time.Time `json:"release_date"`
	Price              float64   `json:"price"`
	Positive           float64   `json:"positive"`
	Negative           float64   `json:"negative"`
	AvgPlaytimeForever float64   `json:"average_playtime_forever"`
	TotalReviews       float64   `json:"total_reviews"`
	ScoreRatio         float64   `json:"score_ratio"`
	Genres             []string  `json:"genres"`
	Tags               TagField  `json:"tags"`
}

// HasReleaseDate reports whether the release date parsed to a real date.
func (g Game) HasReleaseDate() bool {
	return !g.ReleaseDate.IsZero()
}

// ReleaseYear returns the release year as a float, or NaN for the not-a-time
// sentinel. Extracting a sub-field from the sentinel yields a missing value,
// never an error.
func (g Game) ReleaseYear() float64 {
	if g.ReleaseDate.IsZero() {
		return math.NaN()
	}
	return float64(g.ReleaseDate.Year())
}

// HasGenre reports whether the game lists the given genre.
func (g Game) HasGenre(genre string) bool {
	for _, gn := range g.Genres {
		if gn == genre {
			return true
		}
	}
	return false
}
