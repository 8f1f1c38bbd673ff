package catalog

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want float64
	}{
		{"float", 19.99, 19.99},
		{"numeric string", "19.99", 19.99},
		{"negative string passes through", "-5.00", -5.0},
		{"integer string", "42", 42},
		{"string with thousands separator", "1,234", 1234},
		{"garbage string", "free to play", math.NaN()},
		{"nil", nil, math.NaN()},
		{"collection", []interface{}{1.0}, math.NaN()},
		{"bool true", true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseNumber(tt.raw)
			if math.IsNaN(tt.want) {
				assert.True(t, math.IsNaN(got), "expected missing marker, got %v", got)
			} else {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		raw      interface{}
		wantZero bool
		wantYear int
	}{
		{"long form", "Oct 21, 2020", false, 2020},
		{"iso form", "2020-01-01", false, 2020},
		{"month year only", "Mar 2018", false, 2018},
		{"invalid date", "invalid-date", true, 0},
		{"empty string", "", true, 0},
		{"nil", nil, true, 0},
		{"numeric", 2020.0, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.raw)
			if tt.wantZero {
				assert.True(t, got.IsZero(), "expected not-a-time sentinel, got %v", got)
			} else {
				assert.Equal(t, tt.wantYear, got.Year())
			}
		})
	}
}

func TestReleaseYearFromSentinel(t *testing.T) {
	g := Game{ReleaseDate: time.Time{}}
	assert.True(t, math.IsNaN(g.ReleaseYear()), "year of the sentinel must be a missing marker")

	g.ReleaseDate = time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 2021.0, g.ReleaseYear())
}

func TestNormalizeTags(t *testing.T) {
	t.Run("mapping keeps weights", func(t *testing.T) {
		tags := NormalizeTags(map[string]interface{}{"Indie": 120.0, "Roguelike": 44.0})
		assert.Equal(t, TagWeights, tags.Kind())
		assert.Equal(t, map[string]float64{"Indie": 120, "Roguelike": 44}, tags.Weights())
	})

	t.Run("list keeps order", func(t *testing.T) {
		tags := NormalizeTags([]interface{}{"Indie", "Action"})
		assert.Equal(t, TagNames, tags.Kind())
		assert.Equal(t, []string{"Indie", "Action"}, tags.List())
	})

	t.Run("stringified mapping yields keys as list", func(t *testing.T) {
		tags := NormalizeTags(`{"Indie": 120, "Action": 44}`)
		assert.Equal(t, TagNames, tags.Kind())
		assert.Equal(t, []string{"Action", "Indie"}, tags.List())
	})

	t.Run("python style single quotes", func(t *testing.T) {
		tags := NormalizeTags(`['Indie', 'Action']`)
		assert.Equal(t, []string{"Indie", "Action"}, tags.List())
	})

	t.Run("unparseable string yields empty list", func(t *testing.T) {
		tags := NormalizeTags("not a literal")
		assert.Equal(t, TagNames, tags.Kind())
		assert.Empty(t, tags.List())
	})

	t.Run("null yields empty field", func(t *testing.T) {
		tags := NormalizeTags(nil)
		assert.Equal(t, 0, tags.Len())
		assert.NotNil(t, tags.List())
	})

	t.Run("scalar yields empty field", func(t *testing.T) {
		tags := NormalizeTags(7.0)
		assert.Equal(t, 0, tags.Len())
	})
}

func TestNormalizeGenres(t *testing.T) {
	assert.Equal(t, []string{"Action", "Indie"}, NormalizeGenres([]interface{}{"Action", "Indie"}))
	assert.Equal(t, []string{}, NormalizeGenres(nil))
	assert.Equal(t, []string{}, NormalizeGenres("Action"))
	assert.NotNil(t, NormalizeGenres(map[string]interface{}{}))
}

func TestTagFieldZeroValue(t *testing.T) {
	var tags TagField
	assert.Equal(t, TagWeights, tags.Kind())
	assert.Equal(t, 0, tags.Len())
	assert.NotNil(t, tags.Weights())
	assert.False(t, tags.Has("Indie"))

	data, err := tags.MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))
}
