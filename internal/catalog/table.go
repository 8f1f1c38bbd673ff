package catalog

import (
	"steamlens/internal/regress"
)

// Table is the canonical analysis table: one row per raw record. Once
// returned by the loader it is treated as an immutable snapshot; Filter
// returns new tables sharing the underlying rows.
type Table struct {
	Games  []Game
	Source string
}

// Len returns the row count.
func (t *Table) Len() int {
	return len(t.Games)
}

// Filter returns a new table containing the rows for which keep returns
// true. The receiver is not modified.
func (t *Table) Filter(keep func(Game) bool) *Table {
	out := &Table{Source: t.Source}
	for _, g := range t.Games {
		if keep(g) {
			out.Games = append(out.Games, g)
		}
	}
	return out
}

// Frame builds the numeric column view used by the regression engine. All
// numeric columns are included; the engine selects the ones its model needs.
func (t *Table) Frame() *regress.Frame {
	n := len(t.Games)
	price := make([]float64, n)
	positive := make([]float64, n)
	negative := make([]float64, n)
	playtime := make([]float64, n)
	totalReviews := make([]float64, n)
	scoreRatio := make([]float64, n)
	year := make([]float64, n)

	for i, g := range t.Games {
		price[i] = g.Price
		positive[i] = g.Positive
		negative[i] = g.Negative
		playtime[i] = g.AvgPlaytimeForever
		totalReviews[i] = g.TotalReviews
		scoreRatio[i] = g.ScoreRatio
		year[i] = g.ReleaseYear()
	}

	f := regress.NewFrame()
	f.MustAddColumn("price", price)
	f.MustAddColumn("positive", positive)
	f.MustAddColumn("negative", negative)
	f.MustAddColumn("average_playtime_forever", playtime)
	f.MustAddColumn("total_reviews", totalReviews)
	f.MustAddColumn("score_ratio", scoreRatio)
	f.MustAddColumn("year", year)
	return f
}
