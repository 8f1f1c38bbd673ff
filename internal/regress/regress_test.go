package regress

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticFrame builds n rows of perfectly behaved data: constant score,
// strictly increasing price and playtime.
func syntheticFrame(n int) *Frame {
	score := make([]float64, n)
	price := make([]float64, n)
	playtime := make([]float64, n)
	for i := 0; i < n; i++ {
		score[i] = 0.5
		price[i] = float64(i)
		playtime[i] = float64(100 + i*i)
	}
	f := NewFrame()
	f.MustAddColumn("score_ratio", score)
	f.MustAddColumn("price", price)
	f.MustAddColumn("average_playtime_forever", playtime)
	return f
}

func TestAnalyzeHappyPath(t *testing.T) {
	result := Analyze(syntheticFrame(50))

	require.Equal(t, KindReport, result.Kind)
	require.NotNil(t, result.Fit)

	assert.Contains(t, result.Text, "OLS Regression Results")
	assert.Contains(t, result.Text, "R-squared")
	assert.Contains(t, result.Text, "const")
	assert.Contains(t, result.Text, "price")
	assert.Contains(t, result.Text, "average_playtime_forever")
	assert.NotContains(t, result.Text, "NaN")

	assert.Equal(t, 50, result.Fit.N)
	assert.Equal(t, 2, result.Fit.DFModel)
	assert.Equal(t, 47, result.Fit.DFResid)
}

func TestAnalyzeSampleTooSmall(t *testing.T) {
	result := Analyze(syntheticFrame(2))

	assert.Equal(t, KindSampleTooSmall, result.Kind)
	assert.Nil(t, result.Fit)
	assert.Contains(t, result.Text, "too small")
	assert.Contains(t, result.Text, "n=2")
}

func TestAnalyzeSchemaInsufficient(t *testing.T) {
	f := NewFrame()
	f.MustAddColumn("score_ratio", []float64{0.5, 0.6})
	f.MustAddColumn("playtime", []float64{10, 20})

	result := Analyze(f)

	assert.Equal(t, KindSchemaError, result.Kind)
	assert.Contains(t, result.Text, "missing required columns")
	assert.Contains(t, result.Text, "price")
}

func TestAnalyzeListwiseDeletion(t *testing.T) {
	// 35 rows, 10 of them holding a NaN somewhere: only 25 complete rows
	// remain, which is below the guardrail.
	n := 35
	score := make([]float64, n)
	price := make([]float64, n)
	playtime := make([]float64, n)
	for i := 0; i < n; i++ {
		score[i] = 0.5 + 0.01*float64(i)
		price[i] = float64(i)
		playtime[i] = float64(i * 2)
	}
	for i := 0; i < 10; i++ {
		price[i] = math.NaN()
	}

	f := NewFrame()
	f.MustAddColumn("score_ratio", score)
	f.MustAddColumn("price", price)
	f.MustAddColumn("average_playtime_forever", playtime)

	result := Analyze(f)

	assert.Equal(t, KindSampleTooSmall, result.Kind)
	assert.Contains(t, result.Text, "n=25")
}

func TestAnalyzeCollinearPredictors(t *testing.T) {
	// Playtime is an exact linear function of price. The pseudo-inverse
	// solve still produces a report, with degrees of freedom based on the
	// effective rank of the design matrix.
	n := 40
	score := make([]float64, n)
	price := make([]float64, n)
	playtime := make([]float64, n)
	for i := 0; i < n; i++ {
		score[i] = 0.3 + 0.01*float64(i%7)
		price[i] = float64(i)
		playtime[i] = 2 * float64(i)
	}

	f := NewFrame()
	f.MustAddColumn("score_ratio", score)
	f.MustAddColumn("price", price)
	f.MustAddColumn("average_playtime_forever", playtime)

	result := Analyze(f)

	require.Equal(t, KindReport, result.Kind)
	assert.Equal(t, 2, result.Fit.Rank)
	assert.Equal(t, 1, result.Fit.DFModel)
	assert.Equal(t, 38, result.Fit.DFResid)
	assert.NotContains(t, result.Text, "NaN")
}

func TestFitOLSTooFewObservations(t *testing.T) {
	cols := map[string][]float64{
		"price":                    {1, 2, 3},
		"average_playtime_forever": {4, 5, 6},
	}
	_, err := fitOLS("score_ratio", []float64{0.1, 0.2, 0.3}, []string{"price", "average_playtime_forever"}, cols)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "observations")
}

func TestAnalyzeRecoversKnownCoefficients(t *testing.T) {
	// score = 0.2 + 0.01*price + 0.001*playtime, exactly. The closed-form
	// estimator must recover the generating coefficients.
	n := 60
	score := make([]float64, n)
	price := make([]float64, n)
	playtime := make([]float64, n)
	for i := 0; i < n; i++ {
		price[i] = float64(i % 20)
		playtime[i] = float64((i * 13) % 50)
		score[i] = 0.2 + 0.01*price[i] + 0.001*playtime[i]
	}

	f := NewFrame()
	f.MustAddColumn("score_ratio", score)
	f.MustAddColumn("price", price)
	f.MustAddColumn("average_playtime_forever", playtime)

	result := Analyze(f)
	require.Equal(t, KindReport, result.Kind)

	terms := result.Fit.Terms
	require.Len(t, terms, 3)
	assert.InDelta(t, 0.2, terms[0].Coef, 1e-6)
	assert.InDelta(t, 0.01, terms[1].Coef, 1e-6)
	assert.InDelta(t, 0.001, terms[2].Coef, 1e-6)
	assert.InDelta(t, 1.0, result.Fit.R2, 1e-6)
}

func TestAnalyzeDeterministic(t *testing.T) {
	f := syntheticFrame(45)
	first := Analyze(f)
	second := Analyze(f)

	assert.Equal(t, first.Text, second.Text)
}

func TestPerformLinearRegression(t *testing.T) {
	text := PerformLinearRegression(syntheticFrame(50))
	assert.Contains(t, text, "OLS Regression Results")

	text = PerformLinearRegression(syntheticFrame(3))
	assert.Contains(t, text, "too small")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "report", KindReport.String())
	assert.Equal(t, "schema_error", KindSchemaError.String())
	assert.Equal(t, "sample_too_small", KindSampleTooSmall.String())
	assert.Equal(t, "computation_error", KindComputationError.String())
}

func TestRenderReportLayout(t *testing.T) {
	result := Analyze(syntheticFrame(50))
	require.Equal(t, KindReport, result.Kind)

	lines := strings.Split(result.Text, "\n")
	require.Greater(t, len(lines), 10)
	assert.Contains(t, lines[0], "OLS Regression Results")

	// One row per term in declared order: const, price, playtime.
	var termLines []string
	for _, line := range lines {
		if strings.HasPrefix(line, "const") ||
			strings.HasPrefix(line, "price") ||
			strings.HasPrefix(line, "average_playtime_forever") {
			termLines = append(termLines, line)
		}
	}
	require.Len(t, termLines, 3)
	assert.True(t, strings.HasPrefix(termLines[0], "const"))
}
