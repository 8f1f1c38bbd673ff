package regress

import (
	"fmt"
	"log/slog"
)

// Model contract: score_ratio regressed on price and playtime.
const (
	DepVar = "score_ratio"

	// MinObservations is the sample-size guardrail. Below roughly 30
	// observations the normality assumption behind the significance tests
	// does not hold.
	MinObservations = 30
)

// Predictors are the exogenous columns of the model, in report order.
var Predictors = []string{"price", "average_playtime_forever"}

// RequiredColumns are the columns a frame must carry for the model.
var RequiredColumns = []string{DepVar, "price", "average_playtime_forever"}

// Kind discriminates the possible outcomes of a regression call.
type Kind int

const (
	// KindReport is a successful fit with a rendered summary.
	KindReport Kind = iota
	// KindSchemaError means required columns were absent.
	KindSchemaError
	// KindSampleTooSmall means fewer than MinObservations valid rows remained.
	KindSampleTooSmall
	// KindComputationError means the fit itself failed numerically.
	KindComputationError
)

// String returns the metric label of the kind.
func (k Kind) String() string {
	switch k {
	case KindReport:
		return "report"
	case KindSchemaError:
		return "schema_error"
	case KindSampleTooSmall:
		return "sample_too_small"
	case KindComputationError:
		return "computation_error"
	default:
		return "unknown"
	}
}

// Result is the tagged outcome of a regression call. Text is always set;
// Fit only for KindReport.
type Result struct {
	Kind Kind
	Text string
	Fit  *FitResult
}

// Analyze validates the frame, applies listwise deletion over the required
// columns, enforces the sample-size guardrail, fits the OLS model, and
// renders the report. Every failure mode is a returned Result, never a
// panic or error.
func Analyze(frame *Frame) Result {
	if missing := frame.Missing(RequiredColumns...); len(missing) > 0 {
		slog.Warn("regression rejected, schema insufficient", slog.Any("missing", missing))
		return Result{
			Kind: KindSchemaError,
			Text: fmt.Sprintf("regression aborted: dataset is missing required columns %v (need score_ratio, price, average_playtime_forever)", missing),
		}
	}

	clean, err := frame.Select(RequiredColumns...)
	if err != nil {
		return Result{
			Kind: KindSchemaError,
			Text: fmt.Sprintf("regression aborted: %v", err),
		}
	}

	if clean.Len() < MinObservations {
		slog.Warn("regression rejected, sample too small", slog.Int("rows", clean.Len()))
		return Result{
			Kind: KindSampleTooSmall,
			Text: fmt.Sprintf("dataset too small for statistically valid inference (n=%d, minimum %d)", clean.Len(), MinObservations),
		}
	}

	cols := make(map[string][]float64, len(Predictors))
	for _, p := range Predictors {
		cols[p] = clean.Column(p)
	}
	fit, err := fitOLS(DepVar, clean.Column(DepVar), Predictors, cols)
	if err != nil {
		slog.Error("regression fit failed", slog.String("error", err.Error()))
		return Result{
			Kind: KindComputationError,
			Text: fmt.Sprintf("computation error in OLS model: %v", err),
		}
	}

	slog.Info("regression model fitted",
		slog.Int("rows", fit.N),
		slog.Float64("r_squared", fit.R2))

	return Result{
		Kind: KindReport,
		Text: RenderReport(fit),
		Fit:  fit,
	}
}

// PerformLinearRegression is the text-only form of Analyze for callers that
// treat all three outcome kinds as one string, distinguishing them by the
// fixed marker substrings in the guardrail messages.
func PerformLinearRegression(frame *Frame) string {
	return Analyze(frame).Text
}
