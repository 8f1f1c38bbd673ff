package regress

import (
	"fmt"
	"math"
	"strings"
)

const reportWidth = 98

// RenderReport renders the fixed-layout text summary of a fitted model. The
// layout follows the classical OLS summary table: header block with fit
// quality, then one row per term with estimate, standard error, t statistic,
// two-sided p-value, and the 95% confidence interval.
func RenderReport(fit *FitResult) string {
	var b strings.Builder

	line := strings.Repeat("=", reportWidth)
	thin := strings.Repeat("-", reportWidth)

	b.WriteString(center("OLS Regression Results", reportWidth))
	b.WriteByte('\n')
	b.WriteString(line)
	b.WriteByte('\n')

	left := []string{
		fmt.Sprintf("Dep. Variable: %s", fit.DepVar),
		"Model: OLS",
		"Method: Least Squares",
		fmt.Sprintf("No. Observations: %d", fit.N),
		fmt.Sprintf("Df Residuals: %d", fit.DFResid),
		fmt.Sprintf("Df Model: %d", fit.DFModel),
	}
	right := []string{
		fmt.Sprintf("R-squared: %.4f", fit.R2),
		fmt.Sprintf("Adj. R-squared: %.4f", fit.AdjR2),
		fmt.Sprintf("F-statistic: %s", formatStat(fit.FStat)),
		fmt.Sprintf("Prob (F-statistic): %s", formatPValue(fit.FPValue)),
		"Covariance Type: nonrobust",
		"",
	}
	for i := range left {
		b.WriteString(fmt.Sprintf("%-*s%*s\n", reportWidth/2, left[i], reportWidth-reportWidth/2, right[i]))
	}

	b.WriteString(line)
	b.WriteByte('\n')
	b.WriteString(fmt.Sprintf("%-26s%12s%12s%12s%12s%12s%12s\n",
		"", "coef", "std err", "t", "P>|t|", "[0.025", "0.975]"))
	b.WriteString(thin)
	b.WriteByte('\n')

	for _, term := range fit.Terms {
		b.WriteString(fmt.Sprintf("%-26s%12.4f%12.4f%12.3f%12.3f%12.4f%12.4f\n",
			term.Name, term.Coef, term.StdErr, term.TStat, term.PValue, term.CILow, term.CIHigh))
	}

	b.WriteString(line)
	b.WriteByte('\n')

	return b.String()
}

// formatStat renders a test statistic, keeping infinities readable.
func formatStat(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.4g", v)
}

// formatPValue renders a p-value in the compact scientific form the summary
// table uses.
func formatPValue(p float64) string {
	if p < 1e-4 && p > 0 {
		return fmt.Sprintf("%.2e", p)
	}
	return fmt.Sprintf("%.4f", p)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
