package regress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Term holds the fitted statistics of one model term.
type Term struct {
	Name   string
	Coef   float64
	StdErr float64
	TStat  float64
	PValue float64
	CILow  float64
	CIHigh float64
}

// FitResult holds the statistics of one fitted OLS model.
type FitResult struct {
	DepVar  string
	Terms   []Term
	N       int
	Rank    int
	DFModel int
	DFResid int
	R2      float64
	AdjR2   float64
	FStat   float64
	FPValue float64
}

// fitOLS solves the least-squares normal equations for y against the named
// predictor columns plus an explicit intercept, and derives the inference
// statistics (standard errors, t and F tests, 95% confidence intervals).
//
// The solve goes through the SVD pseudo-inverse, so a rank-deficient design
// (collinear or constant predictors) still yields the minimum-norm estimate
// with degrees of freedom based on the effective rank, matching the
// classical summary-table behavior. The solve is closed-form and
// deterministic; only a genuine numerical failure surfaces as an error.
func fitOLS(depVar string, y []float64, predictors []string, cols map[string][]float64) (*FitResult, error) {
	n := len(y)
	k := len(predictors) + 1 // predictors plus intercept
	if n <= k {
		return nil, fmt.Errorf("need more than %d observations for %d model terms, have %d", k, k, n)
	}

	X := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
		for j, name := range predictors {
			X.Set(i, j+1, cols[name][i])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(X, mat.SVDThin); !ok {
		return nil, fmt.Errorf("SVD factorization of the design matrix failed")
	}

	singular := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// Effective rank: singular values below the numerical tolerance are
	// treated as zero, which is what makes collinear designs solvable.
	tol := float64(n) * 2.220446049250313e-16 * singular[0]
	rank := 0
	for _, s := range singular {
		if s > tol {
			rank++
		}
	}
	if rank == 0 {
		return nil, fmt.Errorf("design matrix has rank 0")
	}

	dfResid := n - rank
	dfModel := rank - 1
	if dfResid <= 0 {
		return nil, fmt.Errorf("no residual degrees of freedom (n=%d, rank=%d)", n, rank)
	}

	// beta = V * S^+ * U' y (minimum-norm least-squares solution).
	uty := make([]float64, k)
	for j := 0; j < k; j++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += u.At(i, j) * y[i]
		}
		uty[j] = sum
	}
	beta := make([]float64, k)
	for j := 0; j < k; j++ {
		var sum float64
		for c := 0; c < k; c++ {
			if singular[c] > tol {
				sum += v.At(j, c) * uty[c] / singular[c]
			}
		}
		beta[j] = sum
	}

	var rss, tss, yMean float64
	for i := 0; i < n; i++ {
		yMean += y[i]
	}
	yMean /= float64(n)
	for i := 0; i < n; i++ {
		fitted := beta[0]
		for j, name := range predictors {
			fitted += beta[j+1] * cols[name][i]
		}
		r := y[i] - fitted
		rss += r * r
		d := y[i] - yMean
		tss += d * d
	}

	sigma2 := rss / float64(dfResid)

	r2 := 0.0
	if tss > 0 {
		r2 = 1 - rss/tss
	}
	adjR2 := 0.0
	if tss > 0 && dfResid > 0 {
		adjR2 = 1 - (1-r2)*float64(n-1)/float64(dfResid)
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(dfResid)}
	tCrit := tDist.Quantile(0.975)

	names := append([]string{"const"}, predictors...)
	terms := make([]Term, k)
	for j := 0; j < k; j++ {
		// Var(beta_j) = sigma2 * [pinv(X'X)]_jj = sigma2 * sum_c V[j,c]^2 / s_c^2.
		var varScale float64
		for c := 0; c < k; c++ {
			if singular[c] > tol {
				varScale += v.At(j, c) * v.At(j, c) / (singular[c] * singular[c])
			}
		}
		se := math.Sqrt(sigma2 * varScale)

		term := Term{Name: names[j], Coef: beta[j], StdErr: se}
		if se > 0 {
			term.TStat = beta[j] / se
			term.PValue = 2 * (1 - tDist.CDF(math.Abs(term.TStat)))
			term.CILow = beta[j] - tCrit*se
			term.CIHigh = beta[j] + tCrit*se
		} else {
			// Zero residual variance: the estimate is exact.
			term.TStat = 0
			term.PValue = 1
			if beta[j] != 0 {
				term.PValue = 0
			}
			term.CILow = beta[j]
			term.CIHigh = beta[j]
		}
		terms[j] = term
	}

	fStat := 0.0
	fPValue := 1.0
	if dfModel > 0 && r2 > 0 && r2 < 1 {
		fStat = (r2 / float64(dfModel)) / ((1 - r2) / float64(dfResid))
		fDist := distuv.F{D1: float64(dfModel), D2: float64(dfResid)}
		fPValue = 1 - fDist.CDF(fStat)
	} else if r2 >= 1 {
		fStat = math.Inf(1)
		fPValue = 0
	}

	return &FitResult{
		DepVar:  depVar,
		Terms:   terms,
		N:       n,
		Rank:    rank,
		DFModel: dfModel,
		DFResid: dfResid,
		R2:      r2,
		AdjR2:   adjR2,
		FStat:   fStat,
		FPValue: fPValue,
	}, nil
}
