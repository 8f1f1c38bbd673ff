// Package regress fits an ordinary-least-squares model of review score
// against price and playtime, and renders a fixed-layout text report of the
// fit.
//
// The engine is stateless and loader-independent: it operates on any Frame
// that carries the score_ratio, price, and average_playtime_forever columns.
// Inputs that cannot support valid inference never raise; they come back as
// tagged results (schema error, sample too small, computation error), so an
// interactive caller stays responsive and shows a message instead of
// crashing.
//
// The fit is the closed-form OLS estimator with an explicit intercept term:
// omitting the intercept would force the fitted plane through the origin and
// bias the estimates, since free games need not score zero. Below 30
// observations the asymptotic normality behind the reported t and F tests is
// unreliable, so smaller samples are refused outright.
package regress
