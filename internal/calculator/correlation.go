package calculator

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"MoonSentinel/internal/model"
)

// Degenerate is returned whenever the correlation carries no information:
// fewer than two points or a constant input.
var Degenerate = model.CorrelationResult{Coefficient: 0, PValue: 1}

// Pearson computes the Pearson product-moment correlation of x and y and the
// two-sided p-value for the null hypothesis of no linear relationship, using
// Student's t with n-2 degrees of freedom.
func Pearson(x, y []float64) (model.CorrelationResult, error) {
	if len(x) != len(y) {
		return model.CorrelationResult{}, errors.New("pearson: input lengths differ")
	}
	n := len(x)
	if n < 2 || isConstant(x) || isConstant(y) {
		res := Degenerate
		res.N = n
		return res, nil
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		res := Degenerate
		res.N = n
		return res, nil
	}
	r = math.Max(-1, math.Min(1, r))

	return model.CorrelationResult{Coefficient: r, PValue: pValue(r, n), N: n}, nil
}

func pValue(r float64, n int) float64 {
	df := float64(n - 2)
	if df <= 0 {
		// two points always lie on a line
		return 1
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	t := r * math.Sqrt(df/((1-r)*(1+r)))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.Survival(math.Abs(t))
	return math.Max(0, math.Min(1, p))
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
