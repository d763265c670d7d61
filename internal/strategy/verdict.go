package strategy

import "MoonSentinel/internal/model"

// StrongCorrelation is the coefficient both classifiers gate on. The
// boundary is exclusive: exactly 0.1 is not strong.
const StrongCorrelation = 0.1

// ClassifyVerdict maps a coefficient to the two-way headline verdict.
func ClassifyVerdict(coefficient float64) model.Verdict {
	if coefficient > StrongCorrelation {
		return model.VerdictStrongPositive
	}
	return model.VerdictNoEffect
}
