package scoring

import "github.com/lcalzada-xor/prr/internal/core/domain"

// biasContext is the immutable input of the critical-bias decision.
type biasContext struct {
	ciaMax          uint8
	reidTrue        bool
	likelihoodLevel domain.Level
}

// shouldBiasToCritical decides whether a High band escalates to Critical when a
// worst-case fundamentals axis meets demonstrated re-identification at high likelihood.
// The escalation is disabled in every format generation so far.
func shouldBiasToCritical(c biasContext) bool {
	if !criticalBiasEnabled {
		return false
	}
	return c.reidTrue && c.ciaMax == domain.MaxCIA && c.likelihoodLevel == domain.LevelHigh
}
