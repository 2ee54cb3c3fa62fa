package analyzer

import "math"

// clampScore bounds a score to [0, 100].
func clampScore(score float64) float64 {
	if math.IsNaN(score) || score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// gateScore compares the clamped raw score against passScore and returns it
// rounded to one decimal for the report.
func gateScore(raw, passScore float64) (float64, bool) {
	score := clampScore(raw)
	return round1(score), score >= passScore
}

// meanScore returns the unweighted mean of the check scores, 0 for none.
func meanScore(checks []CheckResult) float64 {
	if len(checks) == 0 {
		return 0
	}
	total := 0.0
	for _, c := range checks {
		total += c.Score
	}
	return total / float64(len(checks))
}

// newCheck builds a CheckResult with a clamped score. Recommendations are
// dropped when the check passed.
func newCheck(name string, score float64, passed bool, details string, recommendations ...string) CheckResult {
	if passed || recommendations == nil {
		recommendations = []string{}
	}
	return CheckResult{
		Name:            name,
		Score:           clampScore(score),
		Passed:          passed,
		Details:         details,
		Recommendations: recommendations,
	}
}
