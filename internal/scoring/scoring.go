// Package scoring computes the derived composite scores for journal
// entities. Every function is pure and deterministic: identical inputs
// produce identical outputs, and in-range inputs never fail.
package scoring

import (
	"math"

	"trading-journal/internal/models"
)

// RiskWeights defines the contribution of each risk factor to the overall
// score. Weights are a static product decision, not user-editable.
type RiskWeights struct {
	Emotional float64
	Fomo      float64
	Bias      float64
	Physical  float64
	Pnl       float64
}

// DefaultRiskWeights returns the fixed weight vector. Pnl is weighted
// higher than the behavioral factors since it reflects outcome. The weights
// sum to 1.0, so the all-min and all-max factor tuples map exactly to the
// scale bounds.
func DefaultRiskWeights() RiskWeights {
	return RiskWeights{
		Emotional: 0.20,
		Fomo:      0.20,
		Bias:      0.20,
		Physical:  0.10,
		Pnl:       0.30,
	}
}

// Sum returns the total of the weight vector.
func (w RiskWeights) Sum() float64 {
	return w.Emotional + w.Fomo + w.Bias + w.Physical + w.Pnl
}

// Weight split between market sentiment and the sector mean when deriving
// a stock sentiment.
const (
	MarketWeight = 0.5
	SectorWeight = 0.5
)

// PatternPoints maps chart-pattern labels to the enthusiasm bonus they
// contribute. Unknown patterns contribute zero.
var PatternPoints = map[string]int{
	"High Base":                  2,
	"Low Base":                   2,
	"Ascending Triangle":         3,
	"Descending Triangle":        3,
	"Bull Pullback":              2,
	"Bear Rally":                 2,
	"Double-Top":                 3,
	"Cup-and-Handle":             4,
	"Head and Shoulders":         4,
	"Inverse Head and Shoulders": 4,
	"Bullish Flag":               3,
	"Bearish Flag":               3,
	"Rising Wedge":               2,
	"Falling Wedge":              2,
	"Double Bottom":              3,
	"Rounding Bottom":            3,
	"Breakaway Gap":              3,
	"Runaway Gap":                2,
	"Exhaustion Gap":             1,
	"Bullish Engulfing":          2,
	"Bearish Engulfing":          2,
}

// OverallScore computes the weighted risk score from the assessment's five
// raw factors using DefaultRiskWeights.
func OverallScore(ra models.RiskAssessment) float64 {
	return OverallScoreWithWeights(ra, DefaultRiskWeights())
}

// OverallScoreWithWeights computes the weighted risk score with an explicit
// weight vector. The result stays on the factor scale as long as the
// weights sum to 1.
func OverallScoreWithWeights(ra models.RiskAssessment, w RiskWeights) float64 {
	return float64(ra.Emotional)*w.Emotional +
		float64(ra.Fomo)*w.Fomo +
		float64(ra.Bias)*w.Bias +
		float64(ra.Physical)*w.Physical +
		float64(ra.Pnl)*w.Pnl
}

// StockSentiment combines market sentiment with the mean of the present
// sector factors. Absent sectors are excluded from the mean, never counted
// as zero. With no sector factors at all the market sentiment stands alone.
func StockSentiment(marketSentiment int, sectors models.SectorSet) float64 {
	values := sectors.Values()
	if len(values) == 0 {
		return float64(marketSentiment)
	}

	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	sectorMean := sum / float64(len(values))

	return MarketWeight*float64(marketSentiment) + SectorWeight*sectorMean
}

// EnthusiasmRating derives the enthusiasm dial for a rating. A set pattern
// contributes its point bonus on top of the rounded sentiment; with no
// pattern the raw input is clamped to the scale rather than rejected.
func EnthusiasmRating(stockSentiment float64, pattern string, raw int) int {
	if pattern == "" {
		return clampInt(raw, models.ScoreMin, models.ScoreMax)
	}
	return int(math.Round(stockSentiment)) + PatternPoints[pattern]
}

// Rescore recomputes every derived field of a stock rating in place.
func Rescore(sr *models.StockRating) {
	sr.StockSentiment = StockSentiment(sr.MarketSentiment, sr.Sectors)
	sr.EnthusiasmRating = EnthusiasmRating(sr.StockSentiment, sr.Pattern, sr.EnthusiasmInput)
}

// RescoreRisk recomputes the derived overall score in place.
func RescoreRisk(ra *models.RiskAssessment) {
	ra.OverallScore = OverallScore(*ra)
}

// MigrateScalar converts a legacy scalar sector set into the canonical
// breakdown shape by copying the scalar into a single target sector.
// Breakdown sets pass through unchanged. The target defaults to the
// synthetic unspecified sector when empty; the source data carries no
// evidence of a real mapping.
func MigrateScalar(set models.SectorSet, target models.Sector) models.SectorSet {
	if set.Kind != models.SectorSetScalar {
		return set
	}
	if target == "" {
		target = models.SectorUnspecified
	}
	return models.NewSectorBreakdown(map[models.Sector]int{target: set.Scalar})
}

// Clamp restricts a value to the given range.
func Clamp(value, minVal, maxVal float64) float64 {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}

func clampInt(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
