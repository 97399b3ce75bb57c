package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"trading-journal/internal/models"
)

// factorGen generates a raw factor on the shared score scale.
func factorGen() gopter.Gen {
	return gen.IntRange(models.ScoreMin, models.ScoreMax)
}

// buildBreakdown selects a subset of the real sectors via the mask bits and
// assigns them the generated values.
func buildBreakdown(mask int, values []int) models.SectorSet {
	present := make(map[models.Sector]int)
	for i, sector := range models.AllSectors {
		if i < len(values) && mask&(1<<i) != 0 {
			present[sector] = values[i]
		}
	}
	return models.NewSectorBreakdown(present)
}

func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())
	return gopter.NewProperties(parameters)
}

// Overall risk scores stay on the factor scale whenever every raw factor
// does, and identical factor tuples always score identically.
func TestProperty_OverallScoreBoundsAndDeterminism(t *testing.T) {
	properties := newProperties()

	properties.Property("overall score stays within the factor scale", prop.ForAll(
		func(emotional, fomo, bias, physical, pnl int) bool {
			ra := models.RiskAssessment{
				Emotional: emotional,
				Fomo:      fomo,
				Bias:      bias,
				Physical:  physical,
				Pnl:       pnl,
			}
			score := OverallScore(ra)
			return score >= float64(models.ScoreMin)-1e-9 && score <= float64(models.ScoreMax)+1e-9
		},
		factorGen(), factorGen(), factorGen(), factorGen(), factorGen(),
	))

	properties.Property("identical factors score identically", prop.ForAll(
		func(emotional, fomo, bias, physical, pnl int) bool {
			ra := models.RiskAssessment{
				Emotional: emotional,
				Fomo:      fomo,
				Bias:      bias,
				Physical:  physical,
				Pnl:       pnl,
			}
			return OverallScore(ra) == OverallScore(ra)
		},
		factorGen(), factorGen(), factorGen(), factorGen(), factorGen(),
	))

	properties.TestingRun(t)
}

// Stock sentiment matches its closed form: half the market sentiment plus
// half the mean of the sectors actually present. Absent sectors must not
// drag the mean toward zero.
func TestProperty_StockSentimentClosedForm(t *testing.T) {
	properties := newProperties()

	properties.Property("sentiment equals weighted market and sector mean", prop.ForAll(
		func(market, mask int, values []int) bool {
			sectors := buildBreakdown(mask, values)
			got := StockSentiment(market, sectors)

			present := sectors.Values()
			if len(present) == 0 {
				return got == float64(market)
			}
			var sum float64
			for _, v := range present {
				sum += float64(v)
			}
			want := MarketWeight*float64(market) + SectorWeight*sum/float64(len(present))
			return math.Abs(got-want) < 1e-9
		},
		factorGen(),
		gen.IntRange(0, (1<<len(models.AllSectors))-1),
		gen.SliceOfN(len(models.AllSectors), factorGen()),
	))

	properties.Property("sentiment stays within the scale for in-scale inputs", prop.ForAll(
		func(market, mask int, values []int) bool {
			got := StockSentiment(market, buildBreakdown(mask, values))
			return got >= float64(models.ScoreMin)-1e-9 && got <= float64(models.ScoreMax)+1e-9
		},
		factorGen(),
		gen.IntRange(0, (1<<len(models.AllSectors))-1),
		gen.SliceOfN(len(models.AllSectors), factorGen()),
	))

	properties.TestingRun(t)
}

// Without a pattern the enthusiasm rating is exactly the clamped raw input,
// so it can never leave the scale.
func TestProperty_EnthusiasmWithoutPatternStaysInScale(t *testing.T) {
	properties := newProperties()

	properties.Property("patternless enthusiasm is clamped to the scale", prop.ForAll(
		func(sentiment float64, raw int) bool {
			got := EnthusiasmRating(sentiment, "", raw)
			if !models.InScale(got) {
				return false
			}
			if models.InScale(raw) {
				return got == raw
			}
			return true
		},
		gen.Float64Range(-3, 3), gen.IntRange(-100, 100),
	))

	properties.TestingRun(t)
}

// Migrating a scalar rating preserves the value and lands it in exactly one
// sector, so the derived sentiment is unchanged by migration.
func TestProperty_ScalarMigrationPreservesSentiment(t *testing.T) {
	properties := newProperties()

	properties.Property("migration preserves the derived sentiment", prop.ForAll(
		func(market, scalar int) bool {
			legacy := models.NewScalarSectorSet(scalar)
			migrated := MigrateScalar(legacy, models.SectorUnspecified)

			if len(migrated.Breakdown) != 1 {
				return false
			}
			return math.Abs(StockSentiment(market, legacy)-StockSentiment(market, migrated)) < 1e-9
		},
		factorGen(), factorGen(),
	))

	properties.TestingRun(t)
}
