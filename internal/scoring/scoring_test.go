package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trading-journal/internal/models"
)

func TestDefaultRiskWeightsSumToOne(t *testing.T) {
	assert.InDelta(t, 1.0, DefaultRiskWeights().Sum(), 1e-9)
}

func TestOverallScore(t *testing.T) {
	tests := []struct {
		name string
		ra   models.RiskAssessment
		want float64
	}{
		{
			name: "all zero factors",
			ra:   models.RiskAssessment{},
			want: 0,
		},
		{
			name: "all max factors hit the scale top",
			ra:   models.RiskAssessment{Emotional: 3, Fomo: 3, Bias: 3, Physical: 3, Pnl: 3},
			want: 3,
		},
		{
			name: "all min factors hit the scale bottom",
			ra:   models.RiskAssessment{Emotional: -3, Fomo: -3, Bias: -3, Physical: -3, Pnl: -3},
			want: -3,
		},
		{
			name: "pnl carries the largest weight",
			ra:   models.RiskAssessment{Pnl: 3},
			want: 0.9,
		},
		{
			name: "mixed factors",
			ra:   models.RiskAssessment{Emotional: 1, Fomo: -2, Bias: 0, Physical: 2, Pnl: 1},
			want: 1*0.20 - 2*0.20 + 2*0.10 + 1*0.30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, OverallScore(tt.ra), 1e-9)
		})
	}
}

func TestStockSentiment(t *testing.T) {
	tests := []struct {
		name    string
		market  int
		sectors models.SectorSet
		want    float64
	}{
		{
			name:    "scalar sector",
			market:  2,
			sectors: models.NewScalarSectorSet(0),
			want:    1,
		},
		{
			name:   "breakdown mean over present sectors",
			market: 2,
			sectors: models.NewSectorBreakdown(map[models.Sector]int{
				models.SectorTechnology: 3,
				models.SectorEnergy:     1,
			}),
			want: 0.5*2 + 0.5*2,
		},
		{
			name:   "absent sectors are excluded, not counted as zero",
			market: 0,
			sectors: models.NewSectorBreakdown(map[models.Sector]int{
				models.SectorTechnology: 3,
			}),
			want: 1.5,
		},
		{
			name:    "no sector factors leaves market alone",
			market:  -2,
			sectors: models.NewSectorBreakdown(nil),
			want:    -2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, StockSentiment(tt.market, tt.sectors), 1e-9)
		})
	}
}

func TestEnthusiasmRating(t *testing.T) {
	tests := []struct {
		name      string
		sentiment float64
		pattern   string
		raw       int
		want      int
	}{
		{name: "no pattern passes raw through", sentiment: 2.5, pattern: "", raw: 2, want: 2},
		{name: "no pattern clamps high raw", sentiment: 0, pattern: "", raw: 9, want: 3},
		{name: "no pattern clamps low raw", sentiment: 0, pattern: "", raw: -9, want: -3},
		{name: "pattern adds bonus to rounded sentiment", sentiment: 1.4, pattern: "Cup-and-Handle", raw: 0, want: 5},
		{name: "rounding is half away from zero", sentiment: 1.5, pattern: "High Base", raw: 0, want: 4},
		{name: "unknown pattern contributes zero", sentiment: 2.0, pattern: "Mystery Shape", raw: 0, want: 2},
		{name: "negative sentiment with pattern", sentiment: -2.6, pattern: "Bearish Flag", raw: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnthusiasmRating(tt.sentiment, tt.pattern, tt.raw))
		})
	}
}

func TestRescore(t *testing.T) {
	sr := &models.StockRating{
		MarketSentiment: 2,
		Sectors:         models.NewScalarSectorSet(0),
		Pattern:         "High Base",
	}
	Rescore(sr)
	assert.InDelta(t, 1.0, sr.StockSentiment, 1e-9)
	assert.Equal(t, 3, sr.EnthusiasmRating)

	ra := &models.RiskAssessment{Pnl: 3, OverallScore: 99}
	RescoreRisk(ra)
	assert.InDelta(t, 0.9, ra.OverallScore, 1e-9)
}

func TestMigrateScalar(t *testing.T) {
	t.Run("scalar moves into the target sector", func(t *testing.T) {
		got := MigrateScalar(models.NewScalarSectorSet(2), models.SectorTechnology)
		assert.Equal(t, models.SectorSetBreakdown, got.Kind)
		assert.Equal(t, map[models.Sector]int{models.SectorTechnology: 2}, got.Breakdown)
	})

	t.Run("empty target falls back to unspecified", func(t *testing.T) {
		got := MigrateScalar(models.NewScalarSectorSet(-1), "")
		assert.Equal(t, map[models.Sector]int{models.SectorUnspecified: -1}, got.Breakdown)
	})

	t.Run("breakdown passes through unchanged", func(t *testing.T) {
		set := models.NewSectorBreakdown(map[models.Sector]int{models.SectorEnergy: 1})
		assert.Equal(t, set, MigrateScalar(set, models.SectorTechnology))
	})
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 3.0, Clamp(7.2, -3, 3))
	assert.Equal(t, -3.0, Clamp(-7.2, -3, 3))
	assert.Equal(t, 1.5, Clamp(1.5, -3, 3))
}
