package trends

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
	"trading-journal/internal/store"
)

func newTestService(t *testing.T) (*Service, store.Store) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	s, err := store.NewSQLiteStore(dbPath, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return NewService(s), s
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSummarizeEmptyWindow(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Summarize(context.Background(), models.KindRisk, date(2025, 1, 1), date(2025, 1, 31))
	assert.ErrorIs(t, err, apperrors.ErrEmptyRange)
	var rerr *apperrors.EmptyRangeError
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "risk", rerr.Kind)
}

func TestSummarizeUnknownKind(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Summarize(context.Background(), models.Kind("position"), date(2025, 1, 1), date(2025, 1, 31))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSummarizeRiskStats(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	// Pnl has weight 0.3, so these yield overall scores -0.9, 0, 0.9.
	for i, pnl := range []int{-3, 0, 3} {
		_, err := s.CreateRiskAssessment(ctx, &models.RiskAssessment{
			Date: date(2025, 8, 1+i),
			Pnl:  pnl,
		})
		require.NoError(t, err)
	}

	got, err := svc.Summarize(ctx, models.KindRisk, date(2025, 8, 1), date(2025, 8, 31))
	require.NoError(t, err)
	assert.Equal(t, 3, got.Count)
	assert.InDelta(t, 0.0, got.Mean, 1e-9)
	assert.InDelta(t, -0.9, got.Min, 1e-9)
	assert.InDelta(t, 0.9, got.Max, 1e-9)
	// Scores climb 0.9 per day.
	assert.Equal(t, TrendRising, got.Trend)
}

func TestSummarizeTradePrices(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	prices := []float64{120, 110, 100}
	for i, p := range prices {
		_, err := s.CreateTrade(ctx, &models.Trade{
			EntryDate:  date(2025, 8, 1+i),
			Ticker:     "AAPL",
			EntryPrice: p,
		})
		require.NoError(t, err)
	}

	got, err := svc.Summarize(ctx, models.KindTrade, date(2025, 8, 1), date(2025, 8, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, got.Count)
	assert.InDelta(t, 110, got.Mean, 1e-9)
	assert.InDelta(t, 100, got.Min, 1e-9)
	assert.InDelta(t, 120, got.Max, 1e-9)
	assert.Equal(t, TrendFalling, got.Trend)
}

func TestSummarizeRatingSentiment(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	_, err := s.CreateStockRating(ctx, &models.StockRating{
		Date:            date(2025, 8, 5),
		Ticker:          "NVDA",
		MarketSentiment: 2,
		Sectors:         models.NewScalarSectorSet(2),
	})
	require.NoError(t, err)

	got, err := svc.Summarize(ctx, models.KindRating, date(2025, 8, 1), date(2025, 8, 31))
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
	assert.InDelta(t, 2.0, got.Mean, 1e-9)
	// A single point has no slope.
	assert.Equal(t, TrendFlat, got.Trend)
}

func TestSummarizeSameDayPointsAreFlat(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	for _, pnl := range []int{-3, 3} {
		_, err := s.CreateRiskAssessment(ctx, &models.RiskAssessment{
			Date: date(2025, 8, 1),
			Pnl:  pnl,
		})
		require.NoError(t, err)
	}

	got, err := svc.Summarize(ctx, models.KindRisk, date(2025, 8, 1), date(2025, 8, 1))
	require.NoError(t, err)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, TrendFlat, got.Trend)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, TrendRising, Classify(0.5))
	assert.Equal(t, TrendRising, Classify(FlatSlopeThreshold+1e-6))
	assert.Equal(t, TrendFlat, Classify(FlatSlopeThreshold))
	assert.Equal(t, TrendFlat, Classify(0))
	assert.Equal(t, TrendFlat, Classify(-FlatSlopeThreshold))
	assert.Equal(t, TrendFalling, Classify(-FlatSlopeThreshold-1e-6))
	assert.Equal(t, TrendFalling, Classify(-0.5))
}

func TestSlope(t *testing.T) {
	from := date(2025, 8, 1)
	points := []point{
		{date: from, value: 1},
		{date: from.AddDate(0, 0, 1), value: 2},
		{date: from.AddDate(0, 0, 2), value: 3},
	}
	assert.InDelta(t, 1.0, slope(points, from), 1e-9)

	assert.InDelta(t, 0.0, slope(points[:1], from), 1e-9)
	assert.InDelta(t, 0.0, slope(nil, from), 1e-9)
}
