// Package trends produces time-windowed rollups over stored journal
// entities for dashboards and historical analysis.
package trends

import (
	"context"
	"time"

	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
	"trading-journal/internal/store"
)

// TrendDirection classifies the slope of a derived score over a window.
type TrendDirection string

const (
	TrendRising  TrendDirection = "rising"
	TrendFalling TrendDirection = "falling"
	TrendFlat    TrendDirection = "flat"
)

// FlatSlopeThreshold is the absolute least-squares slope, in score units
// per day, below which a window is classified as flat.
const FlatSlopeThreshold = 0.01

// Summary is a rollup over one entity kind's tracked value in a window.
// Risk assessments aggregate overallScore, stock ratings stockSentiment,
// and trades entry price.
type Summary struct {
	Kind  models.Kind
	From  time.Time
	To    time.Time
	Count int
	Mean  float64
	Min   float64
	Max   float64
	Trend TrendDirection
}

// Service computes summaries from the journal store.
type Service struct {
	store store.Store
}

// NewService creates a trend service over the given store.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// Summarize rolls up the kind's tracked value over the inclusive [from, to]
// window. An empty window yields an EmptyRangeError so callers can render
// "no data" instead of failing.
func (s *Service) Summarize(ctx context.Context, kind models.Kind, from, to time.Time) (*Summary, error) {
	points, err := s.collect(ctx, kind, from, to)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, apperrors.NewEmptyRangeError(string(kind), from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	summary := &Summary{
		Kind:  kind,
		From:  from,
		To:    to,
		Count: len(points),
		Min:   points[0].value,
		Max:   points[0].value,
	}

	var sum float64
	for _, p := range points {
		sum += p.value
		if p.value < summary.Min {
			summary.Min = p.value
		}
		if p.value > summary.Max {
			summary.Max = p.value
		}
	}
	summary.Mean = sum / float64(len(points))
	summary.Trend = Classify(slope(points, from))

	return summary, nil
}

type point struct {
	date  time.Time
	value float64
}

func (s *Service) collect(ctx context.Context, kind models.Kind, from, to time.Time) ([]point, error) {
	switch kind {
	case models.KindRisk:
		records, err := s.store.ListRiskAssessments(ctx, from, to)
		if err != nil {
			return nil, err
		}
		points := make([]point, 0, len(records))
		for _, ra := range records {
			points = append(points, point{date: ra.Date, value: ra.OverallScore})
		}
		return points, nil

	case models.KindRating:
		records, err := s.store.ListStockRatings(ctx, from, to)
		if err != nil {
			return nil, err
		}
		points := make([]point, 0, len(records))
		for _, sr := range records {
			points = append(points, point{date: sr.Date, value: sr.StockSentiment})
		}
		return points, nil

	case models.KindTrade:
		records, err := s.store.ListTrades(ctx, from, to)
		if err != nil {
			return nil, err
		}
		points := make([]point, 0, len(records))
		for _, t := range records {
			points = append(points, point{date: t.EntryDate, value: t.EntryPrice})
		}
		return points, nil
	}

	return nil, apperrors.NewValidationError("kind", kind, "unknown entity kind")
}

// slope fits a least-squares line over (days since window start, value)
// and returns its gradient. A single point has no slope.
func slope(points []point, from time.Time) float64 {
	n := float64(len(points))
	if n < 2 {
		return 0
	}

	var sumX, sumY, sumXY, sumXX float64
	for _, p := range points {
		x := p.date.Sub(from).Hours() / 24
		sumX += x
		sumY += p.value
		sumXY += x * p.value
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		// All points share one date; no direction to report.
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// Classify maps a least-squares slope to a trend direction.
func Classify(gradient float64) TrendDirection {
	switch {
	case gradient > FlatSlopeThreshold:
		return TrendRising
	case gradient < -FlatSlopeThreshold:
		return TrendFalling
	default:
		return TrendFlat
	}
}
