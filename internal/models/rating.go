package models

import (
	"time"

	"trading-journal/internal/errors"
)

// SectorSetKind tags the two observed stock-rating schema variants.
type SectorSetKind string

const (
	// SectorSetScalar is the legacy single sector-sentiment value.
	SectorSetScalar SectorSetKind = "scalar"
	// SectorSetBreakdown is the per-sector sentiment breakdown.
	SectorSetBreakdown SectorSetKind = "breakdown"
)

// SectorSet holds the sector-sentiment inputs of a stock rating as a tagged
// variant. Scalar is meaningful only when Kind is SectorSetScalar; Breakdown
// holds only the sectors the user actually scored, so absent sectors can be
// excluded from the mean instead of counting as zero.
type SectorSet struct {
	Kind      SectorSetKind
	Scalar    int
	Breakdown map[Sector]int
}

// NewScalarSectorSet builds the legacy single-value variant.
func NewScalarSectorSet(v int) SectorSet {
	return SectorSet{Kind: SectorSetScalar, Scalar: v}
}

// NewSectorBreakdown builds the breakdown variant from the given sectors.
func NewSectorBreakdown(values map[Sector]int) SectorSet {
	return SectorSet{Kind: SectorSetBreakdown, Breakdown: values}
}

// Values returns the present sector factors. Order follows AllSectors for
// the breakdown variant so downstream arithmetic is deterministic.
func (s SectorSet) Values() []int {
	switch s.Kind {
	case SectorSetScalar:
		return []int{s.Scalar}
	case SectorSetBreakdown:
		out := make([]int, 0, len(s.Breakdown))
		for _, sector := range AllSectors {
			if v, ok := s.Breakdown[sector]; ok {
				out = append(out, v)
			}
		}
		if v, ok := s.Breakdown[SectorUnspecified]; ok {
			out = append(out, v)
		}
		return out
	}
	return nil
}

// Validate checks the variant tag, sector names, and value ranges.
func (s SectorSet) Validate() error {
	switch s.Kind {
	case SectorSetScalar:
		if !InScale(s.Scalar) {
			return errors.NewValidationError("sectorSentiment", s.Scalar, "must be between -3 and +3")
		}
	case SectorSetBreakdown:
		if len(s.Breakdown) == 0 {
			return errors.NewValidationError("sectors", nil, "breakdown must include at least one sector")
		}
		for sector, v := range s.Breakdown {
			if !sector.Valid() {
				return errors.NewValidationError("sectors", sector, "unknown sector")
			}
			if !InScale(v) {
				return errors.NewValidationError(string(sector), v, "must be between -3 and +3")
			}
		}
	default:
		return errors.NewValidationError("sectorKind", s.Kind, "must be scalar or breakdown")
	}
	return nil
}

// StockRating is a dated sentiment rating for a ticker. StockSentiment and
// EnthusiasmRating are derived by the scoring engine; EnthusiasmInput is the
// raw dial the user sets when no chart pattern is given.
type StockRating struct {
	ID              string
	Date            time.Time
	Ticker          string
	MarketSentiment int
	Sectors         SectorSet
	Pattern         string
	EnthusiasmInput int

	// Derived, engine-computed.
	StockSentiment   float64
	EnthusiasmRating int
}

// Validate checks the rating's field contracts.
func (sr *StockRating) Validate() error {
	if sr.Ticker == "" {
		return errors.NewValidationError("ticker", sr.Ticker, "must not be empty")
	}
	if sr.Date.IsZero() {
		return errors.NewValidationError("date", sr.Date, "must be a valid date")
	}
	if !InScale(sr.MarketSentiment) {
		return errors.NewValidationError("marketSentiment", sr.MarketSentiment, "must be between -3 and +3")
	}
	return sr.Sectors.Validate()
}
