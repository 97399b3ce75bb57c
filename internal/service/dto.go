package service

import (
	"time"

	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
)

// DateFormat is the wire representation for calendar dates.
const DateFormat = "2006-01-02"

// DecodeDate parses a wire date. Full RFC 3339 timestamps are accepted for
// clients that send them; the date portion is what the journal keys on.
func DecodeDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperrors.NewValidationError(field, value, "must be a calendar date")
	}
	if t, err := time.Parse(DateFormat, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperrors.NewValidationError(field, value, "must be an ISO-8601 date")
}

func encodeDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateFormat)
}

// TradeInput is the wire shape for creating a trade. Derived fields do not
// exist on trades; ids are never accepted from the client.
type TradeInput struct {
	EntryDate      string  `json:"entryDate"`
	Ticker         string  `json:"ticker"`
	Sector         string  `json:"sector"`
	EntryPrice     float64 `json:"entryPrice"`
	Notes          string  `json:"notes"`
	ExpirationDate string  `json:"expirationDate,omitempty"`
	StrategyType   string  `json:"strategyType"`
	SpreadType     string  `json:"spreadType"`
	Direction      string  `json:"direction"`
}

// TradePatchInput is the wire shape for a partial trade update. Ticker and
// entryDate are immutable and not accepted.
type TradePatchInput struct {
	Sector         *string  `json:"sector,omitempty"`
	EntryPrice     *float64 `json:"entryPrice,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	ExpirationDate *string  `json:"expirationDate,omitempty"`
	StrategyType   *string  `json:"strategyType,omitempty"`
	SpreadType     *string  `json:"spreadType,omitempty"`
	Direction      *string  `json:"direction,omitempty"`
}

// TradeRecord is the wire shape of a stored trade.
type TradeRecord struct {
	ID             string  `json:"id"`
	EntryDate      string  `json:"entryDate"`
	Ticker         string  `json:"ticker"`
	Sector         string  `json:"sector"`
	EntryPrice     float64 `json:"entryPrice"`
	Notes          string  `json:"notes"`
	ExpirationDate string  `json:"expirationDate,omitempty"`
	StrategyType   string  `json:"strategyType"`
	SpreadType     string  `json:"spreadType"`
	Direction      string  `json:"direction"`
}

// RiskInput is the wire shape for creating a risk assessment. The overall
// score is engine-computed and deliberately not part of the input.
type RiskInput struct {
	Date      string `json:"date"`
	Emotional int    `json:"emotional"`
	Fomo      int    `json:"fomo"`
	Bias      int    `json:"bias"`
	Physical  int    `json:"physical"`
	Pnl       int    `json:"pnl"`
}

// RiskPatchInput is the wire shape for a partial risk-assessment update.
type RiskPatchInput struct {
	Date      *string `json:"date,omitempty"`
	Emotional *int    `json:"emotional,omitempty"`
	Fomo      *int    `json:"fomo,omitempty"`
	Bias      *int    `json:"bias,omitempty"`
	Physical  *int    `json:"physical,omitempty"`
	Pnl       *int    `json:"pnl,omitempty"`
}

// RiskRecord is the wire shape of a stored risk assessment.
type RiskRecord struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	Emotional    int     `json:"emotional"`
	Fomo         int     `json:"fomo"`
	Bias         int     `json:"bias"`
	Physical     int     `json:"physical"`
	Pnl          int     `json:"pnl"`
	OverallScore float64 `json:"overallScore"`
}

// RatingInput is the wire shape for creating a stock rating. Exactly one of
// SectorSentiment (legacy scalar) or Sectors (breakdown) must be set.
// Derived sentiment fields are not accepted.
type RatingInput struct {
	Date            string         `json:"date"`
	Ticker          string         `json:"ticker"`
	MarketSentiment int            `json:"marketSentiment"`
	SectorSentiment *int           `json:"sectorSentiment,omitempty"`
	Sectors         map[string]int `json:"sectors,omitempty"`
	Pattern         string         `json:"pattern"`
	Enthusiasm      int            `json:"enthusiasm"`
}

// RatingPatchInput is the wire shape for a partial stock-rating update.
type RatingPatchInput struct {
	Date            *string        `json:"date,omitempty"`
	Ticker          *string        `json:"ticker,omitempty"`
	MarketSentiment *int           `json:"marketSentiment,omitempty"`
	SectorSentiment *int           `json:"sectorSentiment,omitempty"`
	Sectors         map[string]int `json:"sectors,omitempty"`
	Pattern         *string        `json:"pattern,omitempty"`
	Enthusiasm      *int           `json:"enthusiasm,omitempty"`
}

// RatingRecord is the wire shape of a stored stock rating. Sector
// sentiments are always emitted in the canonical breakdown shape; legacy
// scalar records are migrated on the way out.
type RatingRecord struct {
	ID               string         `json:"id"`
	Date             string         `json:"date"`
	Ticker           string         `json:"ticker"`
	MarketSentiment  int            `json:"marketSentiment"`
	Sectors          map[string]int `json:"sectors"`
	Pattern          string         `json:"pattern"`
	StockSentiment   float64        `json:"stockSentiment"`
	EnthusiasmRating int            `json:"enthusiasmRating"`
}

// SummaryRecord is the wire shape of a trend summary.
type SummaryRecord struct {
	Kind  string  `json:"kind"`
	From  string  `json:"from"`
	To    string  `json:"to"`
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Trend string  `json:"trendDirection"`
}

func decodeSectorSet(field string, scalar *int, sectors map[string]int) (models.SectorSet, error) {
	if scalar != nil && len(sectors) > 0 {
		return models.SectorSet{}, apperrors.NewValidationError(field, nil, "sectorSentiment and sectors are mutually exclusive")
	}
	if scalar != nil {
		return models.NewScalarSectorSet(*scalar), nil
	}
	if len(sectors) > 0 {
		values := make(map[models.Sector]int, len(sectors))
		for name, v := range sectors {
			values[models.Sector(name)] = v
		}
		return models.NewSectorBreakdown(values), nil
	}
	return models.SectorSet{}, apperrors.NewValidationError(field, nil, "either sectorSentiment or sectors is required")
}
