// Package service is the inbound request/response boundary consumed by a
// presentation layer. It decodes wire records into domain entities, calls
// the store and trend service, and encodes results back. Derived score
// fields never cross this boundary inbound: the wire inputs simply have no
// place to carry them.
package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
	"trading-journal/internal/scoring"
	"trading-journal/internal/store"
	"trading-journal/internal/trends"
)

// Service exposes the journal operations a presentation layer binds to.
type Service struct {
	store           store.Store
	trends          *trends.Service
	logger          zerolog.Logger
	migrationSector models.Sector
}

// New creates the service facade. migrationSector controls where legacy
// scalar sector sentiments land when ratings are canonicalized on read;
// empty selects the synthetic unspecified sector.
func New(s store.Store, t *trends.Service, logger zerolog.Logger, migrationSector models.Sector) *Service {
	if migrationSector == "" {
		migrationSector = models.SectorUnspecified
	}
	return &Service{
		store:           s,
		trends:          t,
		logger:          logger,
		migrationSector: migrationSector,
	}
}

// ============================================================================
// Trades
// ============================================================================

// CreateTrade decodes and persists a new trade.
func (s *Service) CreateTrade(ctx context.Context, in TradeInput) (*TradeRecord, error) {
	t, err := decodeTradeInput(in)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.CreateTrade(ctx, t); err != nil {
		return nil, err
	}
	rec := encodeTrade(t)
	return &rec, nil
}

// GetTrade returns a stored trade.
func (s *Service) GetTrade(ctx context.Context, id string) (*TradeRecord, error) {
	t, err := s.store.GetTrade(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := encodeTrade(t)
	return &rec, nil
}

// UpdateTrade applies a partial update to a stored trade.
func (s *Service) UpdateTrade(ctx context.Context, id string, in TradePatchInput) (*TradeRecord, error) {
	patch := store.TradePatch{
		Sector:       in.Sector,
		EntryPrice:   in.EntryPrice,
		Notes:        in.Notes,
		StrategyType: in.StrategyType,
		SpreadType:   in.SpreadType,
	}
	if in.ExpirationDate != nil {
		d, err := DecodeDate("expirationDate", *in.ExpirationDate)
		if err != nil {
			return nil, err
		}
		patch.ExpirationDate = &d
	}
	if in.Direction != nil {
		d := models.Direction(*in.Direction)
		patch.Direction = &d
	}

	t, err := s.store.UpdateTrade(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	rec := encodeTrade(t)
	return &rec, nil
}

// DeleteTrade removes a trade; absent ids succeed silently.
func (s *Service) DeleteTrade(ctx context.Context, id string) error {
	return s.store.DeleteTrade(ctx, id)
}

// ListTrades returns trades with entry date in the inclusive window.
func (s *Service) ListTrades(ctx context.Context, from, to string) ([]TradeRecord, error) {
	fromDate, toDate, err := decodeWindow(from, to)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListTrades(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	out := make([]TradeRecord, 0, len(records))
	for i := range records {
		out = append(out, encodeTrade(&records[i]))
	}
	return out, nil
}

func decodeTradeInput(in TradeInput) (*models.Trade, error) {
	entryDate, err := DecodeDate("entryDate", in.EntryDate)
	if err != nil {
		return nil, err
	}
	t := &models.Trade{
		EntryDate:    entryDate,
		Ticker:       in.Ticker,
		Sector:       in.Sector,
		EntryPrice:   in.EntryPrice,
		Notes:        in.Notes,
		StrategyType: in.StrategyType,
		SpreadType:   in.SpreadType,
		Direction:    models.Direction(in.Direction),
	}
	if in.ExpirationDate != "" {
		expiration, err := DecodeDate("expirationDate", in.ExpirationDate)
		if err != nil {
			return nil, err
		}
		t.ExpirationDate = expiration
	}
	return t, nil
}

func encodeTrade(t *models.Trade) TradeRecord {
	return TradeRecord{
		ID:             t.ID,
		EntryDate:      encodeDate(t.EntryDate),
		Ticker:         t.Ticker,
		Sector:         t.Sector,
		EntryPrice:     t.EntryPrice,
		Notes:          t.Notes,
		ExpirationDate: encodeDate(t.ExpirationDate),
		StrategyType:   t.StrategyType,
		SpreadType:     t.SpreadType,
		Direction:      string(t.Direction),
	}
}

// ============================================================================
// Risk assessments
// ============================================================================

// CreateRiskAssessment decodes and persists a new assessment. The overall
// score comes back engine-computed.
func (s *Service) CreateRiskAssessment(ctx context.Context, in RiskInput) (*RiskRecord, error) {
	date, err := DecodeDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	ra := &models.RiskAssessment{
		Date:      date,
		Emotional: in.Emotional,
		Fomo:      in.Fomo,
		Bias:      in.Bias,
		Physical:  in.Physical,
		Pnl:       in.Pnl,
	}
	if _, err := s.store.CreateRiskAssessment(ctx, ra); err != nil {
		return nil, err
	}
	rec := encodeRisk(ra)
	return &rec, nil
}

// GetRiskAssessment returns a stored assessment.
func (s *Service) GetRiskAssessment(ctx context.Context, id string) (*RiskRecord, error) {
	ra, err := s.store.GetRiskAssessment(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := encodeRisk(ra)
	return &rec, nil
}

// UpdateRiskAssessment applies a partial update; the overall score is
// recomputed by the store.
func (s *Service) UpdateRiskAssessment(ctx context.Context, id string, in RiskPatchInput) (*RiskRecord, error) {
	patch := store.RiskPatch{
		Emotional: in.Emotional,
		Fomo:      in.Fomo,
		Bias:      in.Bias,
		Physical:  in.Physical,
		Pnl:       in.Pnl,
	}
	if in.Date != nil {
		d, err := DecodeDate("date", *in.Date)
		if err != nil {
			return nil, err
		}
		patch.Date = &d
	}

	ra, err := s.store.UpdateRiskAssessment(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	rec := encodeRisk(ra)
	return &rec, nil
}

// DeleteRiskAssessment removes an assessment; absent ids succeed silently.
func (s *Service) DeleteRiskAssessment(ctx context.Context, id string) error {
	return s.store.DeleteRiskAssessment(ctx, id)
}

// ListRiskAssessments returns assessments dated in the inclusive window.
func (s *Service) ListRiskAssessments(ctx context.Context, from, to string) ([]RiskRecord, error) {
	fromDate, toDate, err := decodeWindow(from, to)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListRiskAssessments(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	out := make([]RiskRecord, 0, len(records))
	for i := range records {
		out = append(out, encodeRisk(&records[i]))
	}
	return out, nil
}

func encodeRisk(ra *models.RiskAssessment) RiskRecord {
	return RiskRecord{
		ID:           ra.ID,
		Date:         encodeDate(ra.Date),
		Emotional:    ra.Emotional,
		Fomo:         ra.Fomo,
		Bias:         ra.Bias,
		Physical:     ra.Physical,
		Pnl:          ra.Pnl,
		OverallScore: ra.OverallScore,
	}
}

// ============================================================================
// Stock ratings
// ============================================================================

// CreateStockRating decodes and persists a new rating. Sentiment and
// enthusiasm come back engine-computed.
func (s *Service) CreateStockRating(ctx context.Context, in RatingInput) (*RatingRecord, error) {
	date, err := DecodeDate("date", in.Date)
	if err != nil {
		return nil, err
	}
	sectors, err := decodeSectorSet("sectors", in.SectorSentiment, in.Sectors)
	if err != nil {
		return nil, err
	}
	sr := &models.StockRating{
		Date:            date,
		Ticker:          in.Ticker,
		MarketSentiment: in.MarketSentiment,
		Sectors:         sectors,
		Pattern:         in.Pattern,
		EnthusiasmInput: in.Enthusiasm,
	}
	if _, err := s.store.CreateStockRating(ctx, sr); err != nil {
		return nil, err
	}
	rec := s.encodeRating(sr)
	return &rec, nil
}

// GetStockRating returns a stored rating in canonical breakdown shape.
func (s *Service) GetStockRating(ctx context.Context, id string) (*RatingRecord, error) {
	sr, err := s.store.GetStockRating(ctx, id)
	if err != nil {
		return nil, err
	}
	rec := s.encodeRating(sr)
	return &rec, nil
}

// UpdateStockRating applies a partial update; derived sentiment fields are
// recomputed by the store.
func (s *Service) UpdateStockRating(ctx context.Context, id string, in RatingPatchInput) (*RatingRecord, error) {
	patch := store.RatingPatch{
		Ticker:          in.Ticker,
		MarketSentiment: in.MarketSentiment,
		Pattern:         in.Pattern,
		EnthusiasmInput: in.Enthusiasm,
	}
	if in.Date != nil {
		d, err := DecodeDate("date", *in.Date)
		if err != nil {
			return nil, err
		}
		patch.Date = &d
	}
	if in.SectorSentiment != nil || len(in.Sectors) > 0 {
		sectors, err := decodeSectorSet("sectors", in.SectorSentiment, in.Sectors)
		if err != nil {
			return nil, err
		}
		patch.Sectors = &sectors
	}

	sr, err := s.store.UpdateStockRating(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	rec := s.encodeRating(sr)
	return &rec, nil
}

// DeleteStockRating removes a rating; absent ids succeed silently.
func (s *Service) DeleteStockRating(ctx context.Context, id string) error {
	return s.store.DeleteStockRating(ctx, id)
}

// ListStockRatings returns ratings dated in the inclusive window.
func (s *Service) ListStockRatings(ctx context.Context, from, to string) ([]RatingRecord, error) {
	fromDate, toDate, err := decodeWindow(from, to)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListStockRatings(ctx, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	out := make([]RatingRecord, 0, len(records))
	for i := range records {
		out = append(out, s.encodeRating(&records[i]))
	}
	return out, nil
}

func (s *Service) encodeRating(sr *models.StockRating) RatingRecord {
	canonical := scoring.MigrateScalar(sr.Sectors, s.migrationSector)
	sectors := make(map[string]int, len(canonical.Breakdown))
	for sector, v := range canonical.Breakdown {
		sectors[string(sector)] = v
	}
	return RatingRecord{
		ID:               sr.ID,
		Date:             encodeDate(sr.Date),
		Ticker:           sr.Ticker,
		MarketSentiment:  sr.MarketSentiment,
		Sectors:          sectors,
		Pattern:          sr.Pattern,
		StockSentiment:   sr.StockSentiment,
		EnthusiasmRating: sr.EnthusiasmRating,
	}
}

// ============================================================================
// Summaries
// ============================================================================

// Summarize rolls up a kind's derived score over the inclusive window.
func (s *Service) Summarize(ctx context.Context, kind, from, to string) (*SummaryRecord, error) {
	k := models.Kind(kind)
	if !k.Valid() {
		return nil, apperrors.NewValidationError("kind", kind, "must be trade, risk, or rating")
	}
	fromDate, toDate, err := decodeWindow(from, to)
	if err != nil {
		return nil, err
	}

	summary, err := s.trends.Summarize(ctx, k, fromDate, toDate)
	if err != nil {
		return nil, err
	}
	return &SummaryRecord{
		Kind:  string(summary.Kind),
		From:  encodeDate(summary.From),
		To:    encodeDate(summary.To),
		Count: summary.Count,
		Mean:  summary.Mean,
		Min:   summary.Min,
		Max:   summary.Max,
		Trend: string(summary.Trend),
	}, nil
}

func decodeWindow(from, to string) (fromDate, toDate time.Time, err error) {
	fromDate, err = DecodeDate("from", from)
	if err != nil {
		return
	}
	toDate, err = DecodeDate("to", to)
	if err != nil {
		return
	}
	if toDate.Before(fromDate) {
		err = apperrors.NewValidationError("to", to, "must not precede from")
	}
	return
}
