// Package store provides keyed persistence for journal entities.
//
// The store owns identity assignment and is the only place derived scores
// are written: create and update always recompute overallScore,
// stockSentiment and enthusiasmRating from the raw factors, so any
// client-supplied value for a derived field is discarded.
package store

import (
	"context"
	"time"

	"trading-journal/internal/models"
)

// Store defines the persistence contract for journal entities.
//
// All list methods return records with date in the inclusive [from, to]
// window, ordered by date ascending with ties broken by id ascending.
// Delete methods are idempotent: deleting an absent id is not an error.
type Store interface {
	// Trades
	CreateTrade(ctx context.Context, t *models.Trade) (string, error)
	GetTrade(ctx context.Context, id string) (*models.Trade, error)
	UpdateTrade(ctx context.Context, id string, patch TradePatch) (*models.Trade, error)
	DeleteTrade(ctx context.Context, id string) error
	ListTrades(ctx context.Context, from, to time.Time) ([]models.Trade, error)

	// Risk assessments
	CreateRiskAssessment(ctx context.Context, ra *models.RiskAssessment) (string, error)
	GetRiskAssessment(ctx context.Context, id string) (*models.RiskAssessment, error)
	UpdateRiskAssessment(ctx context.Context, id string, patch RiskPatch) (*models.RiskAssessment, error)
	DeleteRiskAssessment(ctx context.Context, id string) error
	ListRiskAssessments(ctx context.Context, from, to time.Time) ([]models.RiskAssessment, error)

	// Stock ratings
	CreateStockRating(ctx context.Context, sr *models.StockRating) (string, error)
	GetStockRating(ctx context.Context, id string) (*models.StockRating, error)
	UpdateStockRating(ctx context.Context, id string, patch RatingPatch) (*models.StockRating, error)
	DeleteStockRating(ctx context.Context, id string) error
	ListStockRatings(ctx context.Context, from, to time.Time) ([]models.StockRating, error)

	// Lifecycle
	Close() error
}

// TradePatch is a partial trade update. Nil fields are left unchanged.
// Ticker and EntryDate are immutable and deliberately absent.
type TradePatch struct {
	Sector         *string
	EntryPrice     *float64
	Notes          *string
	ExpirationDate *time.Time
	StrategyType   *string
	SpreadType     *string
	Direction      *models.Direction
}

// RiskPatch is a partial risk-assessment update. Nil fields are left
// unchanged. The overall score cannot be patched; it is recomputed.
type RiskPatch struct {
	Date      *time.Time
	Emotional *int
	Fomo      *int
	Bias      *int
	Physical  *int
	Pnl       *int
}

// RatingPatch is a partial stock-rating update. Nil fields are left
// unchanged. Derived sentiment fields cannot be patched.
type RatingPatch struct {
	Date            *time.Time
	Ticker          *string
	MarketSentiment *int
	Sectors         *models.SectorSet
	Pattern         *string
	EnthusiasmInput *int
}
