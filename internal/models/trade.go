package models

import (
	"time"

	"trading-journal/internal/errors"
)

// Direction indicates which way a position is taken.
type Direction string

const (
	DirectionLong  Direction = "long"
	DirectionShort Direction = "short"
)

// Trade represents a single options/equity position journal entry.
// Ticker and EntryDate are immutable after creation; ExpirationDate is
// optional (zero value means absent).
type Trade struct {
	ID             string
	EntryDate      time.Time
	Ticker         string
	Sector         string
	EntryPrice     float64
	Notes          string
	ExpirationDate time.Time
	StrategyType   string
	SpreadType     string
	Direction      Direction
}

// Validate checks the trade's field contracts.
func (t *Trade) Validate() error {
	if t.Ticker == "" {
		return errors.NewValidationError("ticker", t.Ticker, "must not be empty")
	}
	if t.EntryDate.IsZero() {
		return errors.NewValidationError("entryDate", t.EntryDate, "must be a valid date")
	}
	if t.EntryPrice <= 0 {
		return errors.NewValidationError("entryPrice", t.EntryPrice, "must be positive")
	}
	if !t.ExpirationDate.IsZero() && t.ExpirationDate.Before(t.EntryDate) {
		return errors.NewValidationError("expirationDate", t.ExpirationDate, "must not precede entry date")
	}
	switch t.Direction {
	case "", DirectionLong, DirectionShort:
	default:
		return errors.NewValidationError("direction", t.Direction, "must be long or short")
	}
	return nil
}
