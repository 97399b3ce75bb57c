package models

import (
	"time"

	"trading-journal/internal/errors"
)

// RiskAssessment is a dated self-assessment of trading psychology and
// behavior. The five factor scores are raw inputs on the shared scale;
// OverallScore is derived by the scoring engine and never set directly.
type RiskAssessment struct {
	ID        string
	Date      time.Time
	Emotional int
	Fomo      int
	Bias      int
	Physical  int
	Pnl       int

	// Derived, engine-computed.
	OverallScore float64
}

// Validate checks the assessment date and factor ranges.
func (ra *RiskAssessment) Validate() error {
	if ra.Date.IsZero() {
		return errors.NewValidationError("date", ra.Date, "must be a valid date")
	}
	factors := []struct {
		name  string
		value int
	}{
		{"emotional", ra.Emotional},
		{"fomo", ra.Fomo},
		{"bias", ra.Bias},
		{"physical", ra.Physical},
		{"pnl", ra.Pnl},
	}
	for _, f := range factors {
		if !InScale(f.value) {
			return errors.NewValidationError(f.name, f.value, "must be between -3 and +3")
		}
	}
	return nil
}
