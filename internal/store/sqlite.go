package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	apperrors "trading-journal/internal/errors"
	"trading-journal/internal/models"
	"trading-journal/internal/scoring"
	"trading-journal/pkg/id"
	"trading-journal/pkg/utils"
)

// Options tunes the store's timeout and retry behavior.
type Options struct {
	// OpTimeout bounds every persistence call. Expiry surfaces as a
	// StorageError, never an indefinite block.
	OpTimeout time.Duration
	Retry     utils.RetryConfig
	// MigrationSector is where legacy scalar sector sentiments land when a
	// rating is canonicalized on read.
	MigrationSector models.Sector
}

// DefaultOptions returns the store defaults.
func DefaultOptions() Options {
	return Options{
		OpTimeout:       5 * time.Second,
		Retry:           utils.DefaultRetryConfig(),
		MigrationSector: models.SectorUnspecified,
	}
}

// SQLiteStore implements Store using SQLite.
//
// Reads go through the shared connection pool concurrently; writes
// serialize per entity id so concurrent updates cannot interleave between
// load, recompute, and persist.
type SQLiteStore struct {
	db     *sql.DB
	logger zerolog.Logger
	opts   Options
	locks  idLocks
}

// NewSQLiteStore creates a store with default options.
func NewSQLiteStore(dbPath string, logger zerolog.Logger) (*SQLiteStore, error) {
	return NewSQLiteStoreWithOptions(dbPath, logger, DefaultOptions())
}

// NewSQLiteStoreWithOptions creates a store with explicit options.
func NewSQLiteStoreWithOptions(dbPath string, logger zerolog.Logger, opts Options) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if opts.OpTimeout <= 0 {
		opts.OpTimeout = DefaultOptions().OpTimeout
	}
	if opts.Retry.MaxAttempts <= 0 {
		opts.Retry = utils.DefaultRetryConfig()
	}
	if opts.MigrationSector == "" {
		opts.MigrationSector = models.SectorUnspecified
	}

	s := &SQLiteStore{
		db:     db,
		logger: logger,
		opts:   opts,
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// initSchema creates the journal tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS trades (
		id TEXT PRIMARY KEY,
		entry_date DATETIME NOT NULL,
		ticker TEXT NOT NULL,
		sector TEXT,
		entry_price REAL NOT NULL,
		notes TEXT,
		expiration_date DATETIME,
		strategy_type TEXT,
		spread_type TEXT,
		direction TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS risk_assessments (
		id TEXT PRIMARY KEY,
		date DATETIME NOT NULL,
		emotional INTEGER NOT NULL,
		fomo INTEGER NOT NULL,
		bias INTEGER NOT NULL,
		physical INTEGER NOT NULL,
		pnl INTEGER NOT NULL,
		overall_score REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS stock_ratings (
		id TEXT PRIMARY KEY,
		date DATETIME NOT NULL,
		ticker TEXT NOT NULL,
		market_sentiment INTEGER NOT NULL,
		sector_kind TEXT NOT NULL,
		sector_scalar INTEGER,
		sectors TEXT,
		pattern TEXT,
		enthusiasm_input INTEGER NOT NULL,
		stock_sentiment REAL NOT NULL,
		enthusiasm_rating INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_trades_entry_date ON trades(entry_date);
	CREATE INDEX IF NOT EXISTS idx_trades_ticker ON trades(ticker);
	CREATE INDEX IF NOT EXISTS idx_risk_date ON risk_assessments(date);
	CREATE INDEX IF NOT EXISTS idx_ratings_date ON stock_ratings(date);
	CREATE INDEX IF NOT EXISTS idx_ratings_ticker ON stock_ratings(ticker);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// idLocks serializes writes per entity id.
type idLocks struct {
	mu   sync.Mutex
	held map[string]*sync.Mutex
}

func (l *idLocks) acquire(key string) *sync.Mutex {
	l.mu.Lock()
	if l.held == nil {
		l.held = make(map[string]*sync.Mutex)
	}
	m, ok := l.held[key]
	if !ok {
		m = &sync.Mutex{}
		l.held[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}

// withTimeout bounds a persistence call with the configured op timeout.
func (s *SQLiteStore) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opts.OpTimeout)
}

// storageErr converts a low-level failure into the store's error type,
// marking timeouts explicitly.
func (s *SQLiteStore) storageErr(ctx context.Context, op string, kind models.Kind, err error) error {
	msg := "persistence failure"
	if ctx.Err() == context.DeadlineExceeded {
		msg = "operation timed out"
		err = fmt.Errorf("%w: %w", apperrors.ErrTimeout, err)
	}
	s.logger.Error().Err(err).Str("op", op).Str("kind", string(kind)).Msg("store operation failed")
	return apperrors.NewStorageError(op, string(kind), msg, err)
}

// execRetry runs a write with the bounded backoff policy.
func (s *SQLiteStore) execRetry(ctx context.Context, fn func() error) error {
	return utils.Retry(ctx, s.opts.Retry, fn)
}

// ============================================================================
// Trades
// ============================================================================

// CreateTrade validates, assigns a fresh id, and persists the trade.
// Any client-supplied id is ignored.
func (s *SQLiteStore) CreateTrade(ctx context.Context, t *models.Trade) (string, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}
	t.ID = id.New()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.execRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO trades
			(id, entry_date, ticker, sector, entry_price, notes, expiration_date, strategy_type, spread_type, direction)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.EntryDate, t.Ticker, t.Sector, t.EntryPrice, t.Notes,
			nullableTime(t.ExpirationDate), t.StrategyType, t.SpreadType, string(t.Direction),
		)
		return err
	})
	if err != nil {
		return "", s.storageErr(ctx, "create", models.KindTrade, err)
	}

	s.logger.Debug().Str("id", t.ID).Str("ticker", t.Ticker).Msg("trade created")
	return t.ID, nil
}

// GetTrade returns the trade with the given id.
func (s *SQLiteStore) GetTrade(ctx context.Context, tradeID string) (*models.Trade, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.getTrade(ctx, tradeID)
}

func (s *SQLiteStore) getTrade(ctx context.Context, tradeID string) (*models.Trade, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, entry_date, ticker, sector, entry_price, notes, expiration_date, strategy_type, spread_type, direction
		FROM trades WHERE id = ?`, tradeID)

	t, err := scanTrade(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(string(models.KindTrade), tradeID)
	}
	if err != nil {
		return nil, s.storageErr(ctx, "get", models.KindTrade, err)
	}
	return t, nil
}

// UpdateTrade merges the patch onto the stored trade, re-validates, and
// persists the result. Ticker and EntryDate cannot be patched.
func (s *SQLiteStore) UpdateTrade(ctx context.Context, tradeID string, patch TradePatch) (*models.Trade, error) {
	lock := s.locks.acquire(tradeID)
	defer lock.Unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	t, err := s.getTrade(ctx, tradeID)
	if err != nil {
		return nil, err
	}

	if patch.Sector != nil {
		t.Sector = *patch.Sector
	}
	if patch.EntryPrice != nil {
		t.EntryPrice = *patch.EntryPrice
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
	if patch.ExpirationDate != nil {
		t.ExpirationDate = *patch.ExpirationDate
	}
	if patch.StrategyType != nil {
		t.StrategyType = *patch.StrategyType
	}
	if patch.SpreadType != nil {
		t.SpreadType = *patch.SpreadType
	}
	if patch.Direction != nil {
		t.Direction = *patch.Direction
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	err = s.execRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE trades
			SET sector = ?, entry_price = ?, notes = ?, expiration_date = ?, strategy_type = ?, spread_type = ?, direction = ?
			WHERE id = ?`,
			t.Sector, t.EntryPrice, t.Notes, nullableTime(t.ExpirationDate),
			t.StrategyType, t.SpreadType, string(t.Direction), t.ID,
		)
		return err
	})
	if err != nil {
		return nil, s.storageErr(ctx, "update", models.KindTrade, err)
	}
	return t, nil
}

// DeleteTrade removes the trade. Deleting an absent id is a no-op.
func (s *SQLiteStore) DeleteTrade(ctx context.Context, tradeID string) error {
	lock := s.locks.acquire(tradeID)
	defer lock.Unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.execRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, tradeID)
		return err
	})
	if err != nil {
		return s.storageErr(ctx, "delete", models.KindTrade, err)
	}
	return nil
}

// ListTrades returns trades with entry date in [from, to], ordered by
// entry date ascending, id ascending.
func (s *SQLiteStore) ListTrades(ctx context.Context, from, to time.Time) ([]models.Trade, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, entry_date, ticker, sector, entry_price, notes, expiration_date, strategy_type, spread_type, direction
		FROM trades
		WHERE entry_date >= ? AND entry_date <= ?
		ORDER BY entry_date ASC, id ASC`, from, to)
	if err != nil {
		return nil, s.storageErr(ctx, "list", models.KindTrade, err)
	}
	defer rows.Close()

	var out []models.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, s.storageErr(ctx, "list", models.KindTrade, err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, s.storageErr(ctx, "list", models.KindTrade, err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row rowScanner) (*models.Trade, error) {
	var (
		t          models.Trade
		expiration sql.NullTime
		direction  string
	)
	err := row.Scan(
		&t.ID, &t.EntryDate, &t.Ticker, &t.Sector, &t.EntryPrice,
		&t.Notes, &expiration, &t.StrategyType, &t.SpreadType, &direction,
	)
	if err != nil {
		return nil, err
	}
	if expiration.Valid {
		t.ExpirationDate = expiration.Time
	}
	t.Direction = models.Direction(direction)
	return &t, nil
}

func nullableTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}

// ============================================================================
// Risk assessments
// ============================================================================

// CreateRiskAssessment validates, recomputes the overall score, assigns a
// fresh id, and persists the assessment.
func (s *SQLiteStore) CreateRiskAssessment(ctx context.Context, ra *models.RiskAssessment) (string, error) {
	if err := ra.Validate(); err != nil {
		return "", err
	}
	scoring.RescoreRisk(ra)
	ra.ID = id.New()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.execRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO risk_assessments
			(id, date, emotional, fomo, bias, physical, pnl, overall_score)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ra.ID, ra.Date, ra.Emotional, ra.Fomo, ra.Bias, ra.Physical, ra.Pnl, ra.OverallScore,
		)
		return err
	})
	if err != nil {
		return "", s.storageErr(ctx, "create", models.KindRisk, err)
	}

	s.logger.Debug().Str("id", ra.ID).Float64("overall_score", ra.OverallScore).Msg("risk assessment created")
	return ra.ID, nil
}

// GetRiskAssessment returns the assessment with the given id.
func (s *SQLiteStore) GetRiskAssessment(ctx context.Context, raID string) (*models.RiskAssessment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.getRiskAssessment(ctx, raID)
}

func (s *SQLiteStore) getRiskAssessment(ctx context.Context, raID string) (*models.RiskAssessment, error) {
	var ra models.RiskAssessment
	err := s.db.QueryRowContext(ctx, `
		SELECT id, date, emotional, fomo, bias, physical, pnl, overall_score
		FROM risk_assessments WHERE id = ?`, raID).Scan(
		&ra.ID, &ra.Date, &ra.Emotional, &ra.Fomo, &ra.Bias, &ra.Physical, &ra.Pnl, &ra.OverallScore,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(string(models.KindRisk), raID)
	}
	if err != nil {
		return nil, s.storageErr(ctx, "get", models.KindRisk, err)
	}
	return &ra, nil
}

// UpdateRiskAssessment merges the patch, re-validates, recomputes the
// overall score, and persists.
func (s *SQLiteStore) UpdateRiskAssessment(ctx context.Context, raID string, patch RiskPatch) (*models.RiskAssessment, error) {
	lock := s.locks.acquire(raID)
	defer lock.Unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	ra, err := s.getRiskAssessment(ctx, raID)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil {
		ra.Date = *patch.Date
	}
	if patch.Emotional != nil {
		ra.Emotional = *patch.Emotional
	}
	if patch.Fomo != nil {
		ra.Fomo = *patch.Fomo
	}
	if patch.Bias != nil {
		ra.Bias = *patch.Bias
	}
	if patch.Physical != nil {
		ra.Physical = *patch.Physical
	}
	if patch.Pnl != nil {
		ra.Pnl = *patch.Pnl
	}

	if err := ra.Validate(); err != nil {
		return nil, err
	}
	scoring.RescoreRisk(ra)

	err = s.execRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE risk_assessments
			SET date = ?, emotional = ?, fomo = ?, bias = ?, physical = ?, pnl = ?, overall_score = ?
			WHERE id = ?`,
			ra.Date, ra.Emotional, ra.Fomo, ra.Bias, ra.Physical, ra.Pnl, ra.OverallScore, ra.ID,
		)
		return err
	})
	if err != nil {
		return nil, s.storageErr(ctx, "update", models.KindRisk, err)
	}
	return ra, nil
}

// DeleteRiskAssessment removes the assessment. Idempotent.
func (s *SQLiteStore) DeleteRiskAssessment(ctx context.Context, raID string) error {
	lock := s.locks.acquire(raID)
	defer lock.Unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.execRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM risk_assessments WHERE id = ?`, raID)
		return err
	})
	if err != nil {
		return s.storageErr(ctx, "delete", models.KindRisk, err)
	}
	return nil
}

// ListRiskAssessments returns assessments dated in [from, to], ordered by
// date ascending, id ascending.
func (s *SQLiteStore) ListRiskAssessments(ctx context.Context, from, to time.Time) ([]models.RiskAssessment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, emotional, fomo, bias, physical, pnl, overall_score
		FROM risk_assessments
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, id ASC`, from, to)
	if err != nil {
		return nil, s.storageErr(ctx, "list", models.KindRisk, err)
	}
	defer rows.Close()

	var out []models.RiskAssessment
	for rows.Next() {
		var ra models.RiskAssessment
		if err := rows.Scan(&ra.ID, &ra.Date, &ra.Emotional, &ra.Fomo, &ra.Bias, &ra.Physical, &ra.Pnl, &ra.OverallScore); err != nil {
			return nil, s.storageErr(ctx, "list", models.KindRisk, err)
		}
		out = append(out, ra)
	}
	if err := rows.Err(); err != nil {
		return nil, s.storageErr(ctx, "list", models.KindRisk, err)
	}
	return out, nil
}

// ============================================================================
// Stock ratings
// ============================================================================

// CreateStockRating validates, recomputes sentiment and enthusiasm,
// assigns a fresh id, and persists the rating.
func (s *SQLiteStore) CreateStockRating(ctx context.Context, sr *models.StockRating) (string, error) {
	if err := sr.Validate(); err != nil {
		return "", err
	}
	scoring.Rescore(sr)
	sr.ID = id.New()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	breakdown, err := marshalBreakdown(sr.Sectors)
	if err != nil {
		return "", s.storageErr(ctx, "create", models.KindRating, err)
	}

	err = s.execRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO stock_ratings
			(id, date, ticker, market_sentiment, sector_kind, sector_scalar, sectors, pattern, enthusiasm_input, stock_sentiment, enthusiasm_rating)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sr.ID, sr.Date, sr.Ticker, sr.MarketSentiment, string(sr.Sectors.Kind),
			sr.Sectors.Scalar, breakdown, sr.Pattern, sr.EnthusiasmInput,
			sr.StockSentiment, sr.EnthusiasmRating,
		)
		return err
	})
	if err != nil {
		return "", s.storageErr(ctx, "create", models.KindRating, err)
	}

	s.logger.Debug().Str("id", sr.ID).Str("ticker", sr.Ticker).Float64("stock_sentiment", sr.StockSentiment).Msg("stock rating created")
	return sr.ID, nil
}

// GetStockRating returns the rating with the given id.
func (s *SQLiteStore) GetStockRating(ctx context.Context, srID string) (*models.StockRating, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.getStockRating(ctx, srID)
}

func (s *SQLiteStore) getStockRating(ctx context.Context, srID string) (*models.StockRating, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, ticker, market_sentiment, sector_kind, sector_scalar, sectors, pattern, enthusiasm_input, stock_sentiment, enthusiasm_rating
		FROM stock_ratings WHERE id = ?`, srID)

	sr, err := scanStockRating(row)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(string(models.KindRating), srID)
	}
	if err != nil {
		return nil, s.storageErr(ctx, "get", models.KindRating, err)
	}
	return sr, nil
}

// UpdateStockRating merges the patch, re-validates, recomputes the derived
// sentiment fields, and persists.
func (s *SQLiteStore) UpdateStockRating(ctx context.Context, srID string, patch RatingPatch) (*models.StockRating, error) {
	lock := s.locks.acquire(srID)
	defer lock.Unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	sr, err := s.getStockRating(ctx, srID)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil {
		sr.Date = *patch.Date
	}
	if patch.Ticker != nil {
		sr.Ticker = *patch.Ticker
	}
	if patch.MarketSentiment != nil {
		sr.MarketSentiment = *patch.MarketSentiment
	}
	if patch.Sectors != nil {
		sr.Sectors = *patch.Sectors
	}
	if patch.Pattern != nil {
		sr.Pattern = *patch.Pattern
	}
	if patch.EnthusiasmInput != nil {
		sr.EnthusiasmInput = *patch.EnthusiasmInput
	}

	if err := sr.Validate(); err != nil {
		return nil, err
	}
	scoring.Rescore(sr)

	breakdown, err := marshalBreakdown(sr.Sectors)
	if err != nil {
		return nil, s.storageErr(ctx, "update", models.KindRating, err)
	}

	err = s.execRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `
			UPDATE stock_ratings
			SET date = ?, ticker = ?, market_sentiment = ?, sector_kind = ?, sector_scalar = ?, sectors = ?, pattern = ?, enthusiasm_input = ?, stock_sentiment = ?, enthusiasm_rating = ?
			WHERE id = ?`,
			sr.Date, sr.Ticker, sr.MarketSentiment, string(sr.Sectors.Kind),
			sr.Sectors.Scalar, breakdown, sr.Pattern, sr.EnthusiasmInput,
			sr.StockSentiment, sr.EnthusiasmRating, sr.ID,
		)
		return err
	})
	if err != nil {
		return nil, s.storageErr(ctx, "update", models.KindRating, err)
	}
	return sr, nil
}

// DeleteStockRating removes the rating. Idempotent.
func (s *SQLiteStore) DeleteStockRating(ctx context.Context, srID string) error {
	lock := s.locks.acquire(srID)
	defer lock.Unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.execRetry(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `DELETE FROM stock_ratings WHERE id = ?`, srID)
		return err
	})
	if err != nil {
		return s.storageErr(ctx, "delete", models.KindRating, err)
	}
	return nil
}

// ListStockRatings returns ratings dated in [from, to], ordered by date
// ascending, id ascending.
func (s *SQLiteStore) ListStockRatings(ctx context.Context, from, to time.Time) ([]models.StockRating, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, ticker, market_sentiment, sector_kind, sector_scalar, sectors, pattern, enthusiasm_input, stock_sentiment, enthusiasm_rating
		FROM stock_ratings
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC, id ASC`, from, to)
	if err != nil {
		return nil, s.storageErr(ctx, "list", models.KindRating, err)
	}
	defer rows.Close()

	var out []models.StockRating
	for rows.Next() {
		sr, err := scanStockRating(rows)
		if err != nil {
			return nil, s.storageErr(ctx, "list", models.KindRating, err)
		}
		out = append(out, *sr)
	}
	if err := rows.Err(); err != nil {
		return nil, s.storageErr(ctx, "list", models.KindRating, err)
	}
	return out, nil
}

func scanStockRating(row rowScanner) (*models.StockRating, error) {
	var (
		sr        models.StockRating
		kind      string
		scalar    sql.NullInt64
		breakdown sql.NullString
	)
	err := row.Scan(
		&sr.ID, &sr.Date, &sr.Ticker, &sr.MarketSentiment, &kind, &scalar,
		&breakdown, &sr.Pattern, &sr.EnthusiasmInput, &sr.StockSentiment, &sr.EnthusiasmRating,
	)
	if err != nil {
		return nil, err
	}

	switch models.SectorSetKind(kind) {
	case models.SectorSetScalar:
		sr.Sectors = models.NewScalarSectorSet(int(scalar.Int64))
	case models.SectorSetBreakdown:
		values := make(map[models.Sector]int)
		if breakdown.Valid && breakdown.String != "" {
			if err := json.Unmarshal([]byte(breakdown.String), &values); err != nil {
				return nil, fmt.Errorf("corrupt sector breakdown for %s: %w", sr.ID, err)
			}
		}
		sr.Sectors = models.NewSectorBreakdown(values)
	default:
		return nil, fmt.Errorf("unknown sector kind %q for %s", kind, sr.ID)
	}
	return &sr, nil
}

func marshalBreakdown(set models.SectorSet) (interface{}, error) {
	if set.Kind != models.SectorSetBreakdown {
		return nil, nil
	}
	data, err := json.Marshal(set.Breakdown)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}
