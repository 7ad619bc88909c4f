package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Stattrackrr/stattrackr-sub003/pkg/models"
)

// JournalDB defines the interface for journal bet storage
type JournalDB interface {
	Ping(ctx context.Context) error
	CreateBet(ctx context.Context, bet *models.JournalBet) error
	GetBets(ctx context.Context, filters models.JournalFilters) ([]models.JournalBet, error)
	GetBetByID(ctx context.Context, id string) (*models.JournalBet, error)
	SettleBet(ctx context.Context, id string, settle *models.SettleRequest) error
	GetSummary(ctx context.Context) (*models.JournalSummary, error)
	Close() error
}

// JournalPostgres implements JournalDB for PostgreSQL
type JournalPostgres struct {
	db *sql.DB
}

// NewJournalPostgres creates a new journal database client
func NewJournalPostgres(dsn string) (*JournalPostgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &JournalPostgres{db: db}, nil
}

// Ping checks database connectivity
func (j *JournalPostgres) Ping(ctx context.Context) error {
	return j.db.PingContext(ctx)
}

// Close closes the underlying connection pool
func (j *JournalPostgres) Close() error {
	return j.db.Close()
}

// CreateBet inserts a new journal bet
func (j *JournalPostgres) CreateBet(ctx context.Context, bet *models.JournalBet) error {
	var legsJSON []byte
	if len(bet.ParlayLegs) > 0 {
		var err error
		legsJSON, err = json.Marshal(bet.ParlayLegs)
		if err != nil {
			return fmt.Errorf("marshal parlay legs: %w", err)
		}
	}

	query := `
		INSERT INTO journal_bets (
			id, result, stake, odds, stat_type, over_under, player_name,
			selection_text, actual_value, line, parlay_legs, placed_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := j.db.ExecContext(ctx, query,
		bet.ID,
		bet.Result,
		bet.Stake,
		bet.Odds,
		bet.StatType,
		bet.OverUnder,
		bet.PlayerName,
		bet.SelectionText,
		bet.ActualValue,
		bet.Line,
		legsJSON,
		bet.PlacedAt,
	)
	if err != nil {
		return fmt.Errorf("insert journal bet: %w", err)
	}

	return nil
}

// GetBets retrieves journal bets with optional filters, newest first
func (j *JournalPostgres) GetBets(ctx context.Context, filters models.JournalFilters) ([]models.JournalBet, error) {
	query := `
		SELECT id, result, stake, odds, stat_type, over_under, player_name,
		       selection_text, actual_value, line, parlay_legs, placed_at, settled_at
		FROM journal_bets
		WHERE ($1 = '' OR result = $1)
		  AND ($2::timestamptz IS NULL OR placed_at >= $2)
		  AND ($3::timestamptz IS NULL OR placed_at <= $3)
		ORDER BY placed_at DESC
		LIMIT $4 OFFSET $5
	`

	limit := filters.Limit
	if limit <= 0 {
		limit = 500
	}

	rows, err := j.db.QueryContext(ctx, query, filters.Result, filters.Since, filters.Until, limit, filters.Offset)
	if err != nil {
		return nil, fmt.Errorf("query journal bets: %w", err)
	}
	defer rows.Close()

	bets := []models.JournalBet{}
	for rows.Next() {
		bet, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		bets = append(bets, *bet)
	}

	return bets, rows.Err()
}

// GetBetByID retrieves a single journal bet; nil when not found
func (j *JournalPostgres) GetBetByID(ctx context.Context, id string) (*models.JournalBet, error) {
	query := `
		SELECT id, result, stake, odds, stat_type, over_under, player_name,
		       selection_text, actual_value, line, parlay_legs, placed_at, settled_at
		FROM journal_bets
		WHERE id = $1
	`

	rows, err := j.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("query journal bet: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanBet(rows)
}

// SettleBet records the outcome of a pending bet
func (j *JournalPostgres) SettleBet(ctx context.Context, id string, settle *models.SettleRequest) error {
	query := `
		UPDATE journal_bets
		SET result = $2, actual_value = $3, settled_at = NOW()
		WHERE id = $1
	`

	res, err := j.db.ExecContext(ctx, query, id, settle.Result, settle.ActualValue)
	if err != nil {
		return fmt.Errorf("settle journal bet: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("settle journal bet: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// GetSummary computes aggregate P&L over the settled ledger
func (j *JournalPostgres) GetSummary(ctx context.Context) (*models.JournalSummary, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE result IN ('win', 'loss')),
			COUNT(*) FILTER (WHERE result = 'win'),
			COUNT(*) FILTER (WHERE result = 'loss'),
			COALESCE(SUM(stake) FILTER (WHERE result IN ('win', 'loss')), 0),
			COALESCE(SUM(stake * odds) FILTER (WHERE result = 'win'), 0)
		FROM journal_bets
	`

	var s models.JournalSummary
	err := j.db.QueryRowContext(ctx, query).Scan(
		&s.TotalBets,
		&s.SettledBets,
		&s.Wins,
		&s.Losses,
		&s.TotalWagered,
		&s.TotalReturned,
	)
	if err != nil {
		return nil, fmt.Errorf("query journal summary: %w", err)
	}

	s.NetProfit = s.TotalReturned - s.TotalWagered
	if s.SettledBets > 0 {
		s.WinRatePct = 100 * float64(s.Wins) / float64(s.SettledBets)
	}
	if s.TotalWagered > 0 {
		s.ROIPct = 100 * s.NetProfit / s.TotalWagered
	}

	return &s, nil
}

// scanBet reads one journal bet row, translating nullable columns
func scanBet(rows *sql.Rows) (*models.JournalBet, error) {
	var bet models.JournalBet
	var statType, overUnder, playerName sql.NullString
	var actualValue, line sql.NullFloat64
	var legsJSON []byte
	var settledAt sql.NullTime

	err := rows.Scan(
		&bet.ID,
		&bet.Result,
		&bet.Stake,
		&bet.Odds,
		&statType,
		&overUnder,
		&playerName,
		&bet.SelectionText,
		&actualValue,
		&line,
		&legsJSON,
		&bet.PlacedAt,
		&settledAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan journal bet: %w", err)
	}

	if statType.Valid {
		bet.StatType = &statType.String
	}
	if overUnder.Valid {
		bet.OverUnder = &overUnder.String
	}
	if playerName.Valid {
		bet.PlayerName = &playerName.String
	}
	if actualValue.Valid {
		bet.ActualValue = &actualValue.Float64
	}
	if line.Valid {
		bet.Line = &line.Float64
	}
	if settledAt.Valid {
		bet.SettledAt = &settledAt.Time
	}
	if len(legsJSON) > 0 {
		if err := json.Unmarshal(legsJSON, &bet.ParlayLegs); err != nil {
			return nil, fmt.Errorf("parse parlay legs: %w", err)
		}
	}

	return &bet, nil
}
