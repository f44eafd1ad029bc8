package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dkarthick-works/sudden/src/models"
	"github.com/google/uuid"
)

// ErrTradeNotFound is returned when no trade exists for the given id.
var ErrTradeNotFound = errors.New("trade not found")

// TradeRepository persists trade entries. Log collections are stored as
// JSON columns; trades are never deleted, so the write surface is
// insert and full-row update only.
type TradeRepository struct {
	db *sql.DB
}

func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

const tradeColumns = `id, symbol, entry_type, capital, buy_price, sell_price,
	entry_date, exit_date, buy_reason_logs, exit_plan_logs, mistake_logs, take_away_logs`

// Insert stores a new trade and assigns its id.
func (r *TradeRepository) Insert(ctx context.Context, trade *models.TradeEntry) error {
	trade.ID = uuid.New().String()

	logs, err := marshalLogColumns(trade)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO trade_entries
		(`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		trade.ID, trade.Symbol, string(trade.EntryType), trade.Capital, trade.BuyPrice,
		trade.SellPrice, trade.EntryDate, nullableDate(trade.ExitDate),
		logs[0], logs[1], logs[2], logs[3],
	)
	if err != nil {
		return fmt.Errorf("inserting trade entry: %w", err)
	}
	return nil
}

// Update overwrites every mutable column of an existing trade.
func (r *TradeRepository) Update(ctx context.Context, trade *models.TradeEntry) error {
	logs, err := marshalLogColumns(trade)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE trade_entries
		SET symbol = ?, entry_type = ?, capital = ?, buy_price = ?, sell_price = ?,
		    entry_date = ?, exit_date = ?,
		    buy_reason_logs = ?, exit_plan_logs = ?, mistake_logs = ?, take_away_logs = ?,
		    updated_at = ?
		WHERE id = ?`,
		trade.Symbol, string(trade.EntryType), trade.Capital, trade.BuyPrice,
		trade.SellPrice, trade.EntryDate, nullableDate(trade.ExitDate),
		logs[0], logs[1], logs[2], logs[3],
		time.Now().UTC().Format(time.RFC3339), trade.ID,
	)
	if err != nil {
		return fmt.Errorf("updating trade entry %s: %w", trade.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTradeNotFound
	}
	return nil
}

// GetByID fetches a single trade, or ErrTradeNotFound.
func (r *TradeRepository) GetByID(ctx context.Context, id string) (*models.TradeEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trade_entries
		WHERE id = ?`, id)

	trade, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTradeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying trade entry %s: %w", id, err)
	}
	return trade, nil
}

// GetAll returns every trade, newest entry first.
func (r *TradeRepository) GetAll(ctx context.Context) ([]*models.TradeEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trade_entries
		ORDER BY entry_date DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying trade entries: %w", err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

// ClosedBetween returns closed trades whose exit date falls inside the
// inclusive [from, to] range, in exit-date order. This backs the
// dashboard aggregation.
func (r *TradeRepository) ClosedBetween(ctx context.Context, from, to models.Date) ([]*models.TradeEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trade_entries
		WHERE sell_price IS NOT NULL
		  AND exit_date IS NOT NULL
		  AND exit_date BETWEEN ? AND ?
		ORDER BY exit_date ASC, created_at ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("querying closed trades between %s and %s: %w", from, to, err)
	}
	defer rows.Close()

	return collectTrades(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (*models.TradeEntry, error) {
	var (
		trade     models.TradeEntry
		entryType string
		sellPrice sql.NullFloat64
		exitDate  sql.NullString
		logCols   [4]sql.NullString
	)

	err := row.Scan(
		&trade.ID, &trade.Symbol, &entryType, &trade.Capital, &trade.BuyPrice,
		&sellPrice, &trade.EntryDate, &exitDate,
		&logCols[0], &logCols[1], &logCols[2], &logCols[3],
	)
	if err != nil {
		return nil, err
	}

	trade.EntryType = models.EntryType(entryType)
	if sellPrice.Valid {
		trade.SellPrice = &sellPrice.Float64
	}
	if exitDate.Valid && exitDate.String != "" {
		d, err := models.ParseDate(exitDate.String)
		if err != nil {
			return nil, fmt.Errorf("trade %s has malformed exit_date: %w", trade.ID, err)
		}
		trade.ExitDate = &d
	}

	logTargets := []*[]models.LogEntry{
		&trade.BuyReasonLogs, &trade.ExitPlanLogs, &trade.MistakeLogs, &trade.TakeAwayLogs,
	}
	for i, col := range logCols {
		if !col.Valid || col.String == "" {
			continue
		}
		if err := json.Unmarshal([]byte(col.String), logTargets[i]); err != nil {
			return nil, fmt.Errorf("trade %s has malformed log column: %w", trade.ID, err)
		}
	}

	return &trade, nil
}

func collectTrades(rows *sql.Rows) ([]*models.TradeEntry, error) {
	var trades []*models.TradeEntry
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return trades, nil
}

// marshalLogColumns serializes the four log collections in declaration
// order. Empty collections are stored as NULL, not as "[]".
func marshalLogColumns(trade *models.TradeEntry) ([4]any, error) {
	var out [4]any
	for i, logs := range [][]models.LogEntry{
		trade.BuyReasonLogs, trade.ExitPlanLogs, trade.MistakeLogs, trade.TakeAwayLogs,
	} {
		if len(logs) == 0 {
			out[i] = nil
			continue
		}
		raw, err := json.Marshal(logs)
		if err != nil {
			return out, fmt.Errorf("marshalling log entries: %w", err)
		}
		out[i] = string(raw)
	}
	return out, nil
}

func nullableDate(d *models.Date) any {
	if d == nil {
		return nil
	}
	return *d
}
