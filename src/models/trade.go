package models

import (
	"strings"
	"time"
)

// EntryType indicates the direction of the position.
type EntryType string

const (
	EntryTypeBuy  EntryType = "BUY"
	EntryTypeSell EntryType = "SELL"
)

// Valid reports whether e is one of the known entry types.
func (e EntryType) Valid() bool {
	return e == EntryTypeBuy || e == EntryTypeSell
}

// TradeStatus is derived purely from the presence of a sell price.
type TradeStatus string

const (
	StatusOpen   TradeStatus = "OPEN"
	StatusClosed TradeStatus = "CLOSED"
)

// LogEntry is one timestamped free-text note in a reflective category.
// Entries are append-only; neither field is ever mutated after creation.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Log       string    `json:"log"`
}

// TradeEntry is one journal entry for a single position.
type TradeEntry struct {
	ID        string    `json:"id,omitempty"` // assigned by the backend on creation
	Symbol    string    `json:"symbol"`       // uppercase ticker
	EntryType EntryType `json:"entryType"`
	Capital   float64   `json:"capital"`  // amount deployed
	BuyPrice  float64   `json:"buyPrice"`
	SellPrice *float64  `json:"sellPrice"` // nil while the position is open

	EntryDate Date  `json:"entryDate"`
	ExitDate  *Date `json:"exitDate"` // required once SellPrice is set
	DaysHeld  int   `json:"daysHeld"` // derived; recomputed on every read

	// Reflective note collections, nil until the first entry is written.
	// Ordered by insertion, oldest first.
	BuyReasonLogs []LogEntry `json:"buyReasonLogs"`
	ExitPlanLogs  []LogEntry `json:"exitPlanLogs"`
	MistakeLogs   []LogEntry `json:"mistakeLogs"`
	TakeAwayLogs  []LogEntry `json:"takeAwayLogs"`
}

// Status returns OPEN iff no sell price has been recorded.
func (t *TradeEntry) Status() TradeStatus {
	if t.SellPrice == nil {
		return StatusOpen
	}
	return StatusClosed
}

// Quantity is derived rather than stored: capital / buyPrice.
// Validation rejects non-positive buy prices before a trade is ever
// persisted, so the division is safe on stored trades.
func (t *TradeEntry) Quantity() float64 {
	return t.Capital / t.BuyPrice
}

// ProfitLoss returns the realised profit or loss for a closed trade.
// The second return value is false while the position is open.
func (t *TradeEntry) ProfitLoss() (float64, bool) {
	if t.SellPrice == nil {
		return 0, false
	}
	return (*t.SellPrice - t.BuyPrice) * t.Quantity(), true
}

// ProfitLossPercentage returns the realised P/L as a percentage of the
// buy price. The second return value is false while the position is open.
func (t *TradeEntry) ProfitLossPercentage() (float64, bool) {
	if t.SellPrice == nil {
		return 0, false
	}
	return (*t.SellPrice - t.BuyPrice) / t.BuyPrice * 100, true
}

// RecomputeDaysHeld refreshes the derived DaysHeld field: entry to exit
// for closed trades, entry to today for open ones.
func (t *TradeEntry) RecomputeDaysHeld(today Date) {
	if t.EntryDate.IsZero() {
		t.DaysHeld = 0
		return
	}
	end := today
	if t.ExitDate != nil {
		end = *t.ExitDate
	}
	t.DaysHeld = t.EntryDate.DaysUntil(end)
}

// AppendLog merges new free text into an existing log collection.
// Blank or whitespace-only text leaves the collection untouched (nil
// stays nil); otherwise a fresh entry with the trimmed text and the
// given timestamp is appended at the end. This is the only mutation a
// log collection ever sees.
func AppendLog(existing []LogEntry, text string, now time.Time) []LogEntry {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return existing
	}
	return append(existing, LogEntry{Timestamp: now, Log: trimmed})
}
