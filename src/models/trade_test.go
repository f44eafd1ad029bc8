package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func datePtr(d Date) *Date { return &d }

func TestTradeStatus(t *testing.T) {
	open := &TradeEntry{Symbol: "AAPL", BuyPrice: 100, Capital: 1000}
	assert.Equal(t, StatusOpen, open.Status())

	closed := &TradeEntry{Symbol: "AAPL", BuyPrice: 100, Capital: 1000, SellPrice: floatPtr(120)}
	assert.Equal(t, StatusClosed, closed.Status())
}

func TestProfitLossClosedTrade(t *testing.T) {
	trade := &TradeEntry{
		Symbol:    "AAPL",
		Capital:   1000,
		BuyPrice:  100,
		SellPrice: floatPtr(120),
	}

	pl, ok := trade.ProfitLoss()
	require.True(t, ok)
	assert.Equal(t, 200.0, pl)

	pct, ok := trade.ProfitLossPercentage()
	require.True(t, ok)
	assert.Equal(t, 20.0, pct)
}

func TestProfitLossNegative(t *testing.T) {
	trade := &TradeEntry{
		Symbol:    "TSLA",
		Capital:   500,
		BuyPrice:  50,
		SellPrice: floatPtr(45),
	}

	pl, ok := trade.ProfitLoss()
	require.True(t, ok)
	assert.Equal(t, -50.0, pl)
}

func TestProfitLossAbsentWhileOpen(t *testing.T) {
	trade := &TradeEntry{Symbol: "AAPL", Capital: 1000, BuyPrice: 100}

	_, ok := trade.ProfitLoss()
	assert.False(t, ok)

	_, ok = trade.ProfitLossPercentage()
	assert.False(t, ok)
}

func TestComputeWinRate(t *testing.T) {
	assert.Equal(t, 0.0, ComputeWinRate(0, 0))
	assert.Equal(t, 60.0, ComputeWinRate(3, 5))
	assert.Equal(t, 100.0, ComputeWinRate(4, 4))
}

func TestAppendLogBlankTextIsIdentity(t *testing.T) {
	now := time.Now()

	assert.Nil(t, AppendLog(nil, "", now))
	assert.Nil(t, AppendLog(nil, "   \n\t", now))

	existing := []LogEntry{{Timestamp: now, Log: "first"}}
	assert.Equal(t, existing, AppendLog(existing, "", now))
}

func TestAppendLogCreatesAndAppends(t *testing.T) {
	now := time.Date(2025, 3, 31, 10, 30, 0, 0, time.UTC)

	logs := AppendLog(nil, "  bought the dip  ", now)
	require.Len(t, logs, 1)
	assert.Equal(t, "bought the dip", logs[0].Log)
	assert.Equal(t, now, logs[0].Timestamp)

	later := now.Add(time.Hour)
	logs = AppendLog(logs, "still holding", later)
	require.Len(t, logs, 2)
	assert.Equal(t, "bought the dip", logs[0].Log)
	assert.Equal(t, "still holding", logs[1].Log)
	assert.Equal(t, later, logs[1].Timestamp)
}

func TestRecomputeDaysHeld(t *testing.T) {
	today := Date{Year: 2025, Month: time.March, Day: 31}

	open := &TradeEntry{EntryDate: Date{Year: 2025, Month: time.March, Day: 21}}
	open.RecomputeDaysHeld(today)
	assert.Equal(t, 10, open.DaysHeld)

	closed := &TradeEntry{
		EntryDate: Date{Year: 2025, Month: time.February, Day: 1},
		ExitDate:  datePtr(Date{Year: 2025, Month: time.March, Day: 1}),
	}
	closed.RecomputeDaysHeld(today)
	assert.Equal(t, 28, closed.DaysHeld)
}

func TestDateJSONRoundTrip(t *testing.T) {
	d, err := ParseDate("2025-03-31")
	require.NoError(t, err)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-03-31"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)
}

func TestDateUnmarshalAcceptsInstant(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-03-31T18:45:00Z"`), &d))
	assert.Equal(t, "2025-03-31", d.String())
}

func TestDateCalendarArithmetic(t *testing.T) {
	// Calendar subtraction across a month boundary, not day skipping.
	ref := Date{Year: 2025, Month: time.March, Day: 31}
	assert.Equal(t, "2025-03-01", ref.AddDays(-30).String())

	// Leap year: Feb 2024 has 29 days.
	leap := Date{Year: 2024, Month: time.March, Day: 1}
	assert.Equal(t, "2024-01-31", leap.AddDays(-30).String())
}

func TestTradeJSONShape(t *testing.T) {
	trade := &TradeEntry{
		ID:        "abc",
		Symbol:    "AAPL",
		EntryType: EntryTypeBuy,
		Capital:   1000,
		BuyPrice:  100,
		EntryDate: Date{Year: 2025, Month: time.March, Day: 1},
	}

	raw, err := json.Marshal(trade)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// Absent optional fields serialize as null, not as empty values.
	assert.Nil(t, decoded["sellPrice"])
	assert.Nil(t, decoded["exitDate"])
	assert.Nil(t, decoded["buyReasonLogs"])
	assert.Equal(t, "BUY", decoded["entryType"])
	assert.Equal(t, "2025-03-01", decoded["entryDate"])
}
