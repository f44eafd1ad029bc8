package validation

import (
	"testing"
	"time"

	"github.com/dkarthick-works/sudden/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = models.Date{Year: 2025, Month: time.March, Day: 31}

func floatPtr(f float64) *float64 { return &f }

func datePtr(d models.Date) *models.Date { return &d }

func validTrade() *models.TradeEntry {
	return &models.TradeEntry{
		Symbol:    "AAPL",
		EntryType: models.EntryTypeBuy,
		Capital:   1000,
		BuyPrice:  100,
		EntryDate: models.Date{Year: 2025, Month: time.March, Day: 1},
	}
}

func TestValidTradePasses(t *testing.T) {
	assert.Nil(t, ValidateTradeEntry(validTrade(), today))
}

func TestRequiredFields(t *testing.T) {
	errs := ValidateTradeEntry(&models.TradeEntry{}, today)
	require.NotNil(t, errs)

	assert.Equal(t, "Symbol is required", errs["symbol"])
	assert.Equal(t, "Entry type is required", errs["entryType"])
	assert.Equal(t, "Capital must be greater than zero", errs["capital"])
	assert.Equal(t, "Buy price must be greater than zero", errs["buyPrice"])
	assert.Equal(t, "Entry date is required", errs["entryDate"])
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	trade := validTrade()
	trade.Capital = -5
	trade.BuyPrice = 0

	errs := ValidateTradeEntry(trade, today)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "capital")
	assert.Contains(t, errs, "buyPrice")
}

func TestFutureEntryDateRejected(t *testing.T) {
	trade := validTrade()
	trade.EntryDate = today.AddDays(1)

	errs := ValidateTradeEntry(trade, today)
	require.NotNil(t, errs)
	assert.Equal(t, "Entry date must not be in the future", errs["entryDate"])
}

func TestEntryDateTodayAccepted(t *testing.T) {
	trade := validTrade()
	trade.EntryDate = today
	assert.Nil(t, ValidateTradeEntry(trade, today))
}

func TestSellPriceWithoutExitDateRejected(t *testing.T) {
	trade := validTrade()
	trade.SellPrice = floatPtr(120)

	errs := ValidateTradeEntry(trade, today)
	require.NotNil(t, errs)
	assert.Equal(t, "Exit date is required when a sell price is set", errs["exitDate"])
}

func TestExitDateBeforeEntryRejected(t *testing.T) {
	trade := validTrade()
	trade.SellPrice = floatPtr(120)
	trade.ExitDate = datePtr(models.Date{Year: 2025, Month: time.February, Day: 20})

	errs := ValidateTradeEntry(trade, today)
	require.NotNil(t, errs)
	assert.Equal(t, "Exit date must not be before the entry date", errs["exitDate"])
}

func TestFutureExitDateRejected(t *testing.T) {
	trade := validTrade()
	trade.SellPrice = floatPtr(120)
	trade.ExitDate = datePtr(today.AddDays(2))

	errs := ValidateTradeEntry(trade, today)
	require.NotNil(t, errs)
	assert.Equal(t, "Exit date must not be in the future", errs["exitDate"])
}

func TestAllErrorsSurfacedTogether(t *testing.T) {
	trade := &models.TradeEntry{
		EntryType: "HOLD",
		Capital:   -1,
		SellPrice: floatPtr(-3),
		EntryDate: today.AddDays(5),
	}

	errs := ValidateTradeEntry(trade, today)
	require.NotNil(t, errs)
	// One message per failing field, collected in a single pass.
	assert.Len(t, errs, 7)
	assert.Contains(t, errs, "exitDate")
	assert.Contains(t, errs, "symbol")
	assert.Contains(t, errs, "entryType")
	assert.Contains(t, errs, "capital")
	assert.Contains(t, errs, "buyPrice")
	assert.Contains(t, errs, "sellPrice")
	assert.Contains(t, errs, "entryDate")
}

func TestFieldErrorsMessageIsDeterministic(t *testing.T) {
	errs := FieldErrors{"symbol": "Symbol is required", "capital": "Capital must be greater than zero"}
	assert.Equal(t, "Capital must be greater than zero, Symbol is required", errs.Error())
	assert.ErrorIs(t, errs, ErrValidationFailed)
}

func TestSanitizeText(t *testing.T) {
	assert.Equal(t, "bought on earnings beat", SanitizeText("bought on <script>alert(1)</script>earnings beat"))
	assert.Equal(t, "plain note", SanitizeText("plain note"))
}

func TestStripUnprintable(t *testing.T) {
	assert.Equal(t, "line one\nline two", StripUnprintable("line one\nline \x00two"))
}
