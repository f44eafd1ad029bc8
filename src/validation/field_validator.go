package validation

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/dkarthick-works/sudden/src/models"
)

// ErrValidationFailed is the sentinel wrapped by every validation error.
var ErrValidationFailed = fmt.Errorf("validation failed")

const (
	MaxSymbolLength  = 12
	MaxLogTextLength = 4096
)

// FieldErrors maps a field name to its validation message. All checks
// for a submission run to completion, so every applicable message is
// present at once rather than just the first failure.
type FieldErrors map[string]string

// Error joins the messages in field order into a single string.
func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	msgs := make([]string, 0, len(fe))
	for _, f := range fields {
		msgs = append(msgs, fe[f])
	}
	return strings.Join(msgs, ", ")
}

func (fe FieldErrors) Unwrap() error { return ErrValidationFailed }

// ValidateStringNotEmpty checks that a string is non-blank after trimming.
func ValidateStringNotEmpty(s, fieldName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrValidationFailed, fieldName)
	}
	return nil
}

// ValidateStringMaxLength checks a string's UTF-8 character count.
func ValidateStringMaxLength(s string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(s) > maxLength {
		return fmt.Errorf("%w: %s exceeds maximum length of %d characters", ErrValidationFailed, fieldName, maxLength)
	}
	return nil
}

// ValidateTradeEntry runs every field check on a trade submission
// against the given reference day and collects the failures keyed by
// field. A nil map means the trade is valid.
//
// Non-positive capital and buy price are rejected here, which keeps the
// derived quantity (capital / buyPrice) free of division by zero.
func ValidateTradeEntry(trade *models.TradeEntry, today models.Date) FieldErrors {
	errs := FieldErrors{}

	if strings.TrimSpace(trade.Symbol) == "" {
		errs["symbol"] = "Symbol is required"
	} else if utf8.RuneCountInString(strings.TrimSpace(trade.Symbol)) > MaxSymbolLength {
		errs["symbol"] = fmt.Sprintf("Symbol exceeds maximum length of %d characters", MaxSymbolLength)
	}

	if trade.EntryType == "" {
		errs["entryType"] = "Entry type is required"
	} else if !trade.EntryType.Valid() {
		errs["entryType"] = fmt.Sprintf("Entry type must be %s or %s", models.EntryTypeBuy, models.EntryTypeSell)
	}

	if trade.Capital <= 0 {
		errs["capital"] = "Capital must be greater than zero"
	}

	if trade.BuyPrice <= 0 {
		errs["buyPrice"] = "Buy price must be greater than zero"
	}

	if trade.SellPrice != nil && *trade.SellPrice <= 0 {
		errs["sellPrice"] = "Sell price must be greater than zero"
	}

	validateDates(trade, today, errs)
	validateLogCollections(trade, errs)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateLogCollections bounds each note's length. Entries themselves
// are produced by AppendLog, which already guarantees trimmed,
// non-blank text.
func validateLogCollections(trade *models.TradeEntry, errs FieldErrors) {
	collections := map[string][]models.LogEntry{
		"buyReasonLogs": trade.BuyReasonLogs,
		"exitPlanLogs":  trade.ExitPlanLogs,
		"mistakeLogs":   trade.MistakeLogs,
		"takeAwayLogs":  trade.TakeAwayLogs,
	}
	for field, logs := range collections {
		for _, entry := range logs {
			if err := ValidateStringMaxLength(entry.Log, MaxLogTextLength, field); err != nil {
				errs[field] = fmt.Sprintf("Log text exceeds maximum length of %d characters", MaxLogTextLength)
				break
			}
		}
	}
}

// validateDates applies the chronological constraints: no future dates,
// exit required once a sell price exists, exit never before entry.
func validateDates(trade *models.TradeEntry, today models.Date, errs FieldErrors) {
	if trade.EntryDate.IsZero() {
		errs["entryDate"] = "Entry date is required"
	} else if trade.EntryDate.After(today) {
		errs["entryDate"] = "Entry date must not be in the future"
	}

	if trade.ExitDate == nil {
		if trade.SellPrice != nil {
			errs["exitDate"] = "Exit date is required when a sell price is set"
		}
		return
	}

	if trade.ExitDate.After(today) {
		errs["exitDate"] = "Exit date must not be in the future"
	} else if !trade.EntryDate.IsZero() && trade.ExitDate.Before(trade.EntryDate) {
		errs["exitDate"] = "Exit date must not be before the entry date"
	}
}
