package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dkarthick-works/sudden/src/daterange"
	"github.com/dkarthick-works/sudden/src/logger"
	"github.com/dkarthick-works/sudden/src/models"
	"github.com/dkarthick-works/sudden/src/repository"
	"github.com/dkarthick-works/sudden/src/validation"
	"github.com/patrickmn/go-cache"
)

var (
	// ErrTradeNotFound is returned for lookups and updates against an
	// id that does not exist.
	ErrTradeNotFound = repository.ErrTradeNotFound

	// ErrInvalidDateRange marks a dashboard request whose boundaries
	// are out of order.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// JournalService defines the core trade-journal operations.
type JournalService interface {
	SaveJournalEntry(ctx context.Context, trade *models.TradeEntry) (*models.TradeEntry, error)
	GetAllTrades(ctx context.Context) ([]*models.TradeEntry, error)
	GetTradeByID(ctx context.Context, id string) (*models.TradeEntry, error)
	UpdateTradeEntry(ctx context.Context, id string, trade *models.TradeEntry) (*models.TradeEntry, error)
	GetDashboardData(ctx context.Context, r daterange.Range) (*models.DashboardData, error)
}

type journalService struct {
	repo           *repository.TradeRepository
	clock          daterange.Clock
	dashboardCache *cache.Cache
}

func NewJournalService(repo *repository.TradeRepository, clock daterange.Clock, dashboardCache *cache.Cache) JournalService {
	return &journalService{
		repo:           repo,
		clock:          clock,
		dashboardCache: dashboardCache,
	}
}

// SaveJournalEntry validates and persists a new trade. The backend
// assigns the id; the symbol is normalized to an uppercase trimmed
// ticker and all note text is sanitized before it is stored.
func (s *journalService) SaveJournalEntry(ctx context.Context, trade *models.TradeEntry) (*models.TradeEntry, error) {
	s.normalize(trade)

	today := models.DateOf(s.clock.Now())
	if errs := validation.ValidateTradeEntry(trade, today); errs != nil {
		return nil, errs
	}

	logger.FromContext(ctx).Info("Saving trade entry", "symbol", trade.Symbol, "entryType", trade.EntryType)

	if err := s.repo.Insert(ctx, trade); err != nil {
		return nil, err
	}
	trade.RecomputeDaysHeld(today)
	s.dashboardCache.Flush()
	return trade, nil
}

func (s *journalService) GetAllTrades(ctx context.Context) ([]*models.TradeEntry, error) {
	trades, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	today := models.DateOf(s.clock.Now())
	for _, trade := range trades {
		trade.RecomputeDaysHeld(today)
	}
	// Callers get an empty list rather than null when nothing is stored.
	if trades == nil {
		trades = []*models.TradeEntry{}
	}
	return trades, nil
}

func (s *journalService) GetTradeByID(ctx context.Context, id string) (*models.TradeEntry, error) {
	trade, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	trade.RecomputeDaysHeld(models.DateOf(s.clock.Now()))
	return trade, nil
}

// UpdateTradeEntry overwrites an existing trade with the submitted
// state. Log collections arrive already merged by the caller via
// models.AppendLog, so the update path persists them as given.
func (s *journalService) UpdateTradeEntry(ctx context.Context, id string, trade *models.TradeEntry) (*models.TradeEntry, error) {
	trade.ID = id
	s.normalize(trade)

	today := models.DateOf(s.clock.Now())
	if errs := validation.ValidateTradeEntry(trade, today); errs != nil {
		return nil, errs
	}

	logger.FromContext(ctx).Info("Updating trade entry", "id", id, "symbol", trade.Symbol)

	if err := s.repo.Update(ctx, trade); err != nil {
		return nil, err
	}
	trade.RecomputeDaysHeld(today)
	s.dashboardCache.Flush()
	return trade, nil
}

// GetDashboardData aggregates closed trades whose exit date falls in
// the given range. Results are cached per range and flushed on every
// write.
func (s *journalService) GetDashboardData(ctx context.Context, r daterange.Range) (*models.DashboardData, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDateRange, err)
	}

	cacheKey := dashboardCacheKey(r)
	if cached, found := s.dashboardCache.Get(cacheKey); found {
		if data, ok := cached.(*models.DashboardData); ok {
			return data, nil
		}
	}

	closedTrades, err := s.repo.ClosedBetween(ctx, r.FromDate, r.ToDate)
	if err != nil {
		return nil, err
	}

	positiveCount := 0
	negativeCount := 0
	netPL := 0.0
	seen := map[string]bool{}
	var symbols []string

	for _, trade := range closedTrades {
		pl, ok := trade.ProfitLoss()
		if !ok {
			continue
		}
		netPL += pl
		if pl > 0 {
			positiveCount++
		} else if pl < 0 {
			negativeCount++
		}
		if !seen[trade.Symbol] {
			seen[trade.Symbol] = true
			symbols = append(symbols, trade.Symbol)
		}
	}
	if symbols == nil {
		symbols = []string{}
	}

	data := &models.DashboardData{
		TotalTrades:              len(closedTrades),
		PositiveTradesCount:      positiveCount,
		NegativeTradesCount:      negativeCount,
		NetRealisedProfitAndLoss: netPL,
		EntitiesTraded:           symbols,
		WinRate:                  models.ComputeWinRate(positiveCount, len(closedTrades)),
	}

	s.dashboardCache.Set(cacheKey, data, cache.DefaultExpiration)
	return data, nil
}

func dashboardCacheKey(r daterange.Range) string {
	return "dashboard:" + r.FromDate.String() + ":" + r.ToDate.String()
}

// normalize scrubs user-supplied text in place: the ticker is
// uppercased and trimmed, note text loses HTML and unprintable runes.
func (s *journalService) normalize(trade *models.TradeEntry) {
	trade.Symbol = strings.ToUpper(strings.TrimSpace(validation.StripUnprintable(validation.SanitizeText(trade.Symbol))))

	for _, logs := range [][]models.LogEntry{
		trade.BuyReasonLogs, trade.ExitPlanLogs, trade.MistakeLogs, trade.TakeAwayLogs,
	} {
		for i := range logs {
			logs[i].Log = strings.TrimSpace(validation.StripUnprintable(validation.SanitizeText(logs[i].Log)))
		}
	}
}
