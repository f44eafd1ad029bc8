package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/dkarthick-works/sudden/src/daterange"
	"github.com/dkarthick-works/sudden/src/logger"
	"github.com/dkarthick-works/sudden/src/models"
	"github.com/dkarthick-works/sudden/src/services"
	"github.com/dkarthick-works/sudden/src/validation"
	"github.com/go-chi/chi/v5"
)

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type JournalHandler struct {
	journalService services.JournalService
}

func NewJournalHandler(journalService services.JournalService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
	}
}

// RegisterRoutes mounts the journal endpoints on the given router.
// The dashboard route is registered before the id wildcard so
// "dashboard" is never read as a trade id.
func (h *JournalHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.HandleGetAllTrades)
	r.Post("/", h.HandleSaveJournalEntry)
	r.Get("/dashboard", h.HandleGetDashboardData)
	r.Get("/{id}", h.HandleGetTradeByID)
	r.Put("/{id}", h.HandleUpdateTradeByID)
}

func (h *JournalHandler) HandleSaveJournalEntry(w http.ResponseWriter, r *http.Request) {
	var trade models.TradeEntry
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	// Ids are assigned server-side; one smuggled in on create is ignored.
	trade.ID = ""

	saved, err := h.journalService.SaveJournalEntry(r.Context(), &trade)
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to save trade entry")
		return
	}
	writeJSON(w, http.StatusOK, saved, "Journal entry created successfully")
}

func (h *JournalHandler) HandleGetAllTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.journalService.GetAllTrades(r.Context())
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to fetch trades")
		return
	}
	writeJSON(w, http.StatusOK, trades, "All trades fetched successfully")
}

func (h *JournalHandler) HandleGetTradeByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	trade, err := h.journalService.GetTradeByID(r.Context(), id)
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to fetch trade")
		return
	}
	writeJSON(w, http.StatusOK, trade, "Trade fetched successfully")
}

func (h *JournalHandler) HandleUpdateTradeByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var trade models.TradeEntry
	if err := json.NewDecoder(r.Body).Decode(&trade); err != nil {
		sendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.journalService.UpdateTradeEntry(r.Context(), id, &trade)
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to update trade")
		return
	}
	writeJSON(w, http.StatusOK, updated, "Trade updated successfully")
}

func (h *JournalHandler) HandleGetDashboardData(w http.ResponseWriter, r *http.Request) {
	dashboardRange, err := parseDashboardRange(r)
	if err != nil {
		sendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := h.journalService.GetDashboardData(r.Context(), dashboardRange)
	if err != nil {
		h.sendServiceError(w, r, err, "Failed to fetch dashboard data")
		return
	}
	writeJSON(w, http.StatusOK, data, "Dashboard data fetched successfully")
}

// parseDashboardRange binds and checks the fromDate/toDate query
// parameters. The range carries the custom tag: named presets are
// computed by clients, the API only ever sees concrete boundaries.
func parseDashboardRange(r *http.Request) (daterange.Range, error) {
	fromStr := r.URL.Query().Get("fromDate")
	toStr := r.URL.Query().Get("toDate")

	if fromStr == "" {
		return daterange.Range{}, errors.New("fromDate is required")
	}
	if toStr == "" {
		return daterange.Range{}, errors.New("toDate is required")
	}
	if !datePattern.MatchString(fromStr) {
		return daterange.Range{}, errors.New("fromDate must be in yyyy-MM-dd format")
	}
	if !datePattern.MatchString(toStr) {
		return daterange.Range{}, errors.New("toDate must be in yyyy-MM-dd format")
	}

	from, err := models.ParseDate(fromStr)
	if err != nil {
		return daterange.Range{}, err
	}
	to, err := models.ParseDate(toStr)
	if err != nil {
		return daterange.Range{}, err
	}

	return daterange.Range{FromDate: from, ToDate: to, Preset: daterange.PresetCustom}, nil
}

// sendServiceError maps service failures onto the error taxonomy:
// validation problems are 400s, unknown ids are 404s, anything else is
// a 500 with a generic message.
func (h *JournalHandler) sendServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var fieldErrs validation.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		sendJSONError(w, fieldErrs.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrTradeNotFound):
		sendJSONError(w, "Trade not found", http.StatusNotFound)
	case errors.Is(err, services.ErrInvalidDateRange):
		sendJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.FromContext(r.Context()).Error(fallback, "error", err)
		sendJSONError(w, fallback, http.StatusInternalServerError)
	}
}
