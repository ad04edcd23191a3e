// Package handlers provides HTTP handlers for fund and position management.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/verdant-labs/verdant/internal/modules/portfolio"
)

// Handler handles portfolio HTTP requests
type Handler struct {
	service *portfolio.Service
	log     zerolog.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(service *portfolio.Service, log zerolog.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.With().Str("handler", "portfolio").Logger(),
	}
}

// fundResponse pairs a fund with its derived metrics.
type fundResponse struct {
	portfolio.Fund
	Metrics portfolio.FundMetrics `json:"metrics"`
}

// HandleListFunds returns all funds with their metrics in display order.
func (h *Handler) HandleListFunds(w http.ResponseWriter, r *http.Request) {
	funds := h.service.Funds()

	result := make([]fundResponse, 0, len(funds))
	for _, fund := range funds {
		result = append(result, fundResponse{
			Fund:    fund,
			Metrics: roundFundMetrics(portfolio.ComputeFundMetrics(fund)),
		})
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HandleGetFund returns one fund with its metrics.
func (h *Handler) HandleGetFund(w http.ResponseWriter, r *http.Request) {
	fund, err := h.service.FundByID(chi.URLParam(r, "fundID"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, fundResponse{
		Fund:    fund,
		Metrics: roundFundMetrics(portfolio.ComputeFundMetrics(fund)),
	})
}

// HandleGetSummary returns the portfolio-wide aggregates.
func (h *Handler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	summary := h.service.PortfolioSummary()
	summary.ReturnPercent = round2(summary.ReturnPercent)
	summary.WeightedESGScore = round2(summary.WeightedESGScore)
	h.writeJSON(w, http.StatusOK, summary)
}

type addPositionRequest struct {
	Symbol        string  `json:"symbol"`
	Shares        float64 `json:"shares"`
	PurchasePrice float64 `json:"purchasePrice"`
}

// HandleAddPosition creates a position in the fund after resolving market
// data for its symbol.
func (h *Handler) HandleAddPosition(w http.ResponseWriter, r *http.Request) {
	var req addPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pos, err := h.service.AddPosition(chi.URLParam(r, "fundID"), req.Symbol, req.Shares, req.PurchasePrice)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, pos)
}

// HandleRemovePosition deletes a position and refunds its cost basis.
// Removing an already-removed position succeeds (no-op).
func (h *Handler) HandleRemovePosition(w http.ResponseWriter, r *http.Request) {
	err := h.service.RemovePosition(chi.URLParam(r, "fundID"), chi.URLParam(r, "positionID"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRefreshFund re-resolves market data for every position in the fund.
func (h *Handler) HandleRefreshFund(w http.ResponseWriter, r *http.Request) {
	fund, err := h.service.RefreshFund(chi.URLParam(r, "fundID"))
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, fundResponse{
		Fund:    fund,
		Metrics: roundFundMetrics(portfolio.ComputeFundMetrics(fund)),
	})
}

// HandleExportCSV streams the portfolio as a CSV attachment.
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("portfolio-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := portfolio.WriteCSV(w, h.service.Funds()); err != nil {
		h.log.Error().Err(err).Msg("Failed to write CSV export")
	}
}

// writeServiceError maps service errors onto HTTP statuses.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, portfolio.ErrFundNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, portfolio.ErrInvalidInput), errors.Is(err, portfolio.ErrInsufficientCash):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Msg("Unexpected service error")
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

// Percentages and scores are rounded to two decimals for display only;
// internal computation keeps full precision.
func roundFundMetrics(m portfolio.FundMetrics) portfolio.FundMetrics {
	m.ReturnPercent = round2(m.ReturnPercent)
	m.WeightedESGScore = round2(m.WeightedESGScore)
	return m
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
