// Package handlers provides HTTP handlers for direct market data lookups
// and provider diagnostics.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/verdant-labs/verdant/internal/modules/marketdata"
)

// Resolver is the market data contract needed by the handlers.
type Resolver interface {
	ResolvePrice(symbol string) marketdata.Quote
	ResolveESG(symbol string) marketdata.ESGRecord
}

// ESGProvider exposes the live ESG client's key status and a raw test call
// for the diagnostic endpoint.
type ESGProvider interface {
	Configured() bool
	KeyLength() int
	KeyPreview() string
	TestCall(symbol string) (int, json.RawMessage, error)
}

// Handler handles market data HTTP requests
type Handler struct {
	resolver Resolver
	esg      ESGProvider
	log      zerolog.Logger
}

// NewHandler creates a new market data handler
func NewHandler(resolver Resolver, esg ESGProvider, log zerolog.Logger) *Handler {
	return &Handler{
		resolver: resolver,
		esg:      esg,
		log:      log.With().Str("handler", "marketdata").Logger(),
	}
}

// HandleGetPrice resolves the current price for a symbol. Resolution always
// succeeds; the source label tells the caller which tier answered.
func (h *Handler) HandleGetPrice(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		h.writeError(w, http.StatusBadRequest, "Symbol is required")
		return
	}
	h.writeJSON(w, http.StatusOK, h.resolver.ResolvePrice(symbol))
}

// HandleGetESG resolves the ESG record for a symbol.
func (h *Handler) HandleGetESG(w http.ResponseWriter, r *http.Request) {
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		h.writeError(w, http.StatusBadRequest, "Symbol is required")
		return
	}
	h.writeJSON(w, http.StatusOK, h.resolver.ResolveESG(symbol))
}

const diagnosticSymbol = "MSFT"

type diagnosticResponse struct {
	APIKeyConfigured bool            `json:"apiKeyConfigured"`
	APIKeyLength     int             `json:"apiKeyLength"`
	APIKeyPreview    string          `json:"apiKeyPreview"`
	TestSymbol       string          `json:"testSymbol"`
	TestStatus       int             `json:"testStatus,omitempty"`
	TestResponse     json.RawMessage `json:"testResponse,omitempty"`
	TestError        string          `json:"testError,omitempty"`
	Timestamp        time.Time       `json:"timestamp"`
}

// HandleDiagnostic reports the live ESG provider's key status and the raw
// result of one probe call, so a misconfigured key can be diagnosed without
// reading server logs.
func (h *Handler) HandleDiagnostic(w http.ResponseWriter, r *http.Request) {
	resp := diagnosticResponse{
		APIKeyConfigured: h.esg.Configured(),
		APIKeyLength:     h.esg.KeyLength(),
		APIKeyPreview:    h.esg.KeyPreview(),
		TestSymbol:       diagnosticSymbol,
		Timestamp:        time.Now().UTC(),
	}

	if resp.APIKeyConfigured {
		status, body, err := h.esg.TestCall(diagnosticSymbol)
		resp.TestStatus = status
		resp.TestResponse = body
		if err != nil {
			resp.TestError = err.Error()
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
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
