package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers market data routes on the router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/market", func(r chi.Router) {
		r.Get("/price", h.HandleGetPrice)
		r.Get("/esg", h.HandleGetESG)
		r.Get("/diagnostic", h.HandleDiagnostic)
	})
}
