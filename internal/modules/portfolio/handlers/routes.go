package handlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes registers portfolio routes on the router
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/funds", func(r chi.Router) {
		r.Get("/", h.HandleListFunds)
		r.Get("/summary", h.HandleGetSummary)
		r.Route("/{fundID}", func(r chi.Router) {
			r.Get("/", h.HandleGetFund)
			r.Post("/refresh", h.HandleRefreshFund)
			r.Post("/positions", h.HandleAddPosition)
			r.Delete("/positions/{positionID}", h.HandleRemovePosition)
		})
	})
	r.Get("/export/csv", h.HandleExportCSV)
}
