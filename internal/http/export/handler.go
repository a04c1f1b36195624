package export

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finboard/finboard/internal/export"
	"github.com/finboard/finboard/internal/http/respond"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export", h.download)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	m, txs, err := h.svc.Month(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(m)))

	if err := export.WriteCSV(w, txs); err != nil {
		// Headers are already sent; the client sees a truncated file.
		slog.Error("failed to write export", "month", m.String(), "error", err)
	}
}
