package budget

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finboard/finboard/internal/budget"
	"github.com/finboard/finboard/internal/http/respond"
	"github.com/finboard/finboard/internal/report"
)

type Handler struct {
	budgets *budget.Service
	reports *report.Service
}

func NewHandler(budgets *budget.Service, reports *report.Service) *Handler {
	return &Handler{budgets: budgets, reports: reports}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.progress)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type budgetResponse struct {
	ID        uuid.UUID `json:"id"`
	Category  string    `json:"category"`
	Limit     float64   `json:"limit"`
	Month     string    `json:"month"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:        b.ID,
		Category:  b.Category,
		Limit:     b.Limit,
		Month:     b.Month,
		CreatedAt: b.CreatedAt,
	}
}

type progressResponse struct {
	ID       uuid.UUID `json:"id"`
	Category string    `json:"category"`
	Limit    float64   `json:"limit"`
	Spent    float64   `json:"spent"`
}

func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	progress, err := h.reports.BudgetProgress(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]progressResponse, len(progress))
	for i, p := range progress {
		resp[i] = progressResponse(p)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createBudgetRequest struct {
	Category string           `json:"category"`
	Limit    *decimal.Decimal `json:"limit"`
	Month    string           `json:"month"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBudgetRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	b, err := h.budgets.Create(r.Context(), budget.CreateParams{
		Category: req.Category,
		Limit:    respond.Amount(req.Limit),
		Month:    req.Month,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(b))
}

type updateBudgetRequest struct {
	Category *string          `json:"category,omitempty"`
	Limit    *decimal.Decimal `json:"limit,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req updateBudgetRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	b, err := h.budgets.Update(r.Context(), id, budget.Patch{
		Category: req.Category,
		Limit:    respond.Amount(req.Limit),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.budgets.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Message(w, "Budget deleted")
}
