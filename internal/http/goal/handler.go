package goal

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finboard/finboard/internal/goal"
	"github.com/finboard/finboard/internal/http/respond"
)

type Handler struct {
	svc *goal.Service
}

func NewHandler(svc *goal.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type goalResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	TargetAmount float64   `json:"target_amount"`
	SavedAmount  float64   `json:"saved_amount"`
	Progress     int       `json:"progress"`
	CreatedAt    time.Time `json:"created_at"`
}

func toResponse(g *goal.Goal) goalResponse {
	return goalResponse{
		ID:           g.ID,
		Name:         g.Name,
		TargetAmount: g.TargetAmount,
		SavedAmount:  g.SavedAmount,
		Progress:     g.Progress(),
		CreatedAt:    g.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	goals, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]goalResponse, len(goals))
	for i, g := range goals {
		resp[i] = toResponse(g)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createGoalRequest struct {
	Name         string           `json:"name"`
	TargetAmount *decimal.Decimal `json:"target_amount"`
	SavedAmount  *decimal.Decimal `json:"saved_amount"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	g, err := h.svc.Create(r.Context(), goal.CreateParams{
		Name:         req.Name,
		TargetAmount: respond.Amount(req.TargetAmount),
		SavedAmount:  respond.Amount(req.SavedAmount),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(g))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	g, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

type updateGoalRequest struct {
	Name         *string          `json:"name,omitempty"`
	TargetAmount *decimal.Decimal `json:"target_amount,omitempty"`
	SavedAmount  *decimal.Decimal `json:"saved_amount,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req updateGoalRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	g, err := h.svc.Update(r.Context(), id, goal.Patch{
		Name:         req.Name,
		TargetAmount: respond.Amount(req.TargetAmount),
		SavedAmount:  respond.Amount(req.SavedAmount),
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(g))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.Message(w, "Goal deleted")
}
