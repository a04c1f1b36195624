package categorize

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/finboard/finboard/internal/categorize"
	"github.com/finboard/finboard/internal/http/respond"
)

type Handler struct {
	svc *categorize.Service
}

func NewHandler(svc *categorize.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.learn)
	r.Delete("/{id}", h.delete)
}

type ruleResponse struct {
	ID        uuid.UUID `json:"id"`
	Pattern   string    `json:"pattern"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(rule *categorize.Rule) ruleResponse {
	return ruleResponse{
		ID:        rule.ID,
		Pattern:   rule.Pattern,
		Category:  rule.Category,
		CreatedAt: rule.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	rules, err := h.svc.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]ruleResponse, len(rules))
	for i, rule := range rules {
		resp[i] = toResponse(rule)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type learnRequest struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	rule, err := h.svc.Learn(r.Context(), req.Pattern, req.Category)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(rule))
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

	respond.Message(w, "Category rule deleted")
}
