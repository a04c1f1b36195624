package transaction

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/finboard/finboard/internal/apperr"
	"github.com/finboard/finboard/internal/http/respond"
	"github.com/finboard/finboard/internal/month"
	"github.com/finboard/finboard/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

// Amounts decode from JSON numbers or numeric strings.
type createTransactionRequest struct {
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        *string          `json:"date"`
	Category    string           `json:"category"`
	Type        transaction.Type `json:"type"`
	IsPaid      *bool            `json:"is_paid"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params := transaction.CreateParams{
		Description: req.Description,
		Amount:      respond.Amount(req.Amount),
		Category:    req.Category,
		Type:        req.Type,
		IsPaid:      req.IsPaid,
	}

	if req.Date != nil {
		d, err := transaction.ParseDate(*req.Date)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		params.Date = &d
	}

	tx, err := h.svc.Create(r.Context(), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, ToResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	txs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponseList(txs))
}

func parseFilter(r *http.Request) (transaction.ListFilter, error) {
	q := r.URL.Query()
	filter := transaction.ListFilter{}

	if s := q.Get("month"); s != "" {
		m, err := month.Parse(s)
		if err != nil {
			return filter, err
		}

		filter.StartDate = new(m.First())
		filter.EndDate = new(m.Last())
	}

	if s := q.Get("type"); s != "" {
		t := transaction.Type(strings.ToLower(s))
		if !t.Valid() {
			return filter, apperr.Invalid("type", "must be income or expense")
		}

		filter.Type = &t
	}

	if s := q.Get("category"); s != "" {
		filter.Category = &s
	}

	return filter, nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	tx, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(tx))
}

type updateTransactionRequest struct {
	Description *string           `json:"description,omitempty"`
	Amount      *decimal.Decimal  `json:"amount,omitempty"`
	Date        *string           `json:"date,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Type        *transaction.Type `json:"type,omitempty"`
	IsPaid      *bool             `json:"is_paid,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req updateTransactionRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	patch := transaction.Patch{
		Description: req.Description,
		Amount:      respond.Amount(req.Amount),
		Category:    req.Category,
		Type:        req.Type,
		IsPaid:      req.IsPaid,
	}

	if req.Date != nil {
		d, err := transaction.ParseDate(*req.Date)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		patch.Date = &d
	}

	tx, err := h.svc.Update(r.Context(), id, patch)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponse(tx))
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

	respond.Message(w, "Transaction deleted")
}
