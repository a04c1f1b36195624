package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/finboard/finboard/internal/http/respond"
	"github.com/finboard/finboard/internal/report"
)

type Handler struct {
	svc *report.Service
	now func() time.Time
}

// NewHandler returns a handler that evaluates "current month" figures
// against now.
func NewHandler(svc *report.Service, now func() time.Time) *Handler {
	return &Handler{svc: svc, now: now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/dashboard-summary", h.summary)
	r.Get("/stats", h.stats)
	r.Get("/reports", h.categoryReport)
}

type statsResponse struct {
	TotalBalance float64 `json:"saldoTotal"`
	MonthIncome  float64 `json:"receitasMes"`
	MonthExpense float64 `json:"despesasMes"`
	MonthSavings float64 `json:"economiaMes"`
}

type breakdownResponse struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type balancesResponse struct {
	Total   float64 `json:"total"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Savings float64 `json:"savings"`
}

type trendResponse struct {
	Labels      []string  `json:"labels"`
	IncomeData  []float64 `json:"incomeData"`
	ExpenseData []float64 `json:"expenseData"`
}

type summaryResponse struct {
	Balances           balancesResponse  `json:"balances"`
	ExpensesByCategory breakdownResponse `json:"expensesByCategory"`
	IncomeVsExpense    trendResponse     `json:"incomeVsExpense"`
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Stats(r.Context(), h.now())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, statsResponse(s))
}

func (h *Handler) categoryReport(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.CategoryReport(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, breakdownResponse(b))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context(), h.now())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse{
		Balances: balancesResponse{
			Total:   s.Balances.TotalBalance,
			Income:  s.Balances.MonthIncome,
			Expense: s.Balances.MonthExpense,
			Savings: s.Balances.MonthSavings,
		},
		ExpensesByCategory: breakdownResponse(s.ExpensesByCategory),
		IncomeVsExpense: trendResponse{
			Labels:      s.IncomeVsExpense.Labels,
			IncomeData:  s.IncomeVsExpense.Income,
			ExpenseData: s.IncomeVsExpense.Expense,
		},
	})
}
