package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/finboard/finboard/internal/http/budget"
	"github.com/finboard/finboard/internal/http/categorize"
	"github.com/finboard/finboard/internal/http/export"
	"github.com/finboard/finboard/internal/http/goal"
	"github.com/finboard/finboard/internal/http/health"
	"github.com/finboard/finboard/internal/http/importcsv"
	"github.com/finboard/finboard/internal/http/report"
	"github.com/finboard/finboard/internal/http/transaction"
)

// Handlers groups the per-resource handlers mounted by New.
type Handlers struct {
	Transactions  *transaction.Handler
	Import        *importcsv.Handler
	Export        *export.Handler
	Budgets       *budget.Handler
	Goals         *goal.Handler
	Reports       *report.Handler
	CategoryRules *categorize.Handler
	Health        *health.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	h.Health.Routes(router)

	router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Reports.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Group(h.Import.Routes)
			r.Group(h.Export.Routes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Transactions.Routes(r)
			})
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Budgets.Routes(r)
		})

		r.Route("/goals", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Goals.Routes(r)
		})

		r.Route("/category-rules", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.CategoryRules.Routes(r)
		})
	})

	return router
}
