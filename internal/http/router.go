package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ricardofs/confere/internal/http/importstmt"
	"github.com/ricardofs/confere/internal/http/invoice"
	"github.com/ricardofs/confere/internal/http/recon"
	"github.com/ricardofs/confere/internal/http/statement"
)

func New(
	statementsV1 *statement.Handler,
	invoicesV1 *invoice.Handler,
	importV1 *importstmt.Handler,
	reconciliationV1 *recon.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/statements", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			statementsV1.Routes(r)
		})

		r.Route("/invoices", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			invoicesV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)

		r.Route("/reconciliation", func(r chi.Router) {
			reconciliationV1.Routes(r)
		})
	})

	return router
}
