/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for a browser frontend

ROUTE GROUPS:
  /api/compute          Stateless computation
  /api/dossiers/*       Dossiers, payments, taxes, results, save files
  /api/overdue          Monitored dossiers in arrears
  /api/rates            Default rate table
  /api/scenarios/*      Demo scenarios
  /                     Endpoint index

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/albion/cmd/serve.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultAllowedOrigins are used when none are configured.
var DefaultAllowedOrigins = []string{"http://localhost:5173", "http://localhost:8080"}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	if len(allowedOrigins) == 0 {
		allowedOrigins = DefaultAllowedOrigins
	}

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/compute", h.Compute)

		// Dossier routes
		r.Route("/dossiers", func(r chi.Router) {
			r.Get("/", h.ListDossiers)
			r.Post("/", h.CreateDossier)
			r.Post("/import", h.ImportDossier)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetDossier)
				r.Delete("/", h.DeleteDossier)
				r.Post("/payments", h.AddPayment)
				r.Delete("/payments/{paymentID}", h.DeletePayment)
				r.Post("/taxes", h.AddTax)

				r.Get("/claim", h.GetClaim)
				r.Get("/monitor", h.GetMonitor)
				r.Get("/series", h.GetSeries)
				r.Get("/ledger.csv", h.GetLedgerCSV)
				r.Get("/export", h.ExportDossier)
			})
		})

		r.Get("/overdue", h.ListOverdue)
		r.Get("/rates", h.ListRates)

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
			r.Post("/reset", h.ResetDatabase)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(indexPage))
	})

	return r
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Calculateur Albion</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Calculateur Albion API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/dossiers">/api/dossiers</a> - List dossiers</li>
<li><a href="/api/overdue">/api/overdue</a> - Monitored dossiers in arrears</li>
<li><a href="/api/rates">/api/rates</a> - Late-interest rate table</li>
<li><a href="/api/scenarios">/api/scenarios</a> - List scenarios</li>
</ul>
</body>
</html>`
