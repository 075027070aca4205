package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/Rabi-developer/ZMS-sub002/handlers"
	"github.com/Rabi-developer/ZMS-sub002/observability"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*") // Replace * with your domain in production
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+handlers.SessionHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, "+handlers.SessionHeader)

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Params groups the handlers and middleware dependencies of the router.
type Params struct {
	Logger      *slog.Logger
	Metrics     *observability.Metrics
	Production  bool
	ExportLimit int

	Report      *handlers.ReportHandler
	Export      *handlers.ExportHandler
	Consignment *handlers.ConsignmentHandler
	Payment     *handlers.PaymentHandler
	Initial     *handlers.InitialHandler
}

func NewRouter(p Params) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        p.Production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
	})

	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		chimw.RequestID,
		handlers.RecoverWrapper(p.Logger),
		withCORS,
		secureMiddleware.Handler,
		p.Metrics.Middleware,
	)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", p.Metrics.Handler())

	// Aging report, one state per browser session
	r.Route("/aging", func(r chi.Router) {
		r.Use(handlers.SessionMiddleware)

		r.Get("/", p.Report.GetReport)
		r.Post("/refresh", p.Report.Refresh)
		r.Put("/filters", p.Report.SetFilters)
		r.Delete("/filters", p.Report.ClearFilters)
		r.Get("/columns", p.Report.GetColumns)
		r.Post("/columns/{key}/toggle", p.Report.ToggleColumn)
		r.Post("/columns/{key}/up", p.Report.MoveColumnUp)
		r.Post("/columns/{key}/down", p.Report.MoveColumnDown)
		r.Put("/columns/{key}/filter", p.Report.SetColumnFilter)
		r.Get("/columns/{key}/options", p.Report.GetColumnOptions)

		limit := p.ExportLimit
		if limit <= 0 {
			limit = 10
		}
		r.With(httprate.Limit(limit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))).
			Get("/export", p.Export.Export)
	})

	// Source records
	r.Get("/consignments", p.Consignment.GetAllConsignment)
	r.Post("/consignments", p.Consignment.CreateConsignment)
	r.Get("/payments", p.Payment.GetAllPaymentABL)
	r.Post("/payments", p.Payment.CreatePayment)

	// Initial setup routes
	r.Get("/initial", p.Initial.GetInitial)
	r.Post("/initial", p.Initial.SaveInitial)

	return r
}
