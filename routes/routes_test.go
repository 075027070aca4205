package routes

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rabi-developer/ZMS-sub002/aging"
	"github.com/Rabi-developer/ZMS-sub002/export"
	"github.com/Rabi-developer/ZMS-sub002/handlers"
	"github.com/Rabi-developer/ZMS-sub002/models"
	"github.com/Rabi-developer/ZMS-sub002/observability"
	"github.com/Rabi-developer/ZMS-sub002/repository"
)

type emptySource struct{}

func (emptySource) GetAllConsignment(context.Context, int, int) ([]models.ConsignmentRecord, error) {
	return nil, nil
}
func (emptySource) GetAllPaymentABL(context.Context, int, int) ([]models.PaymentRecord, error) {
	return nil, nil
}
func (emptySource) CreateConsignment(context.Context, *models.ConsignmentRecord) error { return nil }
func (emptySource) CreatePayment(context.Context, *models.PaymentRecord) error         { return nil }

func newTestRouter(opts ...func(*Params)) (http.Handler, *observability.Metrics) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validate := validator.New()
	metrics := observability.NewMetrics()
	settings := aging.NewMemorySettings()
	sessions := aging.NewSessions(func(id string) *aging.Session {
		loader := aging.NewLoader(emptySource{}, emptySource{}, aging.WithObserver(metrics))
		return aging.NewSession(id, loader, &aging.Preferences{Settings: aging.ScopedSettings{Inner: settings, Scope: id}})
	})
	report := &handlers.ReportHandler{Sessions: sessions, Validate: validate, Logger: logger}
	company := repository.NewMemoryInitialRepo()

	p := Params{
		Logger:  logger,
		Metrics: metrics,
		Report:  report,
		Export: &handlers.ExportHandler{
			Reports: report, Exporter: export.NewExporter(nil), Company: company, Metrics: metrics, Logger: logger,
		},
		Consignment: &handlers.ConsignmentHandler{Repo: emptySource{}, Validate: validate, Logger: logger},
		Payment:     &handlers.PaymentHandler{Repo: emptySource{}, Validate: validate, Logger: logger},
		Initial:     &handlers.InitialHandler{Repo: company, Validate: validate, Logger: logger},
		ExportLimit: 2,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return NewRouter(p), metrics
}

func TestHealthzAndSecurityHeaders(t *testing.T) {
	router, _ := newTestRouter()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rr.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflight(t *testing.T) {
	router, _ := newTestRouter()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/aging/filters", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), handlers.SessionHeader)
}

func TestAgingRouteMintsSessionAndRecordsMetrics(t *testing.T) {
	router, metrics := newTestRouter()
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/aging", nil))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Len(t, rr.Header().Get(handlers.SessionHeader), 36)

	scrape := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, scrape.Body.String(), `zms_aging_refresh_total{outcome="ok"} 1`)
	assert.Contains(t, scrape.Body.String(), `zms_http_requests_total{code="200"`)
}

func TestExportRateLimit(t *testing.T) {
	router, _ := newTestRouter()
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/aging/export?format=doc", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		router.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestProductionRedirectsToHTTPS(t *testing.T) {
	router, _ := newTestRouter(func(p *Params) { p.Production = true })

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "http://reports.example.com/healthz", nil))
	assert.Equal(t, http.StatusMovedPermanently, rr.Code)
	assert.Equal(t, "https://reports.example.com/healthz", rr.Header().Get("Location"))

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://reports.example.com/healthz", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}
