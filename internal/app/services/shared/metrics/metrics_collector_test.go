package metrics

import (
	"io"
	"medimarket-service/internal/app/models"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorObservers(t *testing.T) {
	c := NewCollector()

	c.ObserveResolution(models.KindDoctor, models.ResolutionResolved)
	c.ObserveResolution(models.KindDoctor, models.ResolutionResolved)
	c.ObserveResolution(models.KindDoctor, models.ResolutionFailed)
	c.ObserveSubmission("book_appointment", "succeeded")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.resolutionsTotal.WithLabelValues("doctor", string(models.ResolutionResolved))))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.resolutionsTotal.WithLabelValues("doctor", string(models.ResolutionFailed))))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.submissionsTotal.WithLabelValues("book_appointment", "succeeded")))
}

func TestCollectorMiddlewareAndHandler(t *testing.T) {
	c := NewCollector()
	router := chi.NewRouter()
	router.Use(c.Middleware)
	router.Get("/wizards/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	router.Method(http.MethodGet, "/metrics", c.Handler())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wizards/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.httpRequestsTotal.WithLabelValues(http.MethodGet, "/wizards/{id}", "404")))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "medimarket_http_requests_total")
}
