package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestContadores(t *testing.T) {
	antes := testutil.ToFloat64(ventasRegistradas.WithLabelValues("BOLETA", "CONTADO"))
	VentaRegistrada("BOLETA", "CONTADO")
	VentaRegistrada("BOLETA", "CONTADO")
	assert.Equal(t, antes+2, testutil.ToFloat64(ventasRegistradas.WithLabelValues("BOLETA", "CONTADO")))

	done := RequestStarted()
	assert.Equal(t, float64(1), testutil.ToFloat64(httpInFlight))
	done()
	assert.Equal(t, float64(0), testutil.ToFloat64(httpInFlight))

	ObserveRequest("get", "", 200, 10*time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues("GET", "desconocida", "200")))

	JobRun("purga", 0, true)
	assert.Equal(t, float64(1), testutil.ToFloat64(jobRuns.WithLabelValues("purga", "true")))
}

func TestHandler(t *testing.T) {
	Login("ok")
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `brickapp_auth_logins_total{resultado="ok"}`))
}
