package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheus_Contadores(t *testing.T) {
	p := NewPrometheus()

	p.MovementRegistered("outgoing", 3)
	p.MovementRegistered("outgoing", 2)
	p.MovementRejected("insufficient")
	p.EquipmentCreated(true)
	p.SKURetry()
	p.ReportGenerated("warranties", "xlsx")

	assert.Equal(t, 2.0, testutil.ToFloat64(p.movements.WithLabelValues("outgoing")))
	assert.Equal(t, 5.0, testutil.ToFloat64(p.movementUnits.WithLabelValues("outgoing")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.movementRejected.WithLabelValues("insufficient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.equipmentCreated.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.skuRetries))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.reports.WithLabelValues("warranties", "xlsx")))
}

func TestPrometheus_Handler(t *testing.T) {
	p := NewPrometheus()
	p.SKURetry()

	rec := httptest.NewRecorder()
	p.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "garantia_sku_retries_total 1")
}
