// Package metrics implementa ports.Metrics con contadores Prometheus.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RaphaCalixto/garantia-tech-flow/internal/application/ports"
)

const namespace = "garantia"

var _ ports.Metrics = (*Prometheus)(nil)

// Prometheus registra los contadores en un registry propio (no el global).
type Prometheus struct {
	registry *prometheus.Registry

	movements        *prometheus.CounterVec
	movementUnits    *prometheus.CounterVec
	movementRejected *prometheus.CounterVec
	equipmentCreated *prometheus.CounterVec
	skuRetries       prometheus.Counter
	reports          *prometheus.CounterVec
}

// NewPrometheus crea y registra los contadores, más los collectors de runtime y proceso.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prometheus.NewRegistry(),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "movements_total",
			Help: "Movimientos de equipos aplicados, por tipo.",
		}, []string{"kind"}),
		movementUnits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "movement_units_total",
			Help: "Unidades movidas, por tipo.",
		}, []string{"kind"}),
		movementRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "movements_rejected_total",
			Help: "Movimientos rechazados, por motivo.",
		}, []string{"reason"}),
		equipmentCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "equipment_created_total",
			Help: "Equipos registrados; generated indica SKU asignado por el sistema.",
		}, []string{"generated"}),
		skuRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "sku_retries_total",
			Help: "Reintentos por colisión de SKU generado.",
		}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "reports_generated_total",
			Help: "Reportes y etiquetas generados.",
		}, []string{"kind", "format"}),
	}
	p.registry.MustRegister(
		p.movements, p.movementUnits, p.movementRejected, p.equipmentCreated, p.skuRetries, p.reports,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return p
}

// Handler expone el registry en formato de texto de Prometheus.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

func (p *Prometheus) MovementRegistered(kind string, quantity int) {
	p.movements.WithLabelValues(kind).Inc()
	p.movementUnits.WithLabelValues(kind).Add(float64(quantity))
}

func (p *Prometheus) MovementRejected(reason string) {
	p.movementRejected.WithLabelValues(reason).Inc()
}

func (p *Prometheus) EquipmentCreated(generatedSKU bool) {
	p.equipmentCreated.WithLabelValues(strconv.FormatBool(generatedSKU)).Inc()
}

func (p *Prometheus) SKURetry() { p.skuRetries.Inc() }

func (p *Prometheus) ReportGenerated(kind, format string) {
	p.reports.WithLabelValues(kind, format).Inc()
}
