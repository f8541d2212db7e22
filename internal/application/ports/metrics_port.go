package ports

// Metrics puerto de salida para instrumentar los casos de uso.
// El adaptador Prometheus vive en infrastructure/metrics; NopMetrics sirve para tests y CLI.
type Metrics interface {
	// MovementRegistered un movimiento aplicado (kind: incoming|outgoing).
	MovementRegistered(kind string, quantity int)
	// MovementRejected reason: validation|not_found|insufficient|storage|partial.
	MovementRejected(reason string)
	EquipmentCreated(generatedSKU bool)
	SKURetry()
	ReportGenerated(kind, format string)
}

// NopMetrics implementación vacía.
type NopMetrics struct{}

func (NopMetrics) MovementRegistered(string, int) {}
func (NopMetrics) MovementRejected(string)        {}
func (NopMetrics) EquipmentCreated(bool)          {}
func (NopMetrics) SKURetry()                      {}
func (NopMetrics) ReportGenerated(string, string) {}
