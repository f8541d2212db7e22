// Package warranty clasifica la vigencia de una garantía respecto del instante actual.
package warranty

import (
	"math"
	"strconv"
	"time"
)

// Status etiqueta de garantía.
type Status string

const (
	StatusNone     Status = "none"
	StatusValid    Status = "valid"
	StatusExpiring Status = "expiring"
	StatusExpired  Status = "expired"
)

// ExpiringWindow ventana en la que una garantía vigente se considera por vencer.
const ExpiringWindow = 30 * 24 * time.Hour

// Result etiqueta + días entre now y la fecha (techo; negativo si ya venció).
// Days es 0 cuando Status es none.
type Result struct {
	Status Status
	Days   int
}

// Evaluate función pura: nil → none; fecha < now → expired; now ≤ fecha ≤ now+30d → expiring; resto → valid.
func Evaluate(validUntil *time.Time, now time.Time) Result {
	if validUntil == nil {
		return Result{Status: StatusNone}
	}
	d := *validUntil
	days := ceilDays(d.Sub(now))
	switch {
	case d.Before(now):
		return Result{Status: StatusExpired, Days: days}
	case !d.After(now.Add(ExpiringWindow)):
		return Result{Status: StatusExpiring, Days: days}
	default:
		return Result{Status: StatusValid, Days: days}
	}
}

func ceilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

// Label texto para mostrar en pantallas y reportes.
func (r Result) Label() string {
	switch r.Status {
	case StatusExpired:
		return "Garantía vencida"
	case StatusExpiring:
		if r.Days == 1 {
			return "Vence en 1 día"
		}
		return "Vence en " + strconv.Itoa(r.Days) + " días"
	case StatusValid:
		return "Garantía vigente"
	default:
		return "Sin garantía"
	}
}

// ReportLabel etiqueta corta de la columna Estado del reporte de garantías.
func (r Result) ReportLabel() string {
	switch r.Status {
	case StatusExpired:
		return "Vencida"
	case StatusExpiring:
		return "Por vencer"
	case StatusValid:
		return "En garantía"
	default:
		return "Sin garantía"
	}
}
