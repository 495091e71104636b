package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa los contadores Prometheus de eventos de dominio.
type Metrics struct {
	LittersRecorded   prometheus.Counter
	OffspringRecorded prometheus.Counter
	ReportsGenerated  prometheus.Counter
}

// New crea y registra los contadores en el registry recibido. Se usa un
// registry propio (no el global) para poder levantar más de un router en
// tests sin colisiones de registro.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		LittersRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "breeding_records_litters_recorded_total",
			Help: "Total number of litters recorded",
		}),
		OffspringRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "breeding_records_offspring_recorded_total",
			Help: "Total number of offspring recorded",
		}),
		ReportsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "breeding_records_reports_generated_total",
			Help: "Total number of report generate/merge operations",
		}),
	}
}

func (m *Metrics) IncLittersRecorded() {
	if m == nil {
		return
	}
	m.LittersRecorded.Inc()
}

func (m *Metrics) IncOffspringRecorded() {
	if m == nil {
		return
	}
	m.OffspringRecorded.Inc()
}

func (m *Metrics) IncReportsGenerated() {
	if m == nil {
		return
	}
	m.ReportsGenerated.Inc()
}
