package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeRegistered = "registered"
	OutcomeInvalid    = "invalid"
)

// счетчики отправок формы; регистр свой на каждое приложение, чтобы тесты не конфликтовали
type Metrics struct {
	registry    *prometheus.Registry
	Submissions *prometheus.CounterVec
	FieldErrors *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_submissions_total",
			Help: "Total number of registration form submissions by outcome",
		}, []string{"outcome"}),
		FieldErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_field_errors_total",
			Help: "Total number of field validation failures by field",
		}, []string{"field"}),
	}
}

func (m *Metrics) ObserveSubmission(errs map[string]string) {
	if len(errs) == 0 {
		m.Submissions.WithLabelValues(OutcomeRegistered).Inc()
		return
	}

	m.Submissions.WithLabelValues(OutcomeInvalid).Inc()
	for field := range errs {
		m.FieldErrors.WithLabelValues(field).Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
