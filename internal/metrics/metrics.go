// Package metrics содержит Prometheus метрики приложения.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics хранит все метрики приложения.
// Каждый экземпляр регистрирует метрики в собственном registry,
// поэтому несколько App в одном процессе (тесты) не конфликтуют.
type Metrics struct {
	registry *prometheus.Registry

	TeamsRegistered    prometheus.Counter
	RegistrationErrors *prometheus.CounterVec
	EmailsSent         *prometheus.CounterVec
	LoginAttempts      *prometheus.CounterVec
	DispatchDuration   prometheus.Histogram
}

// New создает и регистрирует метрики
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		TeamsRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "invento_teams_registered_total",
			Help: "Total number of successfully registered teams",
		}),
		RegistrationErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "invento_registration_rejected_total",
			Help: "Rejected team registrations by reason",
		}, []string{"reason"}),
		EmailsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "invento_confirmation_emails_total",
			Help: "Confirmation emails by delivery result",
		}, []string{"result"}),
		LoginAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "invento_admin_login_attempts_total",
			Help: "Admin login attempts by outcome",
		}, []string{"outcome"}),
		DispatchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "invento_notification_dispatch_duration_seconds",
			Help:    "Duration of sending confirmation emails to a whole team",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// Handler возвращает HTTP обработчик для GET /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// IncTeamRegistered фиксирует успешную регистрацию
func (m *Metrics) IncTeamRegistered() {
	if m == nil {
		return
	}
	m.TeamsRegistered.Inc()
}

// IncRegistrationRejected фиксирует отклоненную регистрацию
func (m *Metrics) IncRegistrationRejected(reason string) {
	if m == nil {
		return
	}
	m.RegistrationErrors.WithLabelValues(reason).Inc()
}

// AddEmails фиксирует результаты рассылки
func (m *Metrics) AddEmails(sent, failed int) {
	if m == nil {
		return
	}
	m.EmailsSent.WithLabelValues("sent").Add(float64(sent))
	m.EmailsSent.WithLabelValues("failed").Add(float64(failed))
}

// ObserveDispatch фиксирует длительность рассылки в секундах
func (m *Metrics) ObserveDispatch(seconds float64) {
	if m == nil {
		return
	}
	m.DispatchDuration.Observe(seconds)
}

// IncLogin фиксирует исход попытки входа
func (m *Metrics) IncLogin(outcome string) {
	if m == nil {
		return
	}
	m.LoginAttempts.WithLabelValues(outcome).Inc()
}
