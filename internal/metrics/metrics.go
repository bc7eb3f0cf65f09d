package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the relay's collectors. A nil *Metrics is valid and records
// nothing, so services can be built without a registry in tests.
type Metrics struct {
	MessagesSent *prometheus.CounterVec
	SendDuration *prometheus.HistogramVec
	Bookings     *prometheus.CounterVec
	Replies      *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		MessagesSent: f.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_messages_sent_total",
			Help: "Outbound provider sends by result",
		}, []string{"provider", "result"}),
		SendDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "relay_message_send_seconds",
			Help:    "Time taken by one provider send",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"provider"}),
		Bookings: f.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_bookings_total",
			Help: "Booking requests by result",
		}, []string{"result"}),
		Replies: f.NewCounterVec(prometheus.CounterOpts{
			Name: "relay_replies_total",
			Help: "Inbound callbacks by routing outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) ObserveSend(provider string, started time.Time, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.MessagesSent.WithLabelValues(provider, result).Inc()
	m.SendDuration.WithLabelValues(provider).Observe(time.Since(started).Seconds())
}

func (m *Metrics) Booking(result string) {
	if m == nil {
		return
	}
	m.Bookings.WithLabelValues(result).Inc()
}

func (m *Metrics) Reply(outcome string) {
	if m == nil {
		return
	}
	m.Replies.WithLabelValues(outcome).Inc()
}
