// Package metrics holds the Prometheus collectors of the feed client.
//
// A nil *Metrics is valid and records nothing, so components can be built
// without a registry in tests.
package metrics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "feed_client"

// Metrics bundles the transport and engine collectors.
type Metrics struct {
	framesSent        prometheus.Counter
	framesDropped     prometheus.Counter
	framesReceived    prometheus.Counter
	reconnectAttempts prometheus.Counter
	phase             *prometheus.GaugeVec

	decodeFailures *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	notices        *prometheus.CounterVec
	posts          prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		framesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "frames_sent_total",
			Help:      "Frames written to the connection.",
		}),
		framesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "frames_dropped_total",
			Help:      "Frames discarded because the connection was not open.",
		}),
		framesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "frames_received_total",
			Help:      "Binary frames read from the connection.",
		}),
		reconnectAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "reconnect_attempts_total",
			Help:      "Reconnect attempts started.",
		}),
		phase: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "transport",
			Name:      "phase",
			Help:      "1 for the current connection phase, 0 otherwise.",
		}, []string{"phase"}),
		decodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "decode_failures_total",
			Help:      "Inbound frames discarded as malformed.",
		}, []string{"kind"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "rejections_total",
			Help:      "Requests rejected by the server.",
		}, []string{"kind"}),
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "notices_total",
			Help:      "Notices raised to observers.",
		}, []string{"type"}),
		posts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "engine",
			Name:      "posts",
			Help:      "Posts currently held.",
		}),
	}

	reg.MustRegister(
		m.framesSent, m.framesDropped, m.framesReceived, m.reconnectAttempts, m.phase,
		m.decodeFailures, m.rejections, m.notices, m.posts,
	)
	return m
}

// FrameSent counts a frame written to the socket.
func (m *Metrics) FrameSent() {
	if m != nil {
		m.framesSent.Inc()
	}
}

// FrameDropped counts a frame discarded by Send.
func (m *Metrics) FrameDropped() {
	if m != nil {
		m.framesDropped.Inc()
	}
}

// FrameReceived counts an inbound binary frame.
func (m *Metrics) FrameReceived() {
	if m != nil {
		m.framesReceived.Inc()
	}
}

// ReconnectAttempt counts a reconnect attempt.
func (m *Metrics) ReconnectAttempt() {
	if m != nil {
		m.reconnectAttempts.Inc()
	}
}

// SetPhase marks current as the active phase among all.
func (m *Metrics) SetPhase(current string, all []string) {
	if m == nil {
		return
	}
	for _, p := range all {
		v := 0.0
		if p == current {
			v = 1
		}
		m.phase.WithLabelValues(p).Set(v)
	}
}

// DecodeFailure counts a malformed inbound frame of the given kind.
func (m *Metrics) DecodeFailure(kind string) {
	if m != nil {
		m.decodeFailures.WithLabelValues(kind).Inc()
	}
}

// Rejection counts a server rejection of the given kind.
func (m *Metrics) Rejection(kind string) {
	if m != nil {
		m.rejections.WithLabelValues(kind).Inc()
	}
}

// Notice counts a notice of the given type.
func (m *Metrics) Notice(typ string) {
	if m != nil {
		m.notices.WithLabelValues(typ).Inc()
	}
}

// SetPosts records the size of the held post collection.
func (m *Metrics) SetPosts(n int) {
	if m != nil {
		m.posts.Set(float64(n))
	}
}

// Handler returns a chi router exposing g on /metrics.
func Handler(g prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return r
}
