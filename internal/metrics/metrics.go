package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultOk    = "ok"
	ResultError = "error"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "code"},
	)
	completionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatbot_completion_duration_seconds",
			Help:    "Duration of model completion requests",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 120},
		},
		[]string{"backend", "result"},
	)
	toolExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_tool_executions_total",
			Help: "Total number of tool executions",
		},
		[]string{"tool", "result"},
	)
	modelUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chatbot_model_up",
			Help: "Whether the model server answered the last probe (1) or not (0)",
		},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, completionDuration, toolExecutions, modelUp)
}

func ObserveRequest(path string, code int) {
	requestsTotal.WithLabelValues(path, strconv.Itoa(code)).Inc()
}

func ObserveCompletion(backend string, start time.Time, err error) {
	completionDuration.WithLabelValues(backend, result(err)).Observe(time.Since(start).Seconds())
}

func ObserveTool(tool string, ok bool) {
	r := ResultOk
	if !ok {
		r = ResultError
	}
	toolExecutions.WithLabelValues(tool, r).Inc()
}

func SetModelUp(up bool) {
	if up {
		modelUp.Set(1)
		return
	}
	modelUp.Set(0)
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOk
}
