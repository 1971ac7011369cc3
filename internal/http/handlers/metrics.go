package handlers

import (
	"fmt"
	"net/http"

	"ats/internal/http/metrics"
)

type MetricsHandler struct {
	collector *metrics.Collector
}

func NewMetricsHandler(collector *metrics.Collector) *MetricsHandler {
	return &MetricsHandler{collector: collector}
}

func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	requests, errors := h.collector.Snapshot()
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	fmt.Fprintf(w, "# TYPE http_requests_total counter\nhttp_requests_total %d\n", requests)
	fmt.Fprintf(w, "# TYPE http_request_errors_total counter\nhttp_request_errors_total %d\n", errors)
}
