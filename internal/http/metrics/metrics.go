package metrics

import (
	"fmt"
	"net/http"
	"sync/atomic"
)

type Collector struct {
	requests uint64
	errors   uint64
	archived uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) IncRequests() {
	atomic.AddUint64(&c.requests, 1)
}

func (c *Collector) IncErrors() {
	atomic.AddUint64(&c.errors, 1)
}

func (c *Collector) AddArchived(n int64) {
	if n > 0 {
		atomic.AddUint64(&c.archived, uint64(n))
	}
}

func (c *Collector) Snapshot() (requests, errors, archived uint64) {
	return atomic.LoadUint64(&c.requests), atomic.LoadUint64(&c.errors), atomic.LoadUint64(&c.archived)
}

type Handler struct {
	collector *Collector
}

func NewHandler(collector *Collector) *Handler {
	return &Handler{collector: collector}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	var requests, errors, archived uint64
	if h.collector != nil {
		requests, errors, archived = h.collector.Snapshot()
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_, _ = fmt.Fprintf(w, "# HELP dptmptch_requests_total Total number of HTTP requests.\n")
	_, _ = fmt.Fprintf(w, "# TYPE dptmptch_requests_total counter\n")
	_, _ = fmt.Fprintf(w, "dptmptch_requests_total %d\n", requests)
	_, _ = fmt.Fprintf(w, "# HELP dptmptch_errors_total Total number of 5xx HTTP responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE dptmptch_errors_total counter\n")
	_, _ = fmt.Fprintf(w, "dptmptch_errors_total %d\n", errors)
	_, _ = fmt.Fprintf(w, "# HELP dptmptch_vacancies_archived_total Vacancies archived by the background sweep.\n")
	_, _ = fmt.Fprintf(w, "# TYPE dptmptch_vacancies_archived_total counter\n")
	_, _ = fmt.Fprintf(w, "dptmptch_vacancies_archived_total %d\n", archived)
}
