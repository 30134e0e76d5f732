package api

import (
	"encoding/json"
	"net/http"
	"slices"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/punchamoorthee/txnproc/internal/ledger"
	"github.com/punchamoorthee/txnproc/internal/models"
)

// Metrics
var (
	httpReqTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "txnproc_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})

	httpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "txnproc_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}, []string{"method", "endpoint"})
)

// Handler serves the processed account states read-only. Processing has
// finished before the server starts, so the ledger is never mutated while
// handlers read it.
type Handler struct {
	ledger *ledger.Ledger
}

func NewHandler(l *ledger.Ledger) *Handler {
	return &Handler{ledger: l}
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"}, "GET", "/health")
}

func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("GET", "/accounts"))
	defer timer.ObserveDuration()

	accounts := slices.Collect(h.ledger.Snapshot())
	slices.SortFunc(accounts, func(a, b models.AccountState) int {
		return int(a.Client) - int(b.Client)
	})
	h.respondJSON(w, http.StatusOK, accounts, "GET", "/accounts")
}

func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(httpLatency.WithLabelValues("GET", "/accounts/{id}"))
	defer timer.ObserveDuration()

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 16)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid client id", "GET", "/accounts/{id}")
		return
	}

	acc := h.ledger.Get(models.ClientID(id))
	if acc == nil {
		h.respondError(w, http.StatusNotFound, "Account not found", "GET", "/accounts/{id}")
		return
	}
	h.respondJSON(w, http.StatusOK, acc.State(), "GET", "/accounts/{id}")
}

// Helpers
func (h *Handler) respondJSON(w http.ResponseWriter, code int, payload interface{}, method, endpoint string) {
	httpReqTotal.WithLabelValues(method, endpoint, strconv.Itoa(code)).Inc()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) respondError(w http.ResponseWriter, code int, msg, method, endpoint string) {
	h.respondJSON(w, code, map[string]string{"error": msg}, method, endpoint)
}
