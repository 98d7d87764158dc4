package health

import (
	"errors"
	"net/http"
	"sync/atomic"

	"github.com/noah-isme/toko-console/internal/common"
	"github.com/noah-isme/toko-console/internal/repo"
)

var errNotReady = errors.New("not ready")

var ready atomic.Bool

func init() { ready.Store(true) }

// SetReady flips the readiness flag. The process clears it while shutting down.
func SetReady(v bool) { ready.Store(v) }

// StatsProvider reports the contents of the in-memory store.
type StatsProvider interface {
	Stats() repo.Stats
}

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Store StatsProvider
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness together with the store counters.
func (h Handler) Ready(w http.ResponseWriter, _ *http.Request) {
	if h.Store == nil || !ready.Load() {
		common.JSONError(w, http.StatusServiceUnavailable, "not_ready", errNotReady)
		return
	}
	body := struct {
		Status string     `json:"status"`
		Store  repo.Stats `json:"store"`
	}{Status: "ok", Store: h.Store.Stats()}
	common.JSON(w, http.StatusOK, body)
}
