package http

import (
	"net/http"
	"time"

	"github.com/openreel/openreel/internal/accounts/store"
	"github.com/openreel/openreel/pkg/httpx"
)

// LivezHandler answers liveness probes: the process is up.
func LivezHandler(buildVersion string, startTime time.Time) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"version": buildVersion,
			"uptime":  time.Since(startTime).Truncate(time.Second).String(),
		})
	})
}

// ReadyzHandler answers readiness probes: the store is reachable.
func ReadyzHandler(st store.Store) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			httpx.WriteError(w, http.StatusServiceUnavailable, "not_ready",
				"database unreachable")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
}
