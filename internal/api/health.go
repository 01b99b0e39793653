package api

import (
	"context"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// readinessPingTimeout bounds the database ping on /ready so a hung pool
// cannot stall the probe.
const readinessPingTimeout = 2 * time.Second

// health is a simple health check endpoint for Docker/Kubernetes probes.
// Returns 200 OK with {"status":"ok"}.
func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// readiness reports whether the server can answer questions, which requires
// a reachable database. Returns 503 until the pool answers a ping.
func readiness(pool *pgxpool.Pool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if pool == nil {
			writeError(w, http.StatusServiceUnavailable, "not_ready", "database pool not configured")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readinessPingTimeout)
		defer cancel()

		if err := pool.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "not_ready", "database not reachable")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})
}
