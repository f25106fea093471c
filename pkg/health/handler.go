package health

import (
	"encoding/json"
	"net/http"
	"strings"
)

// LivenessHandler always answers 200: the process is up.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if wantsJSON(r) {
			writeJSON(w, http.StatusOK, Report{Status: StatusHealthy})
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// ReadinessHandler runs the checks on every request and answers 200 or 503.
func ReadinessHandler(checks Checks, opts ...Option) http.Handler {
	return New(checks, opts...)
}

// ServeHTTP answers 200 when every check passes and 503 otherwise.
// JSON is returned for ?format=json or an Accept header asking for it.
func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	report := c.Run(r.Context())

	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}

	if wantsJSON(r) {
		writeJSON(w, status, report)
		return
	}

	w.WriteHeader(status)
	if report.Healthy() {
		_, _ = w.Write([]byte("OK"))
	} else {
		_, _ = w.Write([]byte("Service Unavailable"))
	}
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
