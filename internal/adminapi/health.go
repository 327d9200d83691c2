package adminapi

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthSource is the narrow view of connector.Connector the health
// handler needs, matching the style of internal/metrics.ConnectorStats —
// a local interface instead of a direct import keeps this package
// testable without spinning up a real Connector.
type HealthSource interface {
	StoreSize() int64
	WebSocketConnected() bool
	LastRecordAt() time.Time
}

// HealthResponse is the /healthz JSON body. Grounded on the teacher's
// internal/api/health.go HealthResponse shape, trimmed to what this
// connector actually tracks — no DB/MQTT/update-checker concerns.
type HealthResponse struct {
	Status        string            `json:"status"`
	UptimeSeconds int64             `json:"uptimeSeconds"`
	Checks        map[string]string `json:"checks"`
}

// HealthHandler reports bootstrap and WebSocket liveness.
type HealthHandler struct {
	source    HealthSource
	startTime time.Time
}

// NewHealthHandler builds a HealthHandler. source may be nil before the
// connector has started; the handler then reports "starting".
func NewHealthHandler(source HealthSource, startTime time.Time) *HealthHandler {
	return &HealthHandler{source: source, startTime: startTime}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]string)
	status := "healthy"
	httpStatus := http.StatusOK

	if h.source == nil {
		checks["store"] = "starting"
		checks["websocket"] = "starting"
		status = "starting"
	} else {
		if h.source.StoreSize() > 0 {
			checks["store"] = "ok"
		} else {
			checks["store"] = "empty"
			status = "degraded"
		}

		if h.source.WebSocketConnected() {
			checks["websocket"] = "connected"
		} else {
			checks["websocket"] = "disconnected"
			status = "degraded"
		}

		if last := h.source.LastRecordAt(); !last.IsZero() {
			checks["lastRecordAgeSeconds"] = time.Since(last).Truncate(time.Second).String()
		}
	}

	if status == "degraded" {
		httpStatus = http.StatusOK
	}

	resp := HealthResponse{
		Status:        status,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Checks:        checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(resp)
}
