package main

import (
	"encoding/json"
	"net/http"
	"time"
)

// handleHealth handles the GET /health endpoint. Besides uptime it
// reports the live gauges a status page would show.
func (app *application) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	json.NewEncoder(w).Encode(map[string]any{
		"status":          "ok",
		"uptime":          time.Since(app.StartTime).String(),
		"connections":     app.Hub.ConnectionCount(),
		"players":         app.Players.Count(),
		"active_games":    app.Directory.ActiveCount(),
		"waiting_players": app.Queue.Len(),
	})
}
