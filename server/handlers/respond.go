package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"tire-locator/models"
)

func writeJSON(w http.ResponseWriter, logger log.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		level.Error(logger).Log("msg", "error encoding response", "err", err)
	}
}

// writeError sends the {status, message} payload clients expect on failure.
func writeError(w http.ResponseWriter, logger log.Logger, status int, message string) {
	writeJSON(w, logger, status, models.ErrorPayload{Status: status, Message: message})
}
