package helpers

import (
	"encoding/json"
	"net/http"

	"github.com/botpanel/botpanel/internal/models"

	"go.uber.org/zap"
)

func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		zap.L().Error("Failed to marshal response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func RespondWithError(w http.ResponseWriter, code int, errors []string) {
	RespondWithJSON(w, code, models.Error{Status: code, Error: errors})
}
