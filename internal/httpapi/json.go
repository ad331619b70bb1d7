package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/carebell/carebell/internal/logging"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("json encode failed", logging.KeyError, err)
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

type statusResponse struct {
	Status string `json:"status"`
}

func statusOK() statusResponse {
	return statusResponse{Status: "ok"}
}
