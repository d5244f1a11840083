package api

import (
	"encoding/json"
	"net/http"
	"time"

	"warehouse/loadmap/internal/constants"
	"warehouse/loadmap/internal/logging"
	"warehouse/loadmap/internal/models/dtos/responses"
)

func respondWithSuccess[T any](w http.ResponseWriter, statusCode int, data *T) {
	resp := responses.APIResponse[T]{
		Status:    string(constants.APIStatusOk),
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
	respondWithJSON(w, statusCode, resp)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	resp := responses.APIResponse[any]{
		Status:    string(constants.APIStatusError),
		Timestamp: time.Now().UTC(),
		Error:     message,
	}
	respondWithJSON(w, statusCode, resp)
}

// respondWithJSON writes v unwrapped. Load map resources use the bare wire
// shape so existing clients keep working.
func respondWithJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("JSON encode failed", "error", err.Error())
	}
}

func respondWithFile(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
