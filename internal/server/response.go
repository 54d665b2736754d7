package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Response is the JSON envelope returned by every API route.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func sendJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func sendSuccess(w http.ResponseWriter, data any) {
	sendJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendJSON(w, status, Response{Success: false, Message: message})
}

func sendAttachment(w http.ResponseWriter, filename, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// decodeJSON reads a JSON body into dst, writing a 400 response on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			sendError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		sendError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return false
	}
	return true
}
