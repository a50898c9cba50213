package http

import (
	"encoding/json"
	"log"
	"net/http"
)

// apiError carries an HTTP status alongside a client-safe message. Anything
// else that escapes a handler is logged and collapsed to a generic 500.
type apiError struct {
	status  int
	message string
}

func (e *apiError) Error() string {
	return e.message
}

func newAPIError(status int, message string) *apiError {
	return &apiError{status: status, message: message}
}

type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeSuccess(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, response{Success: true, Message: message, Data: data})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Success: false, Message: message})
}

// writeFailure maps an error to the envelope. Raw error text is kept out of
// the response for anything that is not an explicit apiError.
func writeFailure(w http.ResponseWriter, err error) {
	if apiErr, ok := err.(*apiError); ok {
		writeError(w, apiErr.status, apiErr.message)
		return
	}
	log.Printf("internal error: %v", err)
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(out)
}
