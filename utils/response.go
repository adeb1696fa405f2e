package utils

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"motohub/repository"
)

// HTTPError carries the status and client-facing message for a failed request.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error { return e.Err }

func NewHTTPError(status int, msg string, err error) *HTTPError {
	return &HTTPError{Status: status, Message: msg, Err: err}
}

// ErrPaymentProvider wraps failures of the payment-intent collaborator.
var ErrPaymentProvider = errors.New("payment provider error")

// StatusFor maps an error to the status code and message sent to the client.
func StatusFor(err error) (int, string) {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Status, httpErr.Message
	case errors.Is(err, repository.ErrInvalidID):
		return http.StatusBadRequest, "invalid id"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized, "unauthorized access"
	case errors.Is(err, ErrPaymentProvider):
		return http.StatusBadGateway, "payment provider error"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondWithErr writes the error response for err. Server-side failures are logged.
func RespondWithErr(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := StatusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	}
	RespondWithError(w, status, msg)
}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, map[string]string{"error": msg})
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode response: %v", err)
	}
}
