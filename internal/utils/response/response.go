// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Three error shapes leave this service:
//
//	{ "message": "Student not found" }                          informational / 404
//	{ "message": "...", "errors": { "year": ["..."] } }         422 validation
//	{ "status": "error", "error": "..." }                       400 / 500
package response

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/aanand-mishra/student-store/internal/validate"
)

// Response is the envelope returned for unexpected errors.
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error"`  // human-readable error detail
}

// Status string constants.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Messages used by the student endpoints.
const (
	MsgNoStudents     = "No students found"
	MsgNotFound       = "Student not found"
	MsgDeleted        = "Student deleted successfully"
	MsgInvalidPayload = "The given data was invalid."
)

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationResponse lists every rejected field with its reasons.
type ValidationResponse struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// Message wraps msg into a MessageResponse.
func Message(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// GeneralError wraps any Go error into our standard Response shape.
// Use this for unexpected errors (storage failures, decode errors, etc.)
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ValidationError converts field failures into a ValidationResponse.
// The top-level message is the first failure of the alphabetically first
// field, so it is stable across runs.
func ValidationError(errs *validate.Errors) ValidationResponse {
	fields := make([]string, 0, len(errs.Fields))
	for f := range errs.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msg := MsgInvalidPayload
	if len(fields) > 0 && len(errs.Fields[fields[0]]) > 0 {
		msg = errs.Fields[fields[0]][0]
	}

	return ValidationResponse{
		Message: msg,
		Errors:  errs.Fields,
	}
}
