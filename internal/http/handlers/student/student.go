// Package student contains all HTTP handlers related to the Student resource.
//
// Every handler is built by a factory that receives its dependencies and
// returns the http.HandlerFunc the router needs:
//
//	router.HandleFunc("POST /students", student.New(storage))
//
// New(storage) runs ONCE at startup; the returned closure runs on every
// request.
package student

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/student-store/internal/http/middleware"
	"github.com/aanand-mishra/student-store/internal/storage"
	"github.com/aanand-mishra/student-store/internal/types"
	"github.com/aanand-mishra/student-store/internal/utils/response"
	"github.com/aanand-mishra/student-store/internal/validate"
)

// Register mounts the student routes on mux under prefix ("" or "/api").
//
//	GET          {prefix}/students       → list
//	POST         {prefix}/students       → create
//	GET          {prefix}/students/{id}  → read one
//	PUT, PATCH   {prefix}/students/{id}  → partial update
//	DELETE       {prefix}/students/{id}  → delete
func Register(mux *http.ServeMux, prefix string, storage storage.Storage) {
	mux.HandleFunc("GET "+prefix+"/students", GetList(storage))
	mux.HandleFunc("POST "+prefix+"/students", New(storage))
	mux.HandleFunc("GET "+prefix+"/students/{id}", GetByID(storage))
	mux.HandleFunc("PUT "+prefix+"/students/{id}", Update(storage))
	mux.HandleFunc("PATCH "+prefix+"/students/{id}", Update(storage))
	mux.HandleFunc("DELETE "+prefix+"/students/{id}", Delete(storage))
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /students
//
// Success response (200 OK):
//
//	[ { "id": 1, "firstName": "Ann", ... }, ... ]
//
// or, when the collection is empty (still 200 OK):
//
//	{ "message": "No students found" }
//
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := middleware.Logger(r.Context())
		log.Info("getting all students")

		students, err := storage.ListStudents()
		if err != nil {
			log.Error("error getting students", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		if len(students) == 0 {
			response.WriteJSON(w, http.StatusOK, response.Message(response.MsgNoStudents))
			return
		}

		response.WriteJSON(w, http.StatusOK, students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /students
//
// Request body (JSON), every field required:
//
//	{ "firstName": "Ann", "lastName": "Lee", "course": "CS",
//	  "year": "First Year", "enrolled": true }
//
// Success response (201 Created): the stored record, including its id.
//
// Error responses:
//
//	400 Bad Request           — malformed JSON
//	413 Payload Too Large     — body over MaxBodyBytes
//	422 Unprocessable Entity  — one or more fields failed validation
//	500 Internal              — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := middleware.Logger(r.Context())
		log.Info("creating a student")

		var req types.CreateStudentRequest
		if !bind(w, r, &req) {
			return
		}

		created, err := storage.CreateStudent(req.Student())
		if err != nil {
			log.Error("error creating student", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		log.Info("student created", slog.Int("id", created.ID))
		response.WriteJSON(w, http.StatusCreated, created)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /students/{id}
//
// Error responses:
//
//	404 Not Found  — no student with that id (a non-numeric id never matches)
//	500 Internal   — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		log := middleware.Logger(r.Context()).With(slog.String("id", id))
		log.Info("getting a student")

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		student, err := storage.GetStudentByID(intID)
		if err != nil {
			writeStorageError(w, log, "error getting student", err)
			return
		}

		response.WriteJSON(w, http.StatusOK, student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT and PATCH /students/{id}
//
// Both verbs are partial: only supplied fields change, and each supplied
// field must satisfy the same rule as on create. A field sent as null
// counts as supplied and is rejected.
//
//	{ "course": "Maths" }
//
// Success response (200 OK): the full updated record.
//
// Error responses:
//
//	404 Not Found             — no student with that id (checked first)
//	400 Bad Request           — malformed JSON
//	413 Payload Too Large     — body over MaxBodyBytes
//	422 Unprocessable Entity  — a supplied field failed validation
//	500 Internal              — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		log := middleware.Logger(r.Context()).With(slog.String("id", id))
		log.Info("updating a student")

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		// Existence is checked before the body is looked at, so an
		// unknown id is a 404 even when the payload is also invalid.
		if _, err := storage.GetStudentByID(intID); err != nil {
			writeStorageError(w, log, "error getting student", err)
			return
		}

		var req types.UpdateStudentRequest
		if !bind(w, r, &req) {
			return
		}

		updated, err := storage.UpdateStudentByID(intID, req)
		if err != nil {
			writeStorageError(w, log, "error updating student", err)
			return
		}

		log.Info("student updated")
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /students/{id}
//
// Success response (200 OK):
//
//	{ "message": "Student deleted successfully" }
//
// Error responses:
//
//	404 Not Found  — no student with that id
//	500 Internal   — storage error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		log := middleware.Logger(r.Context()).With(slog.String("id", id))
		log.Info("deleting a student")

		intID, ok := parseID(w, id)
		if !ok {
			return
		}

		if err := storage.DeleteStudentByID(intID); err != nil {
			writeStorageError(w, log, "error deleting student", err)
			return
		}

		log.Info("student deleted")
		response.WriteJSON(w, http.StatusOK, response.Message(response.MsgDeleted))
	}
}

// MaxBodyBytes caps the size of a request body.
const MaxBodyBytes = 1 << 20

// bind reads the JSON body into dst and validates it. Every failing field
// is reported together: JSON type mismatches, explicit nulls and tag
// rules. An empty body leaves dst at its zero value. String fields are
// trimmed before validation and stored trimmed. It writes the error
// response itself and reports false when the handler should stop.
func bind(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.WriteJSON(w, http.StatusRequestEntityTooLarge, response.GeneralError(
				fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)))
			return false
		}
		response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
		return false
	}

	failed := &validate.Errors{}

	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, dst); err != nil {
			// A type mismatch still decodes the other fields, so it is
			// collected and validation carries on. Malformed JSON stops here.
			var ve *validate.Errors
			if !errors.As(validate.FromDecodeError(err), &ve) {
				response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
				return false
			}
			failed.Merge(ve)
		}
		failed.Merge(validate.NullFields(body, dst))
	}

	validate.TrimStrings(dst)

	if err := validate.Struct(dst); err != nil {
		var ve *validate.Errors
		if !errors.As(err, &ve) {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return false
		}
		failed.Merge(ve)
	}

	if len(failed.Fields) > 0 {
		response.WriteJSON(w, http.StatusUnprocessableEntity, response.ValidationError(failed))
		return false
	}
	return true
}

// parseID converts the {id} path segment to an int. No record can carry a
// non-integer id, so a bad segment is answered as not found.
func parseID(w http.ResponseWriter, id string) (int, bool) {
	intID, err := strconv.Atoi(id)
	if err != nil {
		response.WriteJSON(w, http.StatusNotFound, response.Message(response.MsgNotFound))
		return 0, false
	}
	return intID, true
}

func writeStorageError(w http.ResponseWriter, log *slog.Logger, msg string, err error) {
	if errors.Is(err, storage.ErrStudentNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.Message(response.MsgNotFound))
		return
	}

	log.Error(msg, slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}
