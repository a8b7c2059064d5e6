// Package storage defines the two contracts the application is built on:
//
//   - Storage is what the HTTP handlers talk to: the five student
//     operations, with no knowledge of how records are kept.
//
//   - Document is the raw persistence handle underneath: one JSON array
//     holding the whole collection, loaded and saved as a unit. A file on
//     disk and a SQLite row both satisfy it.
//
// Handlers depend only on Storage; tests can pass a fake that satisfies it.
package storage

import (
	"errors"

	"github.com/aanand-mishra/student-store/internal/types"
)

// ErrStudentNotFound is returned by every Storage method that is given an
// id no record carries.
var ErrStudentNotFound = errors.New("student not found")

// Storage is the student record contract.
type Storage interface {
	// ListStudents returns the whole collection in stored order.
	// Returns an empty slice (not nil) when there are no students.
	ListStudents() ([]types.Student, error)

	// CreateStudent assigns the next id to student, appends it and returns
	// the stored record.
	CreateStudent(student types.Student) (types.Student, error)

	// GetStudentByID returns ErrStudentNotFound if no record matches.
	GetStudentByID(id int) (types.Student, error)

	// UpdateStudentByID merges the supplied fields of update into the
	// record and returns the result.
	UpdateStudentByID(id int, update types.UpdateStudentRequest) (types.Student, error)

	// DeleteStudentByID removes a student record permanently.
	DeleteStudentByID(id int) error
}

// Document is a single persisted JSON document.
type Document interface {
	// Load returns the current document body. If the document does not
	// exist yet it is created as an empty JSON array and `[]` is returned.
	Load() ([]byte, error)

	// Save replaces the whole document body.
	Save(body []byte) error

	// Close releases any resource held by the document.
	Close() error
}
