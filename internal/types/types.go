// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, and validation can all import types without
// depending on each other.
package types

// Year values accepted for Student.Year.
const (
	FirstYear  = "First Year"
	SecondYear = "Second Year"
	ThirdYear  = "Third Year"
	FourthYear = "Fourth Year"
	FifthYear  = "Fifth Year"
)

// Years lists every accepted year in order. The `oneof` validate tags
// below must stay in sync with this list.
var Years = []string{FirstYear, SecondYear, ThirdYear, FourthYear, FifthYear}

// Student represents a student record as it is stored in the collection
// and returned to clients.
//
// Field order here is the field order in the persisted JSON document.
type Student struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Course    string `json:"course"`
	Year      string `json:"year"`
	Enrolled  bool   `json:"enrolled"`
}

// CreateStudentRequest is the body of POST /students.
//
// Every field is required. Enrolled is a pointer because `required` on a
// plain bool would reject a legitimate `false`; on a pointer it only
// rejects a missing value.
type CreateStudentRequest struct {
	FirstName string `json:"firstName" validate:"required,max=255"`
	LastName  string `json:"lastName"  validate:"required,max=255"`
	Course    string `json:"course"    validate:"required"`
	Year      string `json:"year"      validate:"required,oneof='First Year' 'Second Year' 'Third Year' 'Fourth Year' 'Fifth Year'"`
	Enrolled  *bool  `json:"enrolled"  validate:"required"`
}

// Student builds the record to be stored. The ID is left at zero; the
// store assigns it.
func (r CreateStudentRequest) Student() Student {
	s := Student{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Course:    r.Course,
		Year:      r.Year,
	}
	if r.Enrolled != nil {
		s.Enrolled = *r.Enrolled
	}
	return s
}

// UpdateStudentRequest is the body of PUT/PATCH /students/{id}.
//
// A nil field was not supplied and keeps its stored value. A supplied
// field must satisfy the same rule as on create, so an explicit empty
// string is rejected (`min=1`) rather than skipped.
type UpdateStudentRequest struct {
	FirstName *string `json:"firstName" validate:"omitnil,min=1,max=255"`
	LastName  *string `json:"lastName"  validate:"omitnil,min=1,max=255"`
	Course    *string `json:"course"    validate:"omitnil,min=1"`
	Year      *string `json:"year"      validate:"omitnil,oneof='First Year' 'Second Year' 'Third Year' 'Fourth Year' 'Fifth Year'"`
	Enrolled  *bool   `json:"enrolled"`
}

// Apply merges the supplied fields into s and returns the result.
// The ID is never touched.
func (r UpdateStudentRequest) Apply(s Student) Student {
	if r.FirstName != nil {
		s.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		s.LastName = *r.LastName
	}
	if r.Course != nil {
		s.Course = *r.Course
	}
	if r.Year != nil {
		s.Year = *r.Year
	}
	if r.Enrolled != nil {
		s.Enrolled = *r.Enrolled
	}
	return s
}
