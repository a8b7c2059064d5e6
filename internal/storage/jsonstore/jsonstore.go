// Package jsonstore implements storage.Storage on top of a storage.Document
// holding the whole collection as one JSON array.
//
// Every call loads the full collection, works on the in-memory slice and,
// for mutating calls, writes the full collection back. There is no index
// and no partial write.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/aanand-mishra/student-store/internal/storage"
	"github.com/aanand-mishra/student-store/internal/types"
)

// Store is the student record store.
//
// mu serialises the load-modify-save cycle within this process. Two
// processes sharing one document can still lose each other's writes.
type Store struct {
	mu  sync.Mutex
	doc storage.Document
}

// New returns a Store persisting into doc.
func New(doc storage.Document) *Store {
	return &Store{doc: doc}
}

// ListStudents returns every record in stored order.
func (s *Store) ListStudents() ([]types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("ListStudents: %w", err)
	}
	return students, nil
}

// CreateStudent stores student under a new id: one past the largest id in
// the collection, or 1 when the collection is empty.
func (s *Store) CreateStudent(student types.Student) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: %w", err)
	}

	student.ID = nextID(students)
	students = append(students, student)

	if err := s.save(students); err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: %w", err)
	}
	return student, nil
}

// GetStudentByID scans the collection for id.
func (s *Store) GetStudentByID(id int) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return types.Student{}, fmt.Errorf("GetStudentByID: %w", err)
	}

	i := indexOf(students, id)
	if i < 0 {
		return types.Student{}, storage.ErrStudentNotFound
	}
	return students[i], nil
}

// UpdateStudentByID merges update into the record with the given id.
// Fields not supplied in update keep their stored value.
func (s *Store) UpdateStudentByID(id int, update types.UpdateStudentRequest) (types.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: %w", err)
	}

	i := indexOf(students, id)
	if i < 0 {
		return types.Student{}, storage.ErrStudentNotFound
	}

	students[i] = update.Apply(students[i])

	if err := s.save(students); err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: %w", err)
	}
	return students[i], nil
}

// DeleteStudentByID splices the record out of the collection.
func (s *Store) DeleteStudentByID(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	students, err := s.load()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: %w", err)
	}

	i := indexOf(students, id)
	if i < 0 {
		return storage.ErrStudentNotFound
	}

	students = append(students[:i], students[i+1:]...)

	if err := s.save(students); err != nil {
		return fmt.Errorf("DeleteStudentByID: %w", err)
	}
	return nil
}

func (s *Store) load() ([]types.Student, error) {
	body, err := s.doc.Load()
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	students := make([]types.Student, 0)
	if err := json.Unmarshal(body, &students); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	// A document holding `null` decodes to a nil slice.
	if students == nil {
		students = make([]types.Student, 0)
	}
	return students, nil
}

func (s *Store) save(students []types.Student) error {
	body, err := json.MarshalIndent(students, "", "    ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.doc.Save(body); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func nextID(students []types.Student) int {
	maxID := 0
	for _, st := range students {
		if st.ID > maxID {
			maxID = st.ID
		}
	}
	return maxID + 1
}

func indexOf(students []types.Student, id int) int {
	for i, st := range students {
		if st.ID == id {
			return i
		}
	}
	return -1
}
