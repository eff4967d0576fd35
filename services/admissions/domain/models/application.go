package models

import (
	"fmt"
	"strings"
	"time"
)

// Application is a submitted interest record linking an applicant's contact
// details to a course label. Course is free text copied from the catalog and
// is not a reference to a course row. Applications are append-only.
type Application struct {
	ID          int64 // assigned by the store on insert
	Name        string
	Email       string
	Phone       string
	Course      string
	SubmittedAt time.Time
}

// MissingFieldsError lists the required fields that were empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing %s", strings.Join(e.Fields, ", "))
}

// NewApplication constructs an unsaved Application. Every field must be
// non-empty; otherwise a *MissingFieldsError naming them in declaration
// order is returned. Values are stored as given.
func NewApplication(name, email, phone, course string, submittedAt time.Time) (*Application, error) {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", name},
		{"email", email},
		{"phone", phone},
		{"course", course},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	return &Application{
		Name:        name,
		Email:       email,
		Phone:       phone,
		Course:      course,
		SubmittedAt: submittedAt.UTC(),
	}, nil
}
