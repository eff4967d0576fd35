package models

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestNewApplication_Valid(t *testing.T) {
	at := time.Date(2026, 10, 15, 8, 30, 0, 0, time.FixedZone("IST", 5*3600+1800))

	a, err := NewApplication("Asha", "a@x.com", "9999999999", "Data Science", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != 0 {
		t.Fatalf("expected unsaved application, got ID %d", a.ID)
	}
	if a.Name != "Asha" || a.Email != "a@x.com" || a.Phone != "9999999999" || a.Course != "Data Science" {
		t.Fatalf("fields not preserved: %+v", a)
	}
	if !a.SubmittedAt.Equal(at) || a.SubmittedAt.Location() != time.UTC {
		t.Fatalf("expected SubmittedAt normalized to UTC, got %v", a.SubmittedAt)
	}
}

func TestNewApplication_EachFieldRequired(t *testing.T) {
	tests := []struct {
		name                      string
		fName, email, phone, crse string
		wantMissing               []string
	}{
		{"missing name", "", "a@x.com", "1", "DS", []string{"name"}},
		{"missing email", "Asha", "", "1", "DS", []string{"email"}},
		{"missing phone", "Asha", "a@x.com", "", "DS", []string{"phone"}},
		{"missing course", "Asha", "a@x.com", "1", "", []string{"course"}},
		{"all missing", "", "", "", "", []string{"name", "email", "phone", "course"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := NewApplication(tt.fName, tt.email, tt.phone, tt.crse, time.Now())
			if a != nil {
				t.Fatalf("expected nil application, got %+v", a)
			}
			var mfe *MissingFieldsError
			if !errors.As(err, &mfe) {
				t.Fatalf("expected *MissingFieldsError, got %v", err)
			}
			if !reflect.DeepEqual(mfe.Fields, tt.wantMissing) {
				t.Fatalf("missing = %v, want %v", mfe.Fields, tt.wantMissing)
			}
		})
	}
}

func TestMissingFieldsError_Message(t *testing.T) {
	err := &MissingFieldsError{Fields: []string{"phone", "course"}}
	if err.Error() != "missing phone, course" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
