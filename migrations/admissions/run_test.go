package main

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/magmaminds/admissions/pkg/migrator"
)

func TestMigrationsFS_Versions(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close() //nolint:errcheck

	p, err := migrator.NewProvider(db, MigrationsFS)
	if err != nil {
		t.Fatalf("provider: %v", err)
	}

	sources := p.ListSources()
	if len(sources) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(sources))
	}
	for i, s := range sources {
		if s.Version != int64(i+1) {
			t.Fatalf("expected contiguous versions, got %d at %d", s.Version, i)
		}
	}
}

func TestMigrationsFS_ApplicationsCourseIsFreeText(t *testing.T) {
	raw, err := fs.ReadFile(MigrationsFS, "00002_create_applications.sql")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(strings.ToUpper(string(raw)), "REFERENCES") {
		t.Fatal("applications.course must not reference courses")
	}
}
