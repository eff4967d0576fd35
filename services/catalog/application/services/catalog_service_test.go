package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/magmaminds/admissions/services/catalog/domain/models"
	"github.com/magmaminds/admissions/services/catalog/domain/repositories"
)

// fakeCourseRepo filters an in-memory catalog the way the SQL query does.
type fakeCourseRepo struct {
	rows       []fakeRow
	err        error
	lastFilter repositories.CourseFilter
}

type fakeRow struct {
	categoryID string
	course     models.Course
}

func (f *fakeCourseRepo) List(_ context.Context, filter repositories.CourseFilter) ([]models.Course, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Course
	for _, r := range f.rows {
		if filter.CategoryID == "" || filter.CategoryID == r.categoryID {
			out = append(out, r.course)
		}
	}
	return out, nil
}

func seededRepo() *fakeCourseRepo {
	return &fakeCourseRepo{rows: []fakeRow{
		{"1", models.Course{ID: 1, Name: "Python Basics", Price: decimal.RequireFromString("4999.00"), Duration: "2 months", Category: "Programming"}},
		{"2", models.Course{ID: 2, Name: "UI Fundamentals", Price: decimal.RequireFromString("3999.50"), Duration: "6 weeks", Category: "Design"}},
		{"1", models.Course{ID: 3, Name: "Go in Practice", Price: decimal.RequireFromString("7999.00"), Duration: "3 months", Category: "Programming"}},
	}}
}

func TestListCourses_NoFilterReturnsEveryCategory(t *testing.T) {
	repo := seededRepo()
	svc := NewCatalogService(repo)

	g, err := svc.ListCourses(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.CategoryID != "" {
		t.Fatalf("expected no filter, got %+v", repo.lastFilter)
	}
	if g.Len() != 2 {
		t.Fatalf("expected 2 categories, got %v", g.Categories())
	}
	if len(g.Courses("Programming")) != 2 || len(g.Courses("Design")) != 1 {
		t.Fatalf("unexpected grouping: %v / %v", g.Courses("Programming"), g.Courses("Design"))
	}
}

func TestListCourses_FilterRestrictsToCategory(t *testing.T) {
	repo := seededRepo()
	svc := NewCatalogService(repo)

	g, err := svc.ListCourses(context.Background(), "2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastFilter.CategoryID != "2" {
		t.Fatalf("expected filter to be passed through, got %+v", repo.lastFilter)
	}
	if cats := g.Categories(); len(cats) != 1 || cats[0] != "Design" {
		t.Fatalf("expected only Design, got %v", cats)
	}
}

func TestListCourses_UnknownCategoryIsEmpty(t *testing.T) {
	svc := NewCatalogService(seededRepo())

	g, err := svc.ListCourses(context.Background(), "999")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Len() != 0 {
		t.Fatalf("expected empty catalog, got %v", g.Categories())
	}
}

func TestListCourses_StoreErrorReturnsNoResult(t *testing.T) {
	dbErr := errors.New("db down")
	svc := NewCatalogService(&fakeCourseRepo{err: dbErr})

	g, err := svc.ListCourses(context.Background(), "")
	if !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	if g.Len() != 0 {
		t.Fatal("expected no partial result on error")
	}
}
