package repositories

import (
	"context"

	"github.com/magmaminds/admissions/services/catalog/domain/models"
)

// CourseFilter restricts a course listing.
type CourseFilter struct {
	// CategoryID is an opaque category identifier taken from the query string.
	// Empty means no restriction. It is passed to the store without type checks.
	CategoryID string
}

// CourseRepository is the read interface for the course catalog.
// The domain layer owns this interface; infrastructure implements it.
type CourseRepository interface {
	// List returns courses joined with their category name, ordered by course id.
	List(ctx context.Context, filter CourseFilter) ([]models.Course, error)
}
