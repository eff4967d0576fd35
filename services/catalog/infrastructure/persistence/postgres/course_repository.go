package postgres

import (
	"context"
	"fmt"

	"github.com/magmaminds/admissions/pkg/database"
	"github.com/magmaminds/admissions/services/catalog/domain/models"
	"github.com/magmaminds/admissions/services/catalog/domain/repositories"
	"github.com/magmaminds/admissions/services/catalog/infrastructure/persistence/postgres/db"
)

// CourseRepository implements repositories.CourseRepository against PostgreSQL.
type CourseRepository struct {
	db *database.Database
}

// NewCourseRepository returns a CourseRepository backed by the given pool.
func NewCourseRepository(database *database.Database) *CourseRepository {
	return &CourseRepository{db: database}
}

// List returns all courses, or those of filter.CategoryID when set.
// Any store error is returned wrapped; no partial result is returned with it.
func (r *CourseRepository) List(ctx context.Context, filter repositories.CourseFilter) ([]models.Course, error) {
	q := db.New(r.db.DB())

	if filter.CategoryID == "" {
		rows, err := q.ListCourses(ctx)
		if err != nil {
			return nil, fmt.Errorf("query courses: %w", err)
		}
		courses := make([]models.Course, len(rows))
		for i, row := range rows {
			courses[i] = models.Course(row)
		}
		return courses, nil
	}

	rows, err := q.ListCoursesByCategory(ctx, filter.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("query courses by category %q: %w", filter.CategoryID, err)
	}
	courses := make([]models.Course, len(rows))
	for i, row := range rows {
		courses[i] = models.Course(row)
	}
	return courses, nil
}
