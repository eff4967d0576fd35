package services

import (
	"context"
	"fmt"

	"github.com/magmaminds/admissions/services/catalog/domain/models"
	"github.com/magmaminds/admissions/services/catalog/domain/repositories"
	domainsvcs "github.com/magmaminds/admissions/services/catalog/domain/services"
)

// CatalogService answers course listing queries. It is stateless; the
// grouped catalog is recomputed from the store on every call.
type CatalogService struct {
	repo repositories.CourseRepository
}

// NewCatalogService returns a CatalogService reading from repo.
func NewCatalogService(repo repositories.CourseRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListCourses returns courses grouped by category name. An empty categoryID
// lists every course; otherwise only that category's courses are returned.
func (s *CatalogService) ListCourses(ctx context.Context, categoryID string) (models.GroupedCatalog, error) {
	rows, err := s.repo.List(ctx, repositories.CourseFilter{CategoryID: categoryID})
	if err != nil {
		return models.GroupedCatalog{}, fmt.Errorf("list courses: %w", err)
	}
	return domainsvcs.GroupByCategory(rows), nil
}
