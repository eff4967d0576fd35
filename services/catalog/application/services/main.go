package services

import (
	"github.com/magmaminds/admissions/pkg/app"
	"github.com/magmaminds/admissions/services/catalog/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for the catalog context.
type Services struct {
	Catalog *CatalogService
}

// New wires catalog services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	return &Services{
		Catalog: NewCatalogService(postgres.NewCourseRepository(a.Db)),
	}
}
