package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/magmaminds/admissions/pkg/app"
	"github.com/magmaminds/admissions/services/catalog/application/handlers"
	appsvcs "github.com/magmaminds/admissions/services/catalog/application/services"
)

// CatalogRoutes registers catalog endpoints on the provided chi router.
func CatalogRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	r.Get("/courses", handlers.NewGetCoursesHandler(svcs, a.Logger).Execute)
}
