package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/magmaminds/admissions/pkg/app"
	"github.com/magmaminds/admissions/services/admissions/application/handlers"
	appsvcs "github.com/magmaminds/admissions/services/admissions/application/services"
)

// AdmissionsRoutes registers admissions endpoints on the provided chi router
// and returns the wired services so the caller can drain them on shutdown.
func AdmissionsRoutes(r chi.Router, a *app.Application) *appsvcs.Services {
	svcs := appsvcs.New(a)
	r.Post("/apply", handlers.NewPostApplyHandler(svcs, a.Logger).Execute)
	r.Get("/applications/stats", handlers.NewGetStatsHandler(svcs, a.Logger).Execute)
	return svcs
}
