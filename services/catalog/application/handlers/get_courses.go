package handlers

import (
	"net/http"

	"github.com/magmaminds/admissions/pkg/errhttp"
	"github.com/magmaminds/admissions/pkg/httpx"
	"github.com/magmaminds/admissions/pkg/logger"
	appsvcs "github.com/magmaminds/admissions/services/catalog/application/services"
	"github.com/magmaminds/admissions/services/catalog/domain/models"
)

// CourseResponse is one course in the grouped catalog.
type CourseResponse struct {
	ID       int64  `json:"id"       example:"1"`
	Name     string `json:"name"     example:"Data Science"`
	Price    string `json:"price"    example:"24999.00"`
	Duration string `json:"duration" example:"6 months"`
} // @name CourseResponse

// CatalogResponse maps category name to its courses, in first-seen order.
type CatalogResponse = httpx.OrderedObject[[]CourseResponse]

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"Internal Server Error"`
} // @name ErrorResponse

// GetCoursesHandler handles GET /courses requests.
type GetCoursesHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewGetCoursesHandler returns a GetCoursesHandler backed by the given services.
func NewGetCoursesHandler(svc *appsvcs.Services, log logger.Logger) *GetCoursesHandler {
	return &GetCoursesHandler{svc: svc, log: log}
}

// Execute lists courses grouped by category name.
//
//	@Summary		List courses
//	@Description	Lists courses grouped by category name, optionally restricted to one category
//	@Tags			courses
//	@Produce		json
//	@Param			categoryId	query		string	false	"Category identifier"
//	@Success		200			{object}	map[string][]CourseResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/courses [get]
func (h *GetCoursesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("categoryId")

	catalog, err := h.svc.Catalog.ListCourses(r.Context(), categoryID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to fetch courses",
			"category_id", categoryID,
			"error", err,
		)
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toCatalogResponse(catalog))
}

func toCatalogResponse(g models.GroupedCatalog) CatalogResponse {
	var resp CatalogResponse
	g.Each(func(category string, courses []models.CourseSummary) {
		out := make([]CourseResponse, len(courses))
		for i, c := range courses {
			out[i] = CourseResponse{
				ID:       c.ID,
				Name:     c.Name,
				Price:    c.Price.StringFixed(2),
				Duration: c.Duration,
			}
		}
		resp.Set(category, out)
	})
	return resp
}
