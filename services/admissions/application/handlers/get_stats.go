package handlers

import (
	"net/http"

	"github.com/magmaminds/admissions/pkg/httpx"
	"github.com/magmaminds/admissions/pkg/logger"
	appsvcs "github.com/magmaminds/admissions/services/admissions/application/services"
)

// StatsResponse maps course label to the number of applications counted.
type StatsResponse map[string]int64

// GetStatsHandler handles GET /applications/stats requests.
type GetStatsHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewGetStatsHandler returns a GetStatsHandler backed by the given services.
func NewGetStatsHandler(svc *appsvcs.Services, log logger.Logger) *GetStatsHandler {
	return &GetStatsHandler{svc: svc, log: log}
}

// Execute returns submissions per course as counted by the worker.
//
//	@Summary		Application counts
//	@Description	Returns the number of applications per course label, as counted by the event worker
//	@Tags			applications
//	@Produce		json
//	@Success		200	{object}	map[string]int64
//	@Failure		500	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/applications/stats [get]
func (h *GetStatsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	if h.svc.Tally == nil {
		httpx.JSONError(w, http.StatusServiceUnavailable, "Statistics unavailable")
		return
	}

	counts, err := h.svc.Tally.Counts(r.Context())
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to read application tally", "error", err)
		httpx.InternalError(w)
		return
	}

	httpx.JSON(w, http.StatusOK, StatsResponse(counts))
}
