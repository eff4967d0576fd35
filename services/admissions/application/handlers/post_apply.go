package handlers

import (
	"errors"
	"net/http"

	"github.com/magmaminds/admissions/pkg/errhttp"
	"github.com/magmaminds/admissions/pkg/httpx"
	"github.com/magmaminds/admissions/pkg/logger"
	pkgvalidator "github.com/magmaminds/admissions/pkg/validator"
	appsvcs "github.com/magmaminds/admissions/services/admissions/application/services"
	admdomain "github.com/magmaminds/admissions/services/admissions/domain"
)

// ApplyRequest is the request body for POST /apply. Values are taken as
// submitted; only presence is checked. Numbers and booleans are accepted and
// stored as text, so a numeric phone input is not rejected.
type ApplyRequest struct {
	Name   pkgvalidator.FormText `json:"name"   validate:"required" swaggertype:"string" example:"Asha"`
	Email  pkgvalidator.FormText `json:"email"  validate:"required" swaggertype:"string" example:"a@x.com"`
	Phone  pkgvalidator.FormText `json:"phone"  validate:"required" swaggertype:"string" example:"9999999999"`
	Course pkgvalidator.FormText `json:"course" validate:"required" swaggertype:"string" example:"Data Science"`
} // @name ApplyRequest

// ApplyResponse is returned once the application is stored.
type ApplyResponse struct {
	Message string `json:"message" example:"Application submitted successfully"`
	ID      int64  `json:"id"      example:"42"`
} // @name ApplyResponse

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"All fields are required"`
} // @name AdmissionsErrorResponse

// PostApplyHandler handles POST /apply requests.
type PostApplyHandler struct {
	svc *appsvcs.Services
	log logger.Logger
}

// NewPostApplyHandler returns a PostApplyHandler backed by the given services.
func NewPostApplyHandler(svc *appsvcs.Services, log logger.Logger) *PostApplyHandler {
	return &PostApplyHandler{svc: svc, log: log}
}

// Execute stores an application and notifies admissions staff.
// A failed WhatsApp notification still returns 201 with a caveat message.
//
//	@Summary		Submit application
//	@Description	Stores a course application and notifies admissions staff by email and WhatsApp
//	@Tags			applications
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ApplyRequest	true	"Application form"
//	@Success		201		{object}	ApplyResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/apply [post]
func (h *PostApplyHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ApplyRequest](w, r)
	if !ok {
		return
	}

	out, err := h.svc.Intake.Submit(r.Context(), appsvcs.SubmitInput{
		Name:   req.Name.String(),
		Email:  req.Email.String(),
		Phone:  req.Phone.String(),
		Course: req.Course.String(),
	})
	if err != nil {
		if !errors.Is(err, admdomain.ErrMissingFields) {
			h.log.ErrorContext(r.Context(), "failed to store application", "error", err)
		}
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, ApplyResponse{Message: out.Message, ID: out.ID})
}
