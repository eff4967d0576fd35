// Package errhttp maps domain sentinel errors to HTTP responses.
// Add a row to mappings for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/magmaminds/admissions/pkg/httpx"
	admdomain "github.com/magmaminds/admissions/services/admissions/domain"
)

type mapping struct {
	target  error
	status  int
	message string
}

// mappings carries the public message for each sentinel. Wrapped detail is
// never written to the client.
var mappings = []mapping{
	{admdomain.ErrMissingFields, http.StatusBadRequest, "All fields are required"},
}

// WriteError maps err to an HTTP status and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Unrecognized errors become a generic 500.
func WriteError(w http.ResponseWriter, err error) {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			httpx.JSONError(w, m.status, m.message)
			return
		}
	}
	httpx.InternalError(w)
}
