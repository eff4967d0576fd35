package repositories

import (
	"context"

	"github.com/magmaminds/admissions/services/admissions/domain/models"
)

// ApplicationRepository is the persistence interface for Applications.
// The domain layer owns this interface; infrastructure implements it.
type ApplicationRepository interface {
	// Create appends app as a single autocommitted insert and returns the
	// store-generated identifier. app is not modified.
	Create(ctx context.Context, app *models.Application) (int64, error)
}
