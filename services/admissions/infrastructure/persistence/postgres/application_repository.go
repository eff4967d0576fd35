package postgres

import (
	"context"
	"fmt"

	"github.com/magmaminds/admissions/pkg/database"
	"github.com/magmaminds/admissions/services/admissions/domain/models"
	"github.com/magmaminds/admissions/services/admissions/infrastructure/persistence/postgres/db"
)

// ApplicationRepository implements repositories.ApplicationRepository against PostgreSQL.
type ApplicationRepository struct {
	db *database.Database
}

// NewApplicationRepository returns an ApplicationRepository backed by the given pool.
func NewApplicationRepository(database *database.Database) *ApplicationRepository {
	return &ApplicationRepository{db: database}
}

// Create inserts app outside any explicit transaction and returns the generated id.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) (int64, error) {
	q := db.New(r.db.DB())
	id, err := q.InsertApplication(ctx, db.InsertApplicationParams{
		Name:      app.Name,
		Email:     app.Email,
		Phone:     app.Phone,
		Course:    app.Course,
		CreatedAt: app.SubmittedAt,
	})
	if err != nil {
		return 0, fmt.Errorf("insert application: %w", err)
	}
	return id, nil
}
