package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magmaminds/admissions/pkg/database"
	"github.com/magmaminds/admissions/services/catalog/domain/repositories"
)

var courseColumns = []string{"id", "name", "price", "duration", "category"}

func newMockRepo(t *testing.T) (*CourseRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewCourseRepository(database.New(sqlDB)), mock
}

func TestCourseRepository_ListAll(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN course_categories cc ON c.category_id = cc.id\nORDER BY c.id")).
		WillReturnRows(sqlmock.NewRows(courseColumns).
			AddRow(int64(1), "Python Basics", "4999.00", "2 months", "Programming").
			AddRow(int64(2), "UI Fundamentals", "3999.50", "6 weeks", "Design"))

	courses, err := repo.List(context.Background(), repositories.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, courses, 2)

	assert.Equal(t, int64(1), courses[0].ID)
	assert.Equal(t, "Python Basics", courses[0].Name)
	assert.Equal(t, "4999", courses[0].Price.String())
	assert.Equal(t, "2 months", courses[0].Duration)
	assert.Equal(t, "Programming", courses[0].Category)
	assert.Equal(t, "3999.50", courses[1].Price.StringFixed(2))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_ListByCategory(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.category_id::text = $1::text")).
		WithArgs("2").
		WillReturnRows(sqlmock.NewRows(courseColumns).
			AddRow(int64(2), "UI Fundamentals", "3999.50", "6 weeks", "Design"))

	courses, err := repo.List(context.Background(), repositories.CourseFilter{CategoryID: "2"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Design", courses[0].Category)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_OpaqueFilterPassedThrough(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.category_id::text = $1::text")).
		WithArgs("not-a-number").
		WillReturnRows(sqlmock.NewRows(courseColumns))

	courses, err := repo.List(context.Background(), repositories.CourseFilter{CategoryID: "not-a-number"})
	require.NoError(t, err)
	assert.Empty(t, courses)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepository_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	dbErr := errors.New("connection reset")
	mock.ExpectQuery("SELECT c.id").WillReturnError(dbErr)

	courses, err := repo.List(context.Background(), repositories.CourseFilter{})
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Nil(t, courses)
}

func TestCourseRepository_RowErrorReturnsNoPartialResult(t *testing.T) {
	repo, mock := newMockRepo(t)

	rowErr := errors.New("stream broken")
	mock.ExpectQuery("SELECT c.id").
		WillReturnRows(sqlmock.NewRows(courseColumns).
			AddRow(int64(1), "Python Basics", "4999.00", "2 months", "Programming").
			AddRow(int64(2), "UI Fundamentals", "3999.50", "6 weeks", "Design").
			RowError(1, rowErr))

	courses, err := repo.List(context.Background(), repositories.CourseFilter{})
	require.Error(t, err)
	assert.Nil(t, courses)
}
