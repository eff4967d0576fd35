package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magmaminds/admissions/pkg/logger"
	appsvcs "github.com/magmaminds/admissions/services/admissions/application/services"
)

func serveStats(svcs *appsvcs.Services) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	NewGetStatsHandler(svcs, logger.Discard()).Execute(rr, httptest.NewRequest(http.MethodGet, "/api/applications/stats", http.NoBody))
	return rr
}

func TestGetStats_ReturnsCounts(t *testing.T) {
	svcs := &appsvcs.Services{Tally: appsvcs.NewTallyService(stubTally{counts: map[string]int64{"Data Science": 3}})}

	rr := serveStats(svcs)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"Data Science":3}`, rr.Body.String())
}

func TestGetStats_ReadError(t *testing.T) {
	svcs := &appsvcs.Services{Tally: appsvcs.NewTallyService(stubTally{err: errors.New("redis: connection pool timeout")})}

	rr := serveStats(svcs)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "redis")
}

func TestGetStats_TallyNotConfigured(t *testing.T) {
	rr := serveStats(&appsvcs.Services{})

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
