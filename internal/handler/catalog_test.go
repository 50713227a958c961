package handler

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/court-reservation/internal/repository"
)

func TestListTimeSlotsReturnsFixedBands(t *testing.T) {
    h := NewCatalogHandler(repository.NewCourtRepo(nil), repository.NewEquipmentRepo(nil))

    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/time-slots", nil)
    rec := httptest.NewRecorder()
    require.NoError(t, h.ListTimeSlots(e.NewContext(req, rec)))

    assert.Equal(t, http.StatusOK, rec.Code)
    body := rec.Body.String()
    assert.Contains(t, body, `"start_time":"08:00:00"`)
    assert.Contains(t, body, `"end_time":"23:00:00"`)
}
