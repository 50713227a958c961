package handler

import (
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/court-reservation/internal/booking"
    "github.com/iliyamo/court-reservation/internal/repository"
)

// CatalogHandler serves the public court/equipment/time-slot catalog.
// All routes are unauthenticated reads and sit behind the response
// cache middleware.
type CatalogHandler struct {
    Courts    *repository.CourtRepo
    Equipment *repository.EquipmentRepo
}

// NewCatalogHandler constructs a CatalogHandler. Dependencies must be non-nil.
func NewCatalogHandler(courts *repository.CourtRepo, equipment *repository.EquipmentRepo) *CatalogHandler {
    if courts == nil || equipment == nil {
        panic("nil repository passed to NewCatalogHandler")
    }
    return &CatalogHandler{Courts: courts, Equipment: equipment}
}

// ListCourts handles GET /v1/courts.
func (h *CatalogHandler) ListCourts(c echo.Context) error {
    courts, err := h.Courts.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": courts})
}

// GetCourt handles GET /v1/courts/:id.
func (h *CatalogHandler) GetCourt(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid court id"})
    }
    court, err := h.Courts.GetByID(c.Request().Context(), id)
    if err != nil {
        if err == repository.ErrCourtNotFound {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": court})
}

// ListEquipment handles GET /v1/equipment.
func (h *CatalogHandler) ListEquipment(c echo.Context) error {
    items, err := h.Equipment.List(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// ListTimeSlots handles GET /v1/time-slots. The slot catalog is fixed
// in code, so no repository is involved.
func (h *CatalogHandler) ListTimeSlots(c echo.Context) error {
    return c.JSON(http.StatusOK, echo.Map{"items": booking.HourlyBands()})
}
