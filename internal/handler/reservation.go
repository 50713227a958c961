package handler

import (
    "errors"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/court-reservation/internal/booking"
    "github.com/iliyamo/court-reservation/internal/model"
    "github.com/iliyamo/court-reservation/internal/repository"
)

// ReservationHandler groups the repositories behind the authenticated
// reservation endpoints. JWT middleware has already run; methods may
// still return 401 when the user id cannot be read from context.
type ReservationHandler struct {
    Courts       *repository.CourtRepo
    Equipment    *repository.EquipmentRepo
    Reservations *repository.ReservationRepo
    Gateway      PaymentGateway
    Rec          *Reconciler
}

// NewReservationHandler constructs a ReservationHandler. All
// dependencies must be non-nil.
func NewReservationHandler(courts *repository.CourtRepo, equipment *repository.EquipmentRepo, reservations *repository.ReservationRepo, gw PaymentGateway, rec *Reconciler) *ReservationHandler {
    if courts == nil || equipment == nil || reservations == nil || gw == nil || rec == nil {
        panic("nil dependency passed to NewReservationHandler")
    }
    return &ReservationHandler{Courts: courts, Equipment: equipment, Reservations: reservations, Gateway: gw, Rec: rec}
}

// validDate reports whether s is a YYYY-MM-DD date.
func validDate(s string) bool {
    _, err := time.Parse("2006-01-02", s)
    return err == nil
}

// validClock reports whether s is an HH:MM:SS time of day.
func validClock(s string) bool {
    _, err := time.Parse("15:04:05", s)
    return err == nil
}

// GetAvailability handles GET /v1/reservations/availability. It folds
// the court's confirmed reservations for the date into the fixed
// hourly bands. The result is advisory; booking re-checks conflicts
// inside a transaction.
func (h *ReservationHandler) GetAvailability(c echo.Context) error {
    courtID, err := strconv.ParseUint(c.QueryParam("courtId"), 10, 64)
    if err != nil || courtID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "courtId is required"})
    }
    date := c.QueryParam("date")
    if !validDate(date) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
    }
    ctx := c.Request().Context()
    if _, err := h.Courts.GetByID(ctx, courtID); err != nil {
        if errors.Is(err, repository.ErrCourtNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    confirmed, err := h.Reservations.ListConfirmedByCourtDate(ctx, courtID, date)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    bands := booking.MarkAvailability(booking.HourlyBands(), confirmed)
    return c.JSON(http.StatusOK, echo.Map{
        "courtId": courtID,
        "date":    date,
        "slots":   bands,
    })
}

type equipmentSelectionReq struct {
    ID       uint64 `json:"id"`
    Quantity uint32 `json:"quantity"`
}

type createReservationReq struct {
    CourtID   uint64                  `json:"court_id"`
    Date      string                  `json:"date"`
    StartTime string                  `json:"start_time"`
    EndTime   string                  `json:"end_time"`
    Equipment []equipmentSelectionReq `json:"equipment"`
    Notes     *string                 `json:"notes"`
}

// Create handles POST /v1/reservations. The reservation is written as
// CONFIRMED, so it is immediately visible to the conflict probe and
// to availability; PENDING is reserved for flows that await payment.
// The conflict probe and the insert share one transaction so two
// clients racing for the same slot serialize instead of
// double-booking.
func (h *ReservationHandler) Create(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createReservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }
    if req.CourtID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "court_id is required"})
    }
    if !validDate(req.Date) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
    }
    if !validClock(req.StartTime) || !validClock(req.EndTime) || req.StartTime >= req.EndTime {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time window"})
    }

    ctx := c.Request().Context()
    court, err := h.Courts.GetByID(ctx, req.CourtID)
    if err != nil {
        if errors.Is(err, repository.ErrCourtNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "court not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if !court.Bookable() {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "court is not available for booking"})
    }

    // Resolve equipment selections up front so pricing never sees an
    // unknown id.
    selections := make([]booking.EquipmentSelection, 0, len(req.Equipment))
    if len(req.Equipment) > 0 {
        ids := make([]uint64, 0, len(req.Equipment))
        for _, sel := range req.Equipment {
            if sel.Quantity < 1 {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "equipment quantity must be at least 1"})
            }
            ids = append(ids, sel.ID)
        }
        found, err := h.Equipment.GetByIDs(ctx, ids)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        for _, sel := range req.Equipment {
            item, ok := found[sel.ID]
            if !ok {
                return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown equipment id"})
            }
            selections = append(selections, booking.EquipmentSelection{Equipment: item, Quantity: sel.Quantity})
        }
    }
    total, err := booking.ComputeTotal(*court, selections)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    }

    tx, err := h.Reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    conflict, err := h.Reservations.HasConflictTx(ctx, tx, court.ID, req.Date, req.StartTime, req.EndTime, 0)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    if conflict {
        return c.JSON(http.StatusConflict, echo.Map{"error": "time slot already reserved"})
    }

    res := &model.Reservation{
        UserID:      userID,
        CourtID:     court.ID,
        Date:        req.Date,
        StartTime:   req.StartTime,
        EndTime:     req.EndTime,
        Status:      model.ReservationConfirmed,
        TotalAmount: total,
        ReferenceNo: booking.NewReferenceNo(),
        Notes:       req.Notes,
    }
    if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.JSON(http.StatusCreated, echo.Map{"item": res})
}

type createFromPaymentReq struct {
    PaymentID string `json:"paymentId"`
}

// CreateFromPayment handles POST /v1/reservations/from-payment. The
// browser calls this after returning from checkout with a payment id;
// the payment is fetched from the gateway and pushed through the same
// reconciliation the webhook uses, so whichever path lands first wins
// and the other becomes a no-op.
func (h *ReservationHandler) CreateFromPayment(c echo.Context) error {
    if _, err := getUserID(c); err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req createFromPaymentReq
    if err := c.Bind(&req); err != nil || req.PaymentID == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "paymentId required"})
    }
    ctx := c.Request().Context()
    payment, err := h.Gateway.GetPayment(ctx, req.PaymentID)
    if err != nil {
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "payment lookup failed"})
    }
    if payment.Attributes.Status != "paid" {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "payment is not paid"})
    }
    created, err := h.Rec.ReconcilePaid(ctx, payment)
    if errors.Is(err, errAlreadyProcessed) {
        return c.JSON(http.StatusOK, echo.Map{"message": "already processed", "items": []model.Reservation{}})
    }
    if err != nil {
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": err.Error()})
    }
    return c.JSON(http.StatusCreated, echo.Map{"items": created})
}

// ListMine handles GET /v1/reservations/my-reservations, newest first
// with court and payments expanded.
func (h *ReservationHandler) ListMine(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    details, err := h.Reservations.ListByUser(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// loadOwned fetches a reservation and enforces ownership. Admins may
// touch any reservation.
func (h *ReservationHandler) loadOwned(c echo.Context, id uint64) (*model.Reservation, error) {
    userID, err := getUserID(c)
    if err != nil {
        return nil, echo.ErrUnauthorized
    }
    res, err := h.Reservations.GetByID(c.Request().Context(), id)
    if err != nil {
        return nil, err
    }
    role, _ := c.Get("role").(string)
    if res.UserID != userID && role != "ADMIN" {
        return nil, repository.ErrForbidden
    }
    return res, nil
}

// Get handles GET /v1/reservations/:id with court, owner and payments
// expanded.
func (h *ReservationHandler) Get(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    if _, err := h.loadOwned(c, id); err != nil {
        return reservationError(c, err)
    }
    detail, err := h.Reservations.GetDetail(c.Request().Context(), id)
    if err != nil {
        return reservationError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

type updateReservationReq struct {
    Date      *string `json:"date"`
    StartTime *string `json:"start_time"`
    EndTime   *string `json:"end_time"`
    Status    *string `json:"status"`
    Notes     *string `json:"notes"`
}

// Update handles PATCH /v1/reservations/:id. Only legal status
// transitions are accepted; terminal states admit no change at all.
// Rescheduling re-probes for conflicts inside a transaction.
func (h *ReservationHandler) Update(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    var req updateReservationReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
    }

    current, err := h.loadOwned(c, id)
    if err != nil {
        return reservationError(c, err)
    }

    if req.Status != nil {
        if !model.CanTransition(current.Status, *req.Status) {
            return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "illegal status transition"})
        }
    } else if current.Status == model.ReservationCancelled || current.Status == model.ReservationCompleted {
        // Terminal reservations are read-only.
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "reservation is final"})
    }

    date := current.Date
    start := current.StartTime
    end := current.EndTime
    reschedule := false
    if req.Date != nil {
        if !validDate(*req.Date) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
        }
        date, reschedule = *req.Date, true
    }
    if req.StartTime != nil {
        if !validClock(*req.StartTime) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid start_time"})
        }
        start, reschedule = *req.StartTime, true
    }
    if req.EndTime != nil {
        if !validClock(*req.EndTime) {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid end_time"})
        }
        end, reschedule = *req.EndTime, true
    }
    if start >= end {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid time window"})
    }

    ctx := c.Request().Context()
    patch := repository.ReservationPatch{
        Date:      req.Date,
        StartTime: req.StartTime,
        EndTime:   req.EndTime,
        Status:    req.Status,
        Notes:     req.Notes,
    }
    if reschedule {
        // Probe and write in one transaction; the probe excludes this
        // reservation so moving within or over its own window is not
        // a conflict.
        tx, err := h.Reservations.DB().BeginTx(ctx, nil)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
        }
        committed := false
        defer func() {
            if !committed {
                _ = tx.Rollback()
            }
        }()
        conflict, err := h.Reservations.HasConflictTx(ctx, tx, current.CourtID, date, start, end, id)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
        }
        if conflict {
            return c.JSON(http.StatusConflict, echo.Map{"error": "time slot already reserved"})
        }
        if err := h.Reservations.UpdateTx(ctx, tx, id, patch); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
        }
        if err := tx.Commit(); err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
        }
        committed = true
    } else if err := h.Reservations.Update(ctx, id, patch); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update reservation"})
    }
    updated, err := h.Reservations.GetByID(ctx, id)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reload reservation"})
    }
    return c.JSON(http.StatusOK, echo.Map{"item": updated})
}

// Delete handles DELETE /v1/reservations/:id. Payments cascade via
// the foreign key.
func (h *ReservationHandler) Delete(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
    }
    if _, err := h.loadOwned(c, id); err != nil {
        return reservationError(c, err)
    }
    if err := h.Reservations.Delete(c.Request().Context(), id); err != nil {
        return reservationError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// reservationError maps repository sentinels to HTTP responses.
func reservationError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, repository.ErrReservationNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
    case errors.Is(err, repository.ErrForbidden):
        return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
    case errors.Is(err, echo.ErrUnauthorized):
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    default:
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
}
