package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/court-reservation/internal/repository"
)

func newMockReservationHandler(t *testing.T) (*ReservationHandler, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    courts := repository.NewCourtRepo(db)
    equipment := repository.NewEquipmentRepo(db)
    reservations := repository.NewReservationRepo(db)
    rec := &Reconciler{
        Courts:       courts,
        Reservations: reservations,
        Payments:     repository.NewPaymentRepo(db),
        Users:        repository.NewUserRepo(db),
    }
    return NewReservationHandler(courts, equipment, reservations, &fakeGateway{}, rec), mock
}

func reservationCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    req := httptest.NewRequest(method, target, strings.NewReader(body))
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", uint64(7))
    c.Set("role", "CUSTOMER")
    return c, rec
}

func courtRows(id uint64, name string, price float64) *sqlmock.Rows {
    now := time.Now()
    return sqlmock.NewRows([]string{"id", "name", "description", "status", "hourly_price", "created_at", "updated_at"}).
        AddRow(id, name, nil, "AVAILABLE", price, now, now)
}

func reservationRow(id, userID, courtID uint64, date, start, end, status string) *sqlmock.Rows {
    now := time.Now()
    return sqlmock.NewRows([]string{"id", "user_id", "court_id", "date", "start_time", "end_time",
        "status", "total_amount", "reference_no", "payment_ref", "notes", "created_at", "updated_at"}).
        AddRow(id, userID, courtID, date, start, end, status, 220.0, "REF1", nil, nil, now, now)
}

func TestCreateRejectsOverlappingBooking(t *testing.T) {
    h, mock := newMockReservationHandler(t)

    mock.ExpectQuery("FROM courts WHERE id").WillReturnRows(courtRows(1, "Court 1", 220))
    mock.ExpectBegin()
    mock.ExpectQuery("FOR UPDATE").
        WithArgs(1, "2025-01-01", "10:30:00", "09:30:00", 0).
        WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
    mock.ExpectRollback()

    body := `{"court_id":1,"date":"2025-01-01","start_time":"09:30:00","end_time":"10:30:00"}`
    c, rec := reservationCtx(http.MethodPost, "/v1/reservations", body)
    require.NoError(t, h.Create(c))
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePersistsConfirmed(t *testing.T) {
    h, mock := newMockReservationHandler(t)

    mock.ExpectQuery("FROM courts WHERE id").WillReturnRows(courtRows(1, "Court 1", 220))
    mock.ExpectBegin()
    mock.ExpectQuery("FOR UPDATE").
        WithArgs(1, "2025-01-01", "10:00:00", "09:00:00", 0).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))
    mock.ExpectExec("INSERT INTO reservations").
        WithArgs(7, 1, "2025-01-01", "09:00:00", "10:00:00", "CONFIRMED", 220.0, sqlmock.AnyArg(), nil, nil).
        WillReturnResult(sqlmock.NewResult(10, 1))
    mock.ExpectQuery("FROM reservations WHERE id").
        WillReturnRows(reservationRow(10, 7, 1, "2025-01-01", "09:00:00", "10:00:00", "CONFIRMED"))
    mock.ExpectCommit()

    body := `{"court_id":1,"date":"2025-01-01","start_time":"09:00:00","end_time":"10:00:00"}`
    c, rec := reservationCtx(http.MethodPost, "/v1/reservations", body)
    require.NoError(t, h.Create(c))
    require.Equal(t, http.StatusCreated, rec.Code)
    assert.Contains(t, rec.Body.String(), `"status":"CONFIRMED"`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAvailabilityFoldsConfirmedBookings(t *testing.T) {
    h, mock := newMockReservationHandler(t)

    mock.ExpectQuery("FROM courts WHERE id").WillReturnRows(courtRows(1, "Court 1", 220))
    mock.ExpectQuery("ORDER BY start_time").
        WillReturnRows(reservationRow(5, 9, 1, "2025-01-01", "09:00:00", "10:00:00", "CONFIRMED"))

    c, rec := reservationCtx(http.MethodGet, "/v1/reservations/availability?courtId=1&date=2025-01-01", "")
    require.NoError(t, h.GetAvailability(c))
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"courtId":1`)
    assert.Contains(t, rec.Body.String(), `{"start_time":"09:00:00","end_time":"10:00:00","available":false}`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRescheduleExcludesOwnRow(t *testing.T) {
    h, mock := newMockReservationHandler(t)

    mock.ExpectQuery("FROM reservations WHERE id").
        WillReturnRows(reservationRow(7, 7, 1, "2025-01-01", "09:00:00", "10:00:00", "CONFIRMED"))
    mock.ExpectBegin()
    // The conflict check carries the reservation's own id so moving
    // over its own window never conflicts, and the write commits in
    // the same transaction.
    mock.ExpectQuery("FOR UPDATE").
        WithArgs(1, "2025-01-01", "10:30:00", "09:30:00", 7).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))
    mock.ExpectExec("UPDATE reservations SET").
        WithArgs("09:30:00", "10:30:00", 7).
        WillReturnResult(sqlmock.NewResult(0, 1))
    mock.ExpectCommit()
    mock.ExpectQuery("FROM reservations WHERE id").
        WillReturnRows(reservationRow(7, 7, 1, "2025-01-01", "09:30:00", "10:30:00", "CONFIRMED"))

    body := `{"start_time":"09:30:00","end_time":"10:30:00"}`
    c, rec := reservationCtx(http.MethodPatch, "/v1/reservations/7", body)
    c.SetParamNames("id")
    c.SetParamValues("7")
    require.NoError(t, h.Update(c))
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"start_time":"09:30:00"`)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRejectsTerminalSameStatus(t *testing.T) {
    h, mock := newMockReservationHandler(t)

    mock.ExpectQuery("FROM reservations WHERE id").
        WillReturnRows(reservationRow(7, 7, 1, "2025-01-01", "09:00:00", "10:00:00", "CANCELLED"))

    body := `{"status":"CANCELLED","date":"2025-01-02"}`
    c, rec := reservationCtx(http.MethodPatch, "/v1/reservations/7", body)
    c.SetParamNames("id")
    c.SetParamValues("7")
    require.NoError(t, h.Update(c))
    assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
    assert.NoError(t, mock.ExpectationsWereMet())
}
