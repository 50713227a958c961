package handler

import (
    "context"
    "testing"
    "time"

    "github.com/DATA-DOG/go-sqlmock"
    "github.com/go-sql-driver/mysql"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/court-reservation/internal/paymongo"
    "github.com/iliyamo/court-reservation/internal/repository"
)

func TestParseBookingData(t *testing.T) {
    raw := `{"userId":7,"courtBookings":[
        {"court":"Court 1","date":"2025-06-01","schedule":"9:00 AM - 10:00 AM","price":220},
        {"court":"Court 2","date":"2025-06-01","schedule":"10:00 AM - 11:00 AM","price":250}
    ]}`
    bd, err := parseBookingData(raw)
    require.NoError(t, err)
    assert.Equal(t, uint64(7), bd.UserID)
    require.Len(t, bd.CourtBookings, 2)
    assert.Equal(t, "Court 1", bd.CourtBookings[0].Court)
    assert.Equal(t, 250.0, bd.CourtBookings[1].Price)
}

func newMockReconciler(t *testing.T) (*Reconciler, sqlmock.Sqlmock) {
    t.Helper()
    db, mock, err := sqlmock.New()
    require.NoError(t, err)
    t.Cleanup(func() { db.Close() })
    return &Reconciler{
        Courts:       repository.NewCourtRepo(db),
        Reservations: repository.NewReservationRepo(db),
        Payments:     repository.NewPaymentRepo(db),
        Users:        repository.NewUserRepo(db),
    }, mock
}

func TestReconcilePaidDuplicateDeliveryIsNoOp(t *testing.T) {
    rec, mock := newMockReconciler(t)

    // A second delivery loses the claim on the unique payment_ref key
    // and must touch nothing else.
    mock.ExpectExec("INSERT INTO processed_payments").
        WithArgs("pay_dup").
        WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'pay_dup' for key 'payment_ref'"})

    pay := &paymongo.Payment{ID: "pay_dup"}
    created, err := rec.ReconcilePaid(context.Background(), pay)
    assert.ErrorIs(t, err, errAlreadyProcessed)
    assert.Empty(t, created)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcilePaidReleasesClaimWhenNothingBooked(t *testing.T) {
    rec, mock := newMockReconciler(t)

    mock.ExpectExec("INSERT INTO processed_payments").
        WithArgs("pay_bad").
        WillReturnResult(sqlmock.NewResult(1, 1))
    mock.ExpectExec("DELETE FROM processed_payments").
        WithArgs("pay_bad").
        WillReturnResult(sqlmock.NewResult(0, 1))

    pay := &paymongo.Payment{ID: "pay_bad"}
    _, err := rec.ReconcilePaid(context.Background(), pay)
    require.Error(t, err)
    assert.NotErrorIs(t, err, errAlreadyProcessed)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcilePaidClaimsBeforeWriting(t *testing.T) {
    rec, mock := newMockReconciler(t)

    mock.ExpectExec("INSERT INTO processed_payments").
        WithArgs("pay_ok").
        WillReturnResult(sqlmock.NewResult(1, 1))
    mock.ExpectQuery("FROM courts WHERE LOWER").
        WillReturnRows(courtRows(1, "Court 1", 220))
    mock.ExpectBegin()
    mock.ExpectQuery("FOR UPDATE").
        WithArgs(1, "2025-06-01", "10:00:00", "09:00:00", 0).
        WillReturnRows(sqlmock.NewRows([]string{"id"}))
    mock.ExpectExec("INSERT INTO reservations").
        WillReturnResult(sqlmock.NewResult(11, 1))
    mock.ExpectQuery("FROM reservations WHERE id").
        WillReturnRows(reservationRow(11, 7, 1, "2025-06-01", "09:00:00", "10:00:00", "CONFIRMED"))
    mock.ExpectExec("INSERT INTO payments").
        WillReturnResult(sqlmock.NewResult(21, 1))
    mock.ExpectQuery("FROM payments WHERE id").
        WillReturnRows(sqlmock.NewRows([]string{"id", "reservation_id", "amount", "method", "transaction_id",
            "reference_no", "status", "notes", "created_at", "updated_at"}).
            AddRow(21, 11, 220.0, "GCASH", "pay_ok", "REF1", "COMPLETED", nil, time.Now(), time.Now()))
    mock.ExpectCommit()

    pay := &paymongo.Payment{ID: "pay_ok"}
    pay.Attributes.Amount = 22000
    pay.Attributes.Source.Type = "gcash"
    pay.Attributes.Metadata = map[string]string{
        "bookingData": `{"userId":7,"courtBookings":[{"court":"Court 1","date":"2025-06-01","schedule":"9:00 AM - 10:00 AM","price":220}]}`,
    }
    created, err := rec.ReconcilePaid(context.Background(), pay)
    require.NoError(t, err)
    require.Len(t, created, 1)
    assert.Equal(t, "CONFIRMED", created[0].Status)
    assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseBookingDataRejectsBadInput(t *testing.T) {
    cases := []struct {
        name string
        raw  string
    }{
        {"empty", ""},
        {"not json", "{nope"},
        {"missing user", `{"courtBookings":[{"court":"Court 1","date":"2025-06-01","schedule":"9:00 AM - 10:00 AM"}]}`},
        {"no bookings", `{"userId":7,"courtBookings":[]}`},
        {"incomplete line", `{"userId":7,"courtBookings":[{"court":"","date":"2025-06-01","schedule":"9:00 AM - 10:00 AM"}]}`},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            _, err := parseBookingData(tc.raw)
            assert.Error(t, err)
        })
    }
}
