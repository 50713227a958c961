package handler

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/iliyamo/court-reservation/internal/booking"
    "github.com/iliyamo/court-reservation/internal/mailer"
    "github.com/iliyamo/court-reservation/internal/model"
    "github.com/iliyamo/court-reservation/internal/paymongo"
    "github.com/iliyamo/court-reservation/internal/queue"
    "github.com/iliyamo/court-reservation/internal/repository"
    queue_publisher "github.com/iliyamo/court-reservation/internal/service"
)

// BookingData is the booking context the browser client embeds in
// checkout metadata. It arrives as a JSON string inside the payment's
// metadata map and is validated before any row is written.
type BookingData struct {
    UserID        uint64         `json:"userId"`
    CourtBookings []CourtBooking `json:"courtBookings"`
}

// CourtBooking is one court/date/schedule line of a paid booking.
// Schedule is a human-readable range like "9:00 AM - 10:00 AM".
type CourtBooking struct {
    Court    string  `json:"court"`
    Date     string  `json:"date"`
    Schedule string  `json:"schedule"`
    Price    float64 `json:"price"`
}

// errAlreadyProcessed marks a payment whose reservations were already
// written; replayed webhook deliveries map to a success no-op.
var errAlreadyProcessed = errors.New("payment already processed")

// parseBookingData decodes and validates the metadata bookingData
// string. Every line must name a court, a date and a schedule.
func parseBookingData(raw string) (*BookingData, error) {
    if strings.TrimSpace(raw) == "" {
        return nil, errors.New("missing bookingData metadata")
    }
    var bd BookingData
    if err := json.Unmarshal([]byte(raw), &bd); err != nil {
        return nil, fmt.Errorf("decode bookingData: %w", err)
    }
    if bd.UserID == 0 {
        return nil, errors.New("bookingData: userId is required")
    }
    if len(bd.CourtBookings) == 0 {
        return nil, errors.New("bookingData: courtBookings is empty")
    }
    for i, cb := range bd.CourtBookings {
        if strings.TrimSpace(cb.Court) == "" || strings.TrimSpace(cb.Date) == "" || strings.TrimSpace(cb.Schedule) == "" {
            return nil, fmt.Errorf("bookingData: line %d is incomplete", i)
        }
    }
    return &bd, nil
}

// Reconciler turns a completed gateway payment into CONFIRMED
// reservation and payment rows. Both the webhook and the
// from-payment endpoint run the same code path, so a client-side
// confirmation and a replayed webhook converge on identical rows.
type Reconciler struct {
    Courts       *repository.CourtRepo
    Reservations *repository.ReservationRepo
    Payments     *repository.PaymentRepo
    Users        *repository.UserRepo
    Mail         *mailer.Mailer
}

// ReconcilePaid writes one reservation and payment row per booking
// line of the paid payment. The payment id is claimed through a
// unique-keyed processed_payments row before any line is written, so
// two concurrent deliveries of the same event resolve to one winner
// and one errAlreadyProcessed no-op. Each line then commits in its
// own transaction: a conflicting or unresolvable line is skipped with
// a log entry while the rest proceed, because the money has already
// been captured and a partial booking beats losing the whole payment.
// When every line fails the claim is released so a redelivery can
// retry.
func (r *Reconciler) ReconcilePaid(ctx context.Context, pay *paymongo.Payment) ([]model.Reservation, error) {
    claimed, err := r.Payments.ClaimPaymentRef(ctx, pay.ID)
    if err != nil {
        return nil, fmt.Errorf("claim payment: %w", err)
    }
    if !claimed {
        return nil, errAlreadyProcessed
    }

    bd, err := parseBookingData(pay.Attributes.Metadata["bookingData"])
    if err != nil {
        r.releaseClaim(ctx, pay.ID)
        return nil, err
    }

    method := booking.ClassifyMethod(pay.Attributes.Source.Type)
    paymentRef := pay.ID

    created := make([]model.Reservation, 0, len(bd.CourtBookings))
    var lineErrs []string
    for _, cb := range bd.CourtBookings {
        res, err := r.createLine(ctx, bd.UserID, cb, method, paymentRef)
        if err != nil {
            log.Printf("reconcile: payment %s line %q %s %q skipped: %v", paymentRef, cb.Court, cb.Date, cb.Schedule, err)
            lineErrs = append(lineErrs, err.Error())
            continue
        }
        created = append(created, *res)
    }

    if len(created) == 0 {
        r.releaseClaim(ctx, pay.ID)
        return nil, fmt.Errorf("no reservations created: %s", strings.Join(lineErrs, "; "))
    }

    r.notify(bd.UserID, pay, created, method)
    return created, nil
}

// releaseClaim drops the processed_payments row when nothing was
// booked, logging rather than failing since the caller already has an
// error to report.
func (r *Reconciler) releaseClaim(ctx context.Context, paymentRef string) {
    if err := r.Payments.ReleasePaymentRef(ctx, paymentRef); err != nil {
        log.Printf("reconcile: release claim %s failed: %v", paymentRef, err)
    }
}

// createLine resolves one booking line and commits its reservation
// and payment atomically.
func (r *Reconciler) createLine(ctx context.Context, userID uint64, cb CourtBooking, method, paymentRef string) (*model.Reservation, error) {
    court, err := r.Courts.GetByName(ctx, cb.Court)
    if err != nil {
        return nil, err
    }
    if !court.Bookable() {
        return nil, repository.ErrCourtUnavailable
    }
    start, end, err := booking.ParseScheduleRange(cb.Schedule)
    if err != nil {
        return nil, err
    }

    tx, err := r.Reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return nil, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    conflict, err := r.Reservations.HasConflictTx(ctx, tx, court.ID, cb.Date, start, end, 0)
    if err != nil {
        return nil, err
    }
    if conflict {
        return nil, repository.ErrSlotConflict
    }

    ref := booking.NewReferenceNo()
    res := &model.Reservation{
        UserID:      userID,
        CourtID:     court.ID,
        Date:        cb.Date,
        StartTime:   start,
        EndTime:     end,
        Status:      model.ReservationConfirmed,
        TotalAmount: cb.Price,
        ReferenceNo: ref,
        PaymentRef:  &paymentRef,
    }
    if err := r.Reservations.CreateTx(ctx, tx, res); err != nil {
        return nil, err
    }
    pay := &model.Payment{
        ReservationID: res.ID,
        Amount:        cb.Price,
        Method:        method,
        TransactionID: paymentRef,
        ReferenceNo:   ref,
        Status:        model.PaymentCompleted,
    }
    if err := r.Payments.CreateTx(ctx, tx, pay); err != nil {
        return nil, err
    }
    if err := tx.Commit(); err != nil {
        return nil, err
    }
    committed = true
    return res, nil
}

// notify publishes the reservation.confirmed event and emails the
// receipt. Both are best-effort; failures are logged and never affect
// the webhook acknowledgement.
func (r *Reconciler) notify(userID uint64, pay *paymongo.Payment, created []model.Reservation, method string) {
    name := pay.Attributes.Billing.Name
    email := pay.Attributes.Billing.Email
    if u, err := r.Users.GetByID(context.Background(), userID); err == nil {
        if u.FullName != "" {
            name = u.FullName
        }
        if u.Email != "" {
            email = u.Email
        }
    }

    total := float64(pay.Attributes.Amount) / 100
    bookings := make([]queue.ConfirmedBooking, 0, len(created))
    lines := make([]mailer.ReceiptLine, 0, len(created))
    for _, res := range created {
        courtName := ""
        if court, err := r.Courts.GetByID(context.Background(), res.CourtID); err == nil {
            courtName = court.Name
        }
        bookings = append(bookings, queue.ConfirmedBooking{
            ReservationID: res.ID,
            CourtName:     courtName,
            Date:          res.Date,
            StartTime:     res.StartTime,
            EndTime:       res.EndTime,
        })
        lines = append(lines, mailer.ReceiptLine{
            CourtName: courtName,
            Date:      res.Date,
            StartTime: res.StartTime,
            EndTime:   res.EndTime,
        })
    }

    event := queue.ReservationConfirmedEvent{
        PaymentRef:    pay.ID,
        UserID:        userID,
        CustomerName:  name,
        CustomerEmail: email,
        TotalAmount:   total,
        Method:        method,
        Bookings:      bookings,
        ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
    }
    go func() {
        _ = queue_publisher.PublishReservationConfirmed(context.Background(), event)
    }()

    if r.Mail != nil && r.Mail.Enabled() && email != "" {
        go func() {
            if err := r.Mail.SendReceipt(email, name, lines, total, pay.ID); err != nil {
                log.Printf("reconcile: receipt mail to %s failed: %v", email, err)
            }
        }()
    }
}
