package handler

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "log"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/court-reservation/internal/config"
    "github.com/iliyamo/court-reservation/internal/paymongo"
)

// PaymentGateway is the slice of the gateway client the webhook
// needs. Narrowing to an interface keeps the reconciliation path
// testable against a fake.
type PaymentGateway interface {
    GetPayment(ctx context.Context, id string) (*paymongo.Payment, error)
}

// WebhookHandler receives PayMongo event deliveries, verifies their
// signature and reconciles paid payments into reservations.
type WebhookHandler struct {
    Cfg     config.Config
    Gateway PaymentGateway
    Rec     *Reconciler
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(cfg config.Config, gw PaymentGateway, rec *Reconciler) *WebhookHandler {
    if gw == nil || rec == nil {
        panic("nil dependency passed to NewWebhookHandler")
    }
    return &WebhookHandler{Cfg: cfg, Gateway: gw, Rec: rec}
}

// HandlePayMongo handles POST /webhook/paymongo. The raw body is read
// first because the signature covers the exact payload bytes. Event
// handling always acknowledges with HTTP 200 so the provider stops
// retrying; only an unverifiable signature is rejected.
func (h *WebhookHandler) HandlePayMongo(c echo.Context) error {
    payload, err := io.ReadAll(c.Request().Body)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "unreadable body"})
    }

    sig := c.Request().Header.Get("Paymongo-Signature")
    if err := paymongo.VerifySignature(sig, payload, h.Cfg.PayMongoWebhookSecret); err != nil {
        log.Printf("webhook: signature rejected: %v", err)
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "invalid signature"})
    }

    var event paymongo.Event
    if err := json.Unmarshal(payload, &event); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "malformed event"})
    }

    ctx := c.Request().Context()
    eventType := event.Data.Attributes.Type
    switch eventType {
    case "payment.paid":
        paymentID := event.Data.Attributes.Data.ID
        if paymentID == "" {
            return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "event carried no payment id"})
        }
        // Re-fetch the payment so reconciliation runs on the
        // gateway's authoritative state, not the delivered copy.
        payment, err := h.Gateway.GetPayment(ctx, paymentID)
        if err != nil {
            log.Printf("webhook: fetch payment %s failed: %v", paymentID, err)
            return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "payment lookup failed"})
        }
        created, err := h.Rec.ReconcilePaid(ctx, payment)
        if errors.Is(err, errAlreadyProcessed) {
            return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "already processed"})
        }
        if err != nil {
            log.Printf("webhook: reconcile payment %s failed: %v", paymentID, err)
            return c.JSON(http.StatusOK, echo.Map{"success": false, "message": "reconciliation failed"})
        }
        return c.JSON(http.StatusOK, echo.Map{
            "success": true,
            "message": fmt.Sprintf("created %d reservation(s)", len(created)),
        })

    case "payment.failed", "payment_intent.succeeded", "payment_intent.failed":
        log.Printf("webhook: %s for %s", eventType, event.Data.Attributes.Data.ID)
        return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "acknowledged"})

    default:
        return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "ignored"})
    }
}

// testWebhookReq drives the synthetic reconciliation endpoint.
type testWebhookReq struct {
    UserID        uint64         `json:"userId"`
    Amount        float64        `json:"amount"`
    CourtBookings []CourtBooking `json:"courtBookings"`
}

// TestWebhook handles POST /webhook/test-webhook. It synthesizes a
// paid payment from the request body and runs the normal
// reconciliation path without calling the gateway. Intended for
// development and integration environments.
func (h *WebhookHandler) TestWebhook(c echo.Context) error {
    var req testWebhookReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
    }
    if req.UserID == 0 || len(req.CourtBookings) == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "userId and courtBookings required"})
    }
    amount := req.Amount
    if amount == 0 {
        for _, cb := range req.CourtBookings {
            amount += cb.Price
        }
    }

    bd, err := json.Marshal(BookingData{UserID: req.UserID, CourtBookings: req.CourtBookings})
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "encode booking data failed"})
    }

    var payment paymongo.Payment
    payment.ID = fmt.Sprintf("test_%d", time.Now().UnixMilli())
    payment.Attributes.Amount = int64(amount * 100)
    payment.Attributes.Currency = "PHP"
    payment.Attributes.Status = "paid"
    payment.Attributes.Metadata = map[string]string{"bookingData": string(bd)}
    payment.Attributes.Source.Type = "gcash"

    created, err := h.Rec.ReconcilePaid(c.Request().Context(), &payment)
    if err != nil {
        log.Printf("test-webhook: reconcile failed: %v", err)
        return c.JSON(http.StatusOK, echo.Map{"success": false, "message": err.Error()})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "success": true,
        "message": fmt.Sprintf("created %d reservation(s)", len(created)),
        "items":   created,
    })
}
