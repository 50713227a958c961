package handler

import (
    "encoding/json"
    "errors"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/court-reservation/internal/paymongo"
)

// PaymentHandler fronts the gateway for the browser client: checkout
// session creation and payment-intent status polling.
type PaymentHandler struct {
    Gateway *paymongo.Client
}

// NewPaymentHandler constructs a PaymentHandler.
func NewPaymentHandler(gw *paymongo.Client) *PaymentHandler {
    if gw == nil {
        panic("nil gateway passed to NewPaymentHandler")
    }
    return &PaymentHandler{Gateway: gw}
}

type createCheckoutReq struct {
    Amount      float64      `json:"amount"`
    Description string       `json:"description"`
    BookingData *BookingData `json:"bookingData"`
}

// CreateCheckout handles POST /payment/create-checkout. When booking
// context is supplied it is serialized into intent metadata so the
// gateway echoes it back on the eventual payment, where the webhook
// picks it up; a session without it can still be paid but will not
// reconcile into reservations.
func (h *PaymentHandler) CreateCheckout(c echo.Context) error {
    var req createCheckoutReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid body"})
    }
    if req.Amount <= 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "amount must be positive"})
    }

    var metadata map[string]string
    if req.BookingData != nil {
        if req.BookingData.UserID == 0 || len(req.BookingData.CourtBookings) == 0 {
            return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "bookingData is incomplete"})
        }
        raw, err := json.Marshal(req.BookingData)
        if err != nil {
            return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "encode booking data failed"})
        }
        metadata = map[string]string{"bookingData": string(raw)}
    }

    description := req.Description
    if description == "" {
        description = "Court reservation"
    }

    session, err := h.Gateway.CreateCheckoutSession(c.Request().Context(), req.Amount, "PHP", description, metadata)
    if err != nil {
        return gatewayError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "data": session})
}

// GetStatus handles GET /payment/status/:paymentIntentId. The browser
// polls this after returning from the hosted checkout page.
func (h *PaymentHandler) GetStatus(c echo.Context) error {
    id := c.Param("paymentIntentId")
    if id == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "payment intent id required"})
    }
    intent, err := h.Gateway.GetPaymentIntent(c.Request().Context(), id)
    if err != nil {
        return gatewayError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "success": true,
        "data": echo.Map{
            "paymentIntentId": intent.ID,
            "status":          intent.Attributes.Status,
            "amount":          float64(intent.Attributes.Amount) / 100,
            "currency":        intent.Attributes.Currency,
        },
    })
}

// gatewayError maps gateway failures onto the {success:false,message}
// envelope, surfacing the provider's own detail when available.
func gatewayError(c echo.Context, err error) error {
    var apiErr *paymongo.APIError
    if errors.As(err, &apiErr) {
        msg := apiErr.Detail
        if msg == "" {
            msg = "payment gateway error"
        }
        return c.JSON(http.StatusBadGateway, echo.Map{"success": false, "message": msg})
    }
    return c.JSON(http.StatusBadGateway, echo.Map{"success": false, "message": "payment gateway unreachable"})
}
