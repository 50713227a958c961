package handler

import (
    "context"
    "crypto/hmac"
    "crypto/sha256"
    "encoding/hex"
    "fmt"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/court-reservation/internal/config"
    "github.com/iliyamo/court-reservation/internal/paymongo"
)

const testWebhookSecret = "whsk_test_secret"

type fakeGateway struct {
    payment *paymongo.Payment
    err     error
    calls   int
}

func (f *fakeGateway) GetPayment(_ context.Context, _ string) (*paymongo.Payment, error) {
    f.calls++
    return f.payment, f.err
}

func signPayload(payload string) string {
    ts := "1700000000"
    mac := hmac.New(sha256.New, []byte(testWebhookSecret))
    mac.Write([]byte(ts + "." + payload))
    return fmt.Sprintf("t=%s,te=%s,li=", ts, hex.EncodeToString(mac.Sum(nil)))
}

func newWebhookHandler(gw PaymentGateway) *WebhookHandler {
    cfg := config.Config{PayMongoWebhookSecret: testWebhookSecret}
    return NewWebhookHandler(cfg, gw, &Reconciler{})
}

func postWebhook(h *WebhookHandler, payload, signature string) *httptest.ResponseRecorder {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/webhook/paymongo", strings.NewReader(payload))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    if signature != "" {
        req.Header.Set("Paymongo-Signature", signature)
    }
    rec := httptest.NewRecorder()
    _ = h.HandlePayMongo(e.NewContext(req, rec))
    return rec
}

func TestWebhookRejectsMissingSignature(t *testing.T) {
    gw := &fakeGateway{}
    rec := postWebhook(newWebhookHandler(gw), `{"data":{}}`, "")
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.Zero(t, gw.calls)
}

func TestWebhookRejectsTamperedPayload(t *testing.T) {
    gw := &fakeGateway{}
    sig := signPayload(`{"data":{"attributes":{"type":"payment.paid"}}}`)
    rec := postWebhook(newWebhookHandler(gw), `{"data":{"attributes":{"type":"payment.paid","evil":true}}}`, sig)
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
    assert.Zero(t, gw.calls)
}

func TestWebhookIgnoresUnknownEventType(t *testing.T) {
    payload := `{"data":{"id":"evt_1","attributes":{"type":"source.chargeable"}}}`
    rec := postWebhook(newWebhookHandler(&fakeGateway{}), payload, signPayload(payload))
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"success":true`)
    assert.Contains(t, rec.Body.String(), "ignored")
}

func TestWebhookAcknowledgesFailureEvents(t *testing.T) {
    for _, typ := range []string{"payment.failed", "payment_intent.succeeded", "payment_intent.failed"} {
        payload := fmt.Sprintf(`{"data":{"id":"evt_2","attributes":{"type":"%s","data":{"id":"pay_2"}}}}`, typ)
        rec := postWebhook(newWebhookHandler(&fakeGateway{}), payload, signPayload(payload))
        require.Equal(t, http.StatusOK, rec.Code, typ)
        assert.Contains(t, rec.Body.String(), "acknowledged")
    }
}

func TestWebhookPaidEventWithoutPaymentID(t *testing.T) {
    gw := &fakeGateway{}
    payload := `{"data":{"id":"evt_3","attributes":{"type":"payment.paid","data":{}}}}`
    rec := postWebhook(newWebhookHandler(gw), payload, signPayload(payload))
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"success":false`)
    assert.Zero(t, gw.calls)
}

func TestWebhookPaidEventGatewayLookupFails(t *testing.T) {
    gw := &fakeGateway{err: fmt.Errorf("boom")}
    payload := `{"data":{"id":"evt_4","attributes":{"type":"payment.paid","data":{"id":"pay_4"}}}}`
    rec := postWebhook(newWebhookHandler(gw), payload, signPayload(payload))
    // Lookup failures are acknowledged with 200 so the provider
    // retries on its own schedule.
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"success":false`)
    assert.Equal(t, 1, gw.calls)
}

func TestTestWebhookValidatesBody(t *testing.T) {
    e := echo.New()
    h := newWebhookHandler(&fakeGateway{})

    req := httptest.NewRequest(http.MethodPost, "/webhook/test-webhook", strings.NewReader(`{"userId":0}`))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    _ = h.TestWebhook(e.NewContext(req, rec))
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}
