// Package paymongo wraps the PayMongo REST API: payment intents,
// sources, checkout-session composition and webhook signature
// verification. The client performs no local persistence and no
// retries; callers decide how to react to gateway failures.
package paymongo

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "io"
    "math"
    "net/http"
    "time"
)

const defaultBaseURL = "https://api.paymongo.com/v1"

// Client talks to the PayMongo API using the server-held secret key
// as the basic-auth username (empty password). Outbound calls carry a
// bounded timeout so a hung gateway never blocks a request forever;
// timeouts surface as ordinary errors the caller may retry.
type Client struct {
    baseURL    string
    secretKey  string
    httpClient *http.Client
}

// NewClient returns a Client authenticated with the given secret key.
func NewClient(secretKey string) *Client {
    return &Client{
        baseURL:    defaultBaseURL,
        secretKey:  secretKey,
        httpClient: &http.Client{Timeout: 15 * time.Second},
    }
}

// centavos converts a PHP amount to the minor currency units the
// gateway expects.
func centavos(amount float64) int64 {
    return int64(math.Round(amount * 100))
}

// do sends one JSON request and decodes the enveloped response into
// out. Non-2xx responses are parsed into *APIError when the body is
// error-shaped.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
    var reader io.Reader
    if body != nil {
        buf, err := json.Marshal(body)
        if err != nil {
            return err
        }
        reader = bytes.NewReader(buf)
    }
    req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
    if err != nil {
        return err
    }
    req.Header.Set("Accept", "application/json")
    if body != nil {
        req.Header.Set("Content-Type", "application/json")
    }
    req.SetBasicAuth(c.secretKey, "")

    res, err := c.httpClient.Do(req)
    if err != nil {
        return err
    }
    defer res.Body.Close()

    raw, err := io.ReadAll(res.Body)
    if err != nil {
        return err
    }
    if res.StatusCode < 200 || res.StatusCode >= 300 {
        return parseAPIError(res.StatusCode, raw)
    }
    if out == nil {
        return nil
    }
    if err := json.Unmarshal(raw, out); err != nil {
        return fmt.Errorf("paymongo: decode %s %s: %w", method, path, err)
    }
    return nil
}

// attributesBody is the request envelope {"data":{"attributes":{...}}}.
type attributesBody struct {
    Data struct {
        Attributes interface{} `json:"attributes"`
    } `json:"data"`
}

func wrapAttributes(attrs interface{}) attributesBody {
    var b attributesBody
    b.Data.Attributes = attrs
    return b
}

// CreatePaymentIntent opens a payment intent for the given amount (in
// PHP) and returns it. All supported e-wallet/card methods are
// allowed; the source created next picks the concrete one. Metadata
// is propagated by the gateway onto the resulting payment, which is
// how booking context reaches the webhook.
func (c *Client) CreatePaymentIntent(ctx context.Context, amount float64, currency, description string, metadata map[string]string) (*PaymentIntent, error) {
    attrs := map[string]interface{}{
        "amount":                 centavos(amount),
        "currency":               currency,
        "description":            description,
        "payment_method_allowed": []string{"gcash", "paymaya", "grab_pay", "card"},
    }
    if len(metadata) > 0 {
        attrs["metadata"] = metadata
    }
    var env struct {
        Data PaymentIntent `json:"data"`
    }
    if err := c.do(ctx, http.MethodPost, "/payment_intents", wrapAttributes(attrs), &env); err != nil {
        return nil, err
    }
    return &env.Data, nil
}

// GetPaymentIntent fetches a payment intent by id.
func (c *Client) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntent, error) {
    var env struct {
        Data PaymentIntent `json:"data"`
    }
    if err := c.do(ctx, http.MethodGet, "/payment_intents/"+id, nil, &env); err != nil {
        return nil, err
    }
    return &env.Data, nil
}

// CreatePaymentSource creates a redirect source of the given type
// (e.g. "gcash") for the intent's amount. The intent id travels in
// the source metadata so the webhook can correlate the two.
func (c *Client) CreatePaymentSource(ctx context.Context, intent *PaymentIntent, sourceType string) (*Source, error) {
    attrs := map[string]interface{}{
        "type":     sourceType,
        "amount":   intent.Attributes.Amount,
        "currency": intent.Attributes.Currency,
        "metadata": map[string]string{"payment_intent_id": intent.ID},
    }
    var env struct {
        Data Source `json:"data"`
    }
    if err := c.do(ctx, http.MethodPost, "/sources", wrapAttributes(attrs), &env); err != nil {
        return nil, err
    }
    return &env.Data, nil
}

// AttachPaymentSource binds a created source to its payment intent
// and returns the refreshed intent.
func (c *Client) AttachPaymentSource(ctx context.Context, intentID, sourceID string) (*PaymentIntent, error) {
    attrs := map[string]interface{}{"payment_method": sourceID}
    var env struct {
        Data PaymentIntent `json:"data"`
    }
    if err := c.do(ctx, http.MethodPost, "/payment_intents/"+intentID+"/attach", wrapAttributes(attrs), &env); err != nil {
        return nil, err
    }
    return &env.Data, nil
}

// CheckoutSession is the composed result handed back to the browser
// client: where to redirect the customer and how to poll the intent.
type CheckoutSession struct {
    PaymentIntentID string `json:"paymentIntentId"`
    CheckoutURL     string `json:"checkoutUrl"`
    ClientKey       string `json:"clientKey"`
}

// CreateCheckoutSession composes intent, source and attach, and
// returns the gateway-hosted checkout URL. The default source type is
// gcash; the hosted page lets the customer switch methods.
func (c *Client) CreateCheckoutSession(ctx context.Context, amount float64, currency, description string, metadata map[string]string) (*CheckoutSession, error) {
    intent, err := c.CreatePaymentIntent(ctx, amount, currency, description, metadata)
    if err != nil {
        return nil, err
    }
    source, err := c.CreatePaymentSource(ctx, intent, "gcash")
    if err != nil {
        return nil, err
    }
    if _, err := c.AttachPaymentSource(ctx, intent.ID, source.ID); err != nil {
        return nil, err
    }
    return &CheckoutSession{
        PaymentIntentID: intent.ID,
        CheckoutURL:     source.Attributes.Redirect.CheckoutURL,
        ClientKey:       intent.Attributes.ClientKey,
    }, nil
}

// GetCheckoutSession fetches a hosted checkout session by its cs_ id.
func (c *Client) GetCheckoutSession(ctx context.Context, id string) (*CheckoutSessionResource, error) {
    var env struct {
        Data CheckoutSessionResource `json:"data"`
    }
    if err := c.do(ctx, http.MethodGet, "/checkout_sessions/"+id, nil, &env); err != nil {
        return nil, err
    }
    return &env.Data, nil
}

// GetPayment fetches a completed payment object by id. The webhook
// reconciler calls this to obtain the authoritative payment state and
// the booking metadata embedded at checkout time.
func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
    var env struct {
        Data Payment `json:"data"`
    }
    if err := c.do(ctx, http.MethodGet, "/payments/"+id, nil, &env); err != nil {
        return nil, err
    }
    return &env.Data, nil
}

// GetPaymentMethod fetches a payment method by id.
func (c *Client) GetPaymentMethod(ctx context.Context, id string) (*PaymentMethod, error) {
    var env struct {
        Data PaymentMethod `json:"data"`
    }
    if err := c.do(ctx, http.MethodGet, "/payment_methods/"+id, nil, &env); err != nil {
        return nil, err
    }
    return &env.Data, nil
}
