package paymongo

// PaymentIntent is the gateway's payment_intent resource.
type PaymentIntent struct {
    ID         string `json:"id"`
    Attributes struct {
        Amount      int64  `json:"amount"`
        Currency    string `json:"currency"`
        Description string `json:"description"`
        Status      string `json:"status"`
        ClientKey   string `json:"client_key"`
    } `json:"attributes"`
}

// Source is a redirect-based payment source (gcash, grab_pay, ...).
type Source struct {
    ID         string `json:"id"`
    Attributes struct {
        Type     string `json:"type"`
        Amount   int64  `json:"amount"`
        Currency string `json:"currency"`
        Status   string `json:"status"`
        Redirect struct {
            CheckoutURL string `json:"checkout_url"`
            Success     string `json:"success"`
            Failed      string `json:"failed"`
        } `json:"redirect"`
    } `json:"attributes"`
}

// Payment is the gateway's payment resource. Metadata carries the
// client-embedded booking context; bookingData is a JSON-encoded
// string inside it.
type Payment struct {
    ID         string `json:"id"`
    Attributes struct {
        Amount      int64             `json:"amount"`
        Currency    string            `json:"currency"`
        Status      string            `json:"status"`
        Description string            `json:"description"`
        Metadata    map[string]string `json:"metadata"`
        Source      struct {
            ID   string `json:"id"`
            Type string `json:"type"`
        } `json:"source"`
        Billing struct {
            Name  string `json:"name"`
            Email string `json:"email"`
            Phone string `json:"phone"`
        } `json:"billing"`
        PaidAt int64 `json:"paid_at"`
    } `json:"attributes"`
}

// PaymentMethod is the gateway's payment_method resource.
type PaymentMethod struct {
    ID         string `json:"id"`
    Attributes struct {
        Type    string `json:"type"`
        Billing struct {
            Name  string `json:"name"`
            Email string `json:"email"`
        } `json:"billing"`
    } `json:"attributes"`
}

// CheckoutSessionResource is the gateway's hosted checkout_session
// resource, recognizable by its cs_ id prefix.
type CheckoutSessionResource struct {
    ID         string `json:"id"`
    Attributes struct {
        CheckoutURL    string   `json:"checkout_url"`
        Status         string   `json:"status"`
        PaymentIntent  *PaymentIntent `json:"payment_intent"`
        Payments       []Payment      `json:"payments"`
        ReferenceNo    string   `json:"reference_number"`
        PaymentMethods []string `json:"payment_method_types"`
    } `json:"attributes"`
}

// Event is the signed webhook envelope delivered by the provider.
// Attributes.Type is the event type ("payment.paid", ...), and
// Attributes.Data is the affected payment resource.
type Event struct {
    Data struct {
        ID         string `json:"id"`
        Type       string `json:"type"`
        Attributes struct {
            Type      string  `json:"type"`
            Data      Payment `json:"data"`
            CreatedAt int64   `json:"created_at"`
        } `json:"attributes"`
    } `json:"data"`
}
