package paymongo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a Client at a local httptest server.
func newTestClient(srv *httptest.Server) *Client {
	c := NewClient("sk_test_secret")
	c.baseURL = srv.URL
	return c
}

func TestCreatePaymentIntent(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payment_intents", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"pi_123","attributes":{"amount":32000,"currency":"PHP","status":"awaiting_payment_method","client_key":"pi_123_client"}}}`))
	}))
	defer srv.Close()

	intent, err := newTestClient(srv).CreatePaymentIntent(context.Background(), 320, "PHP", "Court booking",
		map[string]string{"bookingData": `{"userId":7}`})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_client", intent.Attributes.ClientKey)

	// Secret key rides in basic auth with an empty password.
	assert.Contains(t, gotAuth, "Basic ")

	// Amounts travel in minor currency units and metadata is passed through.
	attrs := gotBody["data"].(map[string]interface{})["attributes"].(map[string]interface{})
	assert.Equal(t, float64(32000), attrs["amount"])
	meta := attrs["metadata"].(map[string]interface{})
	assert.Equal(t, `{"userId":7}`, meta["bookingData"])
}

func TestCreateCheckoutSessionComposesIntentSourceAttach(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/payment_intents":
			w.Write([]byte(`{"data":{"id":"pi_9","attributes":{"amount":22000,"currency":"PHP","client_key":"pi_9_ck"}}}`))
		case "/sources":
			w.Write([]byte(`{"data":{"id":"src_5","attributes":{"type":"gcash","amount":22000,"currency":"PHP","redirect":{"checkout_url":"https://pay.example/checkout/src_5"}}}}`))
		case "/payment_intents/pi_9/attach":
			w.Write([]byte(`{"data":{"id":"pi_9","attributes":{"amount":22000,"currency":"PHP","status":"awaiting_next_action","client_key":"pi_9_ck"}}}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	session, err := newTestClient(srv).CreateCheckoutSession(context.Background(), 220, "PHP", "Court 1 09:00", nil)
	require.NoError(t, err)
	assert.Equal(t, "pi_9", session.PaymentIntentID)
	assert.Equal(t, "https://pay.example/checkout/src_5", session.CheckoutURL)
	assert.Equal(t, "pi_9_ck", session.ClientKey)
	assert.Equal(t, []string{
		"POST /payment_intents",
		"POST /sources",
		"POST /payment_intents/pi_9/attach",
	}, paths)
}

func TestGetPaymentDecodesMetadata(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments/pay_77", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"id":"pay_77","attributes":{"amount":32000,"currency":"PHP","status":"paid",
			"metadata":{"bookingData":"{\"court_bookings\":[]}"},
			"source":{"id":"src_1","type":"grab_pay"},
			"billing":{"name":"Juan dela Cruz","email":"juan@example.com"}}}}`))
	}))
	defer srv.Close()

	payment, err := newTestClient(srv).GetPayment(context.Background(), "pay_77")
	require.NoError(t, err)
	assert.Equal(t, "paid", payment.Attributes.Status)
	assert.Equal(t, "grab_pay", payment.Attributes.Source.Type)
	assert.Equal(t, `{"court_bookings":[]}`, payment.Attributes.Metadata["bookingData"])
	assert.Equal(t, "juan@example.com", payment.Attributes.Billing.Email)
}

func TestAPIErrorSurfacesProviderDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"errors":[{"code":"insufficient_funds","detail":"The account has insufficient funds."}]}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetPaymentIntent(context.Background(), "pi_x")
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusPaymentRequired, apiErr.StatusCode)
	assert.Equal(t, "insufficient_funds", apiErr.Code)
	assert.Equal(t, "The account has insufficient funds.", apiErr.Detail)
}

func TestAPIErrorOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).GetPayment(context.Background(), "pay_1")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Detail)
}

func TestCentavos(t *testing.T) {
	assert.Equal(t, int64(32000), centavos(320))
	assert.Equal(t, int64(22050), centavos(220.5))
	assert.Equal(t, int64(1), centavos(0.01))
}
