package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"storefront-api/internal/apperror"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

func newTestStripeClient(baseURL string) *stripeClientImpl {
	return &stripeClientImpl{
		httpClient:    &http.Client{Timeout: 5 * time.Second},
		baseApiURL:    baseURL,
		secretKey:     "sk_test_123",
		webhookSecret: testWebhookSecret,
		now:           time.Now,
	}
}

func signPayload(secret string, ts time.Time, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookSignature(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"payment_intent.succeeded"}`)
	now := time.Now()

	tests := []struct {
		name    string
		header  string
		wantErr bool
	}{
		{
			name:   "valid signature",
			header: signPayload(testWebhookSecret, now, payload),
		},
		{
			name:    "signed with wrong secret",
			header:  signPayload("whsec_other", now, payload),
			wantErr: true,
		},
		{
			name:    "missing header",
			header:  "",
			wantErr: true,
		},
		{
			name:    "malformed header",
			header:  "not-a-signature",
			wantErr: true,
		},
		{
			name:    "stale timestamp",
			header:  signPayload(testWebhookSecret, now.Add(-10*time.Minute), payload),
			wantErr: true,
		},
		{
			name:    "future timestamp outside tolerance",
			header:  signPayload(testWebhookSecret, now.Add(10*time.Minute), payload),
			wantErr: true,
		},
	}

	c := newTestStripeClient("unused")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.VerifyWebhookSignature(payload, tt.header)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerifyWebhookSignature_TamperedPayload(t *testing.T) {
	c := newTestStripeClient("unused")

	header := signPayload(testWebhookSecret, time.Now(), []byte(`{"amount":100}`))
	err := c.VerifyWebhookSignature([]byte(`{"amount":999}`), header)
	assert.Error(t, err)
}

func TestCreatePaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "2000", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "true", r.PostForm.Get("automatic_payment_methods[enabled]"))
		assert.Equal(t, "ord_1", r.PostForm.Get("metadata[order]"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"pi_123","client_secret":"pi_123_secret","amount":2000,"currency":"usd","status":"requires_payment_method","created":1700000000}`)
	}))
	defer srv.Close()

	c := newTestStripeClient(srv.URL)
	intent, err := c.CreatePaymentIntent(context.Background(), 2000, "usd", map[string]string{"order": "ord_1"})

	require.NoError(t, err)
	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret", intent.ClientSecret)
	assert.Equal(t, "requires_payment_method", intent.Status)
}

func TestCreatePaymentIntent_VendorErrorMessageSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		fmt.Fprint(w, `{"error":{"type":"card_error","message":"Your card was declined."}}`)
	}))
	defer srv.Close()

	c := newTestStripeClient(srv.URL)
	_, err := c.CreatePaymentIntent(context.Background(), 2000, "usd", nil)

	require.Error(t, err)
	var vendorErr *apperror.VendorError
	require.ErrorAs(t, err, &vendorErr)
	assert.Equal(t, "Your card was declined.", vendorErr.Message)
}

func TestGetPaymentIntent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"pi_123","amount":2000,"currency":"usd","status":"succeeded","created":1700000000}`)
	}))
	defer srv.Close()

	c := newTestStripeClient(srv.URL)
	intent, err := c.GetPaymentIntent(context.Background(), "pi_123")

	require.NoError(t, err)
	assert.Equal(t, "succeeded", intent.Status)
	assert.Equal(t, int64(2000), intent.Amount)
}
