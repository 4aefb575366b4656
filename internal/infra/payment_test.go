package infra

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCheckoutSession(t *testing.T) {
	var gotAuth, gotPath string
	var gotReq CheckoutSessionRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		_ = json.NewEncoder(w).Encode(CheckoutSession{ID: "cs_123", URL: "https://pay.example.test/cs_123"})
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL, "sk_test_abc")
	session, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionRequest{
		LineItems: []CheckoutLineItem{
			{Name: "Gear Assembly", Description: "Quantity: 2", UnitAmount: 20000, Currency: "php", Quantity: 1},
		},
		Mode:          "payment",
		SuccessURL:    "http://localhost:8000/payment/success",
		CancelURL:     "http://localhost:8000/cart",
		CustomerEmail: "jdoe@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "cs_123", session.ID)
	assert.Equal(t, "https://pay.example.test/cs_123", session.URL)

	assert.Equal(t, "Bearer sk_test_abc", gotAuth)
	assert.Equal(t, "/v1/checkout/sessions", gotPath)
	require.Len(t, gotReq.LineItems, 1)
	assert.Equal(t, int64(20000), gotReq.LineItems[0].UnitAmount)
	assert.Equal(t, "payment", gotReq.Mode)
}

func TestCreateCheckoutSession_ProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL, "sk_test_abc")
	_, err := client.CreateCheckoutSession(context.Background(), CheckoutSessionRequest{Mode: "payment"})
	require.Error(t, err)
	assert.ErrorContains(t, err, "provider returned 502")
}
