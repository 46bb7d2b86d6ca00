package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKhaltiServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Key khalti-secret", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "tok-1", got["token"])
		assert.Equal(t, float64(1000), got["amount"])

		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestKhaltiGateway_Verify(t *testing.T) {
	ctx := context.Background()
	req := VerifyRequest{Token: "tok-1", Amount: 1000}

	t.Run("Completed", func(t *testing.T) {
		srv := newKhaltiServer(t, http.StatusOK, `{"idx":"8xmeJnNXfoVjCvGcZiiGe7","amount":1000,"state":{"name":"Completed"}}`)
		gw := NewKhaltiGateway("khalti-secret", srv.URL, time.Second)

		res, err := gw.Verify(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, ProviderKhalti, res.Provider)
		assert.Equal(t, "Completed", res.Status)
		assert.Equal(t, "8xmeJnNXfoVjCvGcZiiGe7", res.TransactionID)
		assert.Equal(t, 1000.0, res.Amount)
	})

	t.Run("Not completed", func(t *testing.T) {
		srv := newKhaltiServer(t, http.StatusOK, `{"idx":"abc","amount":1000,"state":{"name":"Pending"}}`)
		gw := NewKhaltiGateway("khalti-secret", srv.URL, time.Second)

		res, err := gw.Verify(ctx, req)
		assert.ErrorIs(t, err, ErrPaymentNotComplete)
		require.NotNil(t, res)
		assert.Equal(t, "Pending", res.Status)
	})

	t.Run("Rejected token", func(t *testing.T) {
		srv := newKhaltiServer(t, http.StatusBadRequest, `{"detail":"Invalid token."}`)
		gw := NewKhaltiGateway("khalti-secret", srv.URL, time.Second)

		_, err := gw.Verify(ctx, req)
		assert.ErrorIs(t, err, ErrPaymentNotComplete)
	})

	t.Run("Server error", func(t *testing.T) {
		srv := newKhaltiServer(t, http.StatusBadGateway, `oops`)
		gw := NewKhaltiGateway("khalti-secret", srv.URL, time.Second)

		_, err := gw.Verify(ctx, req)
		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})

	t.Run("Missing secret", func(t *testing.T) {
		gw := NewKhaltiGateway("", "http://unused.invalid", time.Second)

		_, err := gw.Verify(ctx, req)
		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	})

	t.Run("Invalid request", func(t *testing.T) {
		gw := NewKhaltiGateway("khalti-secret", "http://unused.invalid", time.Second)

		_, err := gw.Verify(ctx, VerifyRequest{Amount: 1000})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}
