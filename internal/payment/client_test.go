package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientInitialize(t *testing.T) {
	var captured InitializeRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/transaction/initialize", r.URL.Path)
		authHeader = r.Header.Get("Authorization")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]any{
				"authorization_url": "https://checkout.example.com/abc",
				"access_code":       "AC_abc",
				"reference":         captured.Reference,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_key")

	resp, err := client.Initialize(context.Background(), InitializeRequest{
		Email:       "alice@example.com",
		Amount:      5000,
		Currency:    "USD",
		Reference:   "ref-1",
		CallbackURL: "http://localhost/api/verify-payment?reference=ref-1",
	})
	require.NoError(t, err)

	require.Equal(t, "Bearer sk_test_key", authHeader)
	require.Equal(t, "alice@example.com", captured.Email)
	require.EqualValues(t, 5000, captured.Amount)
	require.Equal(t, "https://checkout.example.com/abc", resp.AuthorizationURL)
	require.Equal(t, "ref-1", resp.Reference)
}

func TestClientVerify(t *testing.T) {
	paidAt := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/transaction/verify/ref-42", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":  true,
			"message": "Verification successful",
			"data": map[string]any{
				"status":    "success",
				"reference": "ref-42",
				"amount":    1250,
				"paid_at":   paidAt.Format(time.RFC3339),
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_key")

	resp, err := client.Verify(context.Background(), "ref-42")
	require.NoError(t, err)
	require.True(t, resp.Succeeded())
	require.EqualValues(t, 1250, resp.Amount)
	require.NotNil(t, resp.PaidAt)
	require.True(t, paidAt.Equal(*resp.PaidAt))
}

func TestClientProviderRejection(t *testing.T) {
	t.Run("failure envelope", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status":  false,
				"message": "Invalid key",
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "bad_key")
		_, err := client.Verify(context.Background(), "ref-1")
		require.ErrorIs(t, err, ErrProviderRejected)
		require.Contains(t, err.Error(), "Invalid key")
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>gateway error</html>"))
		}))
		defer server.Close()

		client := NewClient(server.URL, "key")
		_, err := client.Verify(context.Background(), "ref-1")
		require.Error(t, err)
	})
}
