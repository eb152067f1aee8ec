package assets_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heirvault/heirvault-daemon/internal/infrastructure/assets"
)

func TestTransfer(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/transfers", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusOK)
		},
	))
	t.Cleanup(server.Close)

	svc, err := assets.NewService(server.URL, "custody", 5*time.Second)
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, svc.TransferIn(ctx, "token-a", "alice", 100))
	require.Equal(t, "alice", got["from"])
	require.Equal(t, "custody", got["to"])
	require.Equal(t, float64(100), got["amount"])

	require.NoError(t, svc.TransferOut(ctx, "token-a", "bob", 25))
	require.Equal(t, "custody", got["from"])
	require.Equal(t, "bob", got["to"])
}

func TestFailingTransfer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "insufficient allowance", http.StatusUnprocessableEntity)
		},
	))
	t.Cleanup(server.Close)

	svc, err := assets.NewService(server.URL, "custody", 5*time.Second)
	require.NoError(t, err)

	err = svc.TransferIn(context.Background(), "token-a", "alice", 100)
	require.Error(t, err)
	require.Contains(t, err.Error(), "insufficient allowance")
}

func TestFailingNewService(t *testing.T) {
	_, err := assets.NewService("", "custody", time.Second)
	require.Error(t, err)

	_, err = assets.NewService("http://localhost:9945", "", time.Second)
	require.Error(t, err)
}
