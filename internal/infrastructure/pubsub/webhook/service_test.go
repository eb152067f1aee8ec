package webhookpubsub_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"

	webhookpubsub "github.com/heirvault/heirvault-daemon/internal/infrastructure/pubsub/webhook"
)

func TestWebhookPubSub(t *testing.T) {
	var mtx sync.Mutex
	var gotBodies []string
	var gotAuth []string

	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			mtx.Lock()
			gotBodies = append(gotBodies, string(body))
			gotAuth = append(gotAuth, r.Header.Get("Authorization"))
			mtx.Unlock()
			w.WriteHeader(http.StatusOK)
		},
	))
	t.Cleanup(server.Close)

	svc, err := webhookpubsub.NewService(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	secret := "super-secret"
	subID, err := svc.Subscribe("settlement", server.URL, secret)
	require.NoError(t, err)
	require.NotEmpty(t, subID)

	subs := svc.ListSubscriptionsForTopic("settlement")
	require.Len(t, subs, 1)
	require.Equal(t, server.URL, subs[0].NotifyAt())
	require.True(t, subs[0].IsSecured())

	message := `{"topic":"settlement","vault_id":"abc"}`
	require.NoError(t, svc.Publish("settlement", message))

	mtx.Lock()
	require.Len(t, gotBodies, 1)
	require.Equal(t, message, gotBodies[0])
	auth := gotAuth[0]
	mtx.Unlock()

	require.True(t, strings.HasPrefix(auth, "Bearer "))
	token, err := jwt.Parse(
		strings.TrimPrefix(auth, "Bearer "),
		func(t *jwt.Token) (interface{}, error) { return []byte(secret), nil },
	)
	require.NoError(t, err)
	require.True(t, token.Valid)

	// Topics without subscribers deliver to wildcard subscribers only.
	require.NoError(t, svc.Publish("deposit.native", message))
	mtx.Lock()
	require.Len(t, gotBodies, 1)
	mtx.Unlock()

	wildcardID, err := svc.Subscribe("*", server.URL, "")
	require.NoError(t, err)
	require.NoError(t, svc.Publish("deposit.native", message))
	mtx.Lock()
	require.Len(t, gotBodies, 2)
	mtx.Unlock()

	require.NoError(t, svc.Unsubscribe("", subID))
	require.NoError(t, svc.Unsubscribe("", wildcardID))
	require.Empty(t, svc.ListSubscriptionsForTopic("settlement"))
}

func TestFailingSubscribe(t *testing.T) {
	svc, err := webhookpubsub.NewService(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	_, err = svc.Subscribe("", "http://localhost:1234", "")
	require.Error(t, err)

	_, err = svc.Subscribe("settlement", "not-a-url", "")
	require.Error(t, err)
}
