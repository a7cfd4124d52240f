//go:build unit
// +build unit

package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/profyt7/carelinkai-sub005/internal/domain/notifications"
	"github.com/profyt7/carelinkai-sub005/internal/pkg/testutil"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testUserID = "0b6f5e2a-8c7d-4f3e-9a1b-2c3d4e5f6a7b"

func startHub(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(testutil.SetupTestLogger(t))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Serve(w, r, r.URL.Query().Get("user"))
	}))
	return hub, server
}

func dial(t *testing.T, server *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/?user=" + userID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return conn
}

func TestHub_PublishReachesConnectedUser(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, server := startHub(t)
	conn := dial(t, server, testUserID)

	require.Eventually(t, func() bool { return hub.ConnectionCount(testUserID) == 1 }, time.Second, 10*time.Millisecond)

	hub.Publish(testUserID, &notifications.Event{Type: "NEW_MESSAGE", Payload: map[string]string{"from": "operator"}})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var event map[string]interface{}
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "NEW_MESSAGE", event["type"])
	assert.Equal(t, map[string]interface{}{"from": "operator"}, event["payload"])

	_ = conn.Close()
	hub.Close()
	server.Close()
}

func TestHub_PublishWithoutConnectionsIsNoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(testutil.SetupTestLogger(t))
	assert.NotPanics(t, func() {
		hub.Publish(testUserID, &notifications.Event{Type: "SYSTEM"})
	})
	hub.Close()
}

func TestHub_ClientDisconnectUnregisters(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub, server := startHub(t)
	conn := dial(t, server, testUserID)
	require.Eventually(t, func() bool { return hub.ConnectionCount(testUserID) == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = conn.Close()

	assert.Eventually(t, func() bool { return hub.ConnectionCount(testUserID) == 0 }, time.Second, 10*time.Millisecond)

	hub.Close()
	server.Close()
}
