package websocket

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestHub(t *testing.T, hub *Hub) *websocket.Conn {
	t.Helper()

	e := echo.New()
	e.GET("/ws", HandleWebSocket(hub))
	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	// Give the hub's run loop a moment to process the registration.
	time.Sleep(50 * time.Millisecond)
	return conn
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	conn := dialTestHub(t, hub)

	hub.NotifyNewRequest(map[string]string{"city": "Rabat"})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var notification Notification
	require.NoError(t, conn.ReadJSON(&notification))

	assert.Equal(t, "new_request", notification.Type)
	assert.NotEmpty(t, notification.Message)
	data := notification.Data.(map[string]interface{})
	assert.Equal(t, "Rabat", data["city"])
}

func TestHubBroadcastNilSafe(t *testing.T) {
	var hub *Hub
	// Must not panic when no hub is wired, e.g. in handler unit tests.
	hub.Broadcast(Notification{Type: "noop"})
	hub.NotifyRequestStatus(nil)
	hub.NotifyArtisanContacted(nil)
}
