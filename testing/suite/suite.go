package suite

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
	"github.com/rocketscienceinc/connectfour-backend/internal/usecase"
	"github.com/rocketscienceinc/connectfour-backend/transport/rest"
	"github.com/rocketscienceinc/connectfour-backend/transport/websocket"
)

const readTimeout = 3 * time.Second

// Suite boots the full application stack in-process: room registry, game
// manager and websocket transport behind an httptest server.
type Suite struct {
	*testing.T

	Server *httptest.Server
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	roomRepo := repository.NewRoomRepository()
	gameManager := usecase.NewGameManager(logger, roomRepo)
	wsServer := websocket.New(logger, gameManager)

	mux := rest.NewRouter(t.TempDir())
	mux.HandleFunc("/ws", wsServer.Handler(ctx))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return ctx, &Suite{
		T:      t,
		Server: server,
	}
}

// Client is one dialed websocket participant.
type Client struct {
	t *testing.T

	Conn     *gorillaws.Conn
	PlayerID string
}

// Dial connects a new participant and consumes the connect ack.
func (that *Suite) Dial() *Client {
	that.T.Helper()

	url := "ws" + strings.TrimPrefix(that.Server.URL, "http") + "/ws"

	conn, resp, err := gorillaws.DefaultDialer.Dial(url, nil)
	require.NoError(that.T, err)

	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	that.T.Cleanup(func() {
		_ = conn.Close()
	})

	client := &Client{t: that.T, Conn: conn}

	action, payload := client.ReadMessage()
	require.Equal(that.T, websocket.ActionConnect, action)
	require.NotEmpty(that.T, payload.Player)

	client.PlayerID = payload.Player

	return client
}

// Send writes one message to the server.
func (that *Client) Send(action string, payload websocket.Payload) {
	that.t.Helper()

	payloadBytes, err := json.Marshal(payload)
	require.NoError(that.t, err)

	err = that.Conn.WriteJSON(websocket.Message{
		Action:  action,
		Payload: payloadBytes,
	})
	require.NoError(that.t, err)
}

// ReadMessage reads the next message, failing the test if none arrives in
// time.
func (that *Client) ReadMessage() (string, websocket.Payload) {
	that.t.Helper()

	require.NoError(that.t, that.Conn.SetReadDeadline(time.Now().Add(readTimeout)))

	var message websocket.Message
	require.NoError(that.t, that.Conn.ReadJSON(&message))

	var payload websocket.Payload
	if len(message.Payload) > 0 {
		require.NoError(that.t, json.Unmarshal(message.Payload, &payload))
	}

	return message.Action, payload
}
