package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/pkg"
)

type gameManager interface {
	CreateRoom(ctx context.Context, playerID string) (*entity.Room, error)
	JoinRoom(ctx context.Context, roomID, playerID string) (*entity.Room, string, error)
	MakeMove(ctx context.Context, roomID, playerID string, column int) (*connectfour.MoveResult, *entity.Room, error)
	Disconnect(ctx context.Context, playerID string) (*entity.Room, error)
}

// client is one live connection. The participant ID is minted at upgrade
// and doubles as the turn token for the room the connection joins.
type client struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

type Server struct {
	logger  *slog.Logger
	manager gameManager

	upgrader websocket.Upgrader
	handlers map[string]func(ctx context.Context, client *client, message *Message) error

	connections      map[string]*client
	connectionsMutex sync.RWMutex
}

func New(logger *slog.Logger, manager gameManager) *Server {
	server := &Server{
		logger:  logger,
		manager: manager,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(_ *http.Request) bool { return true },
		},

		handlers:    make(map[string]func(context.Context, *client, *Message) error),
		connections: make(map[string]*client),
	}

	server.handlers[ActionRoomCreate] = server.handleRoomCreate
	server.handlers[ActionRoomJoin] = server.handleRoomJoin
	server.handlers[ActionGameMove] = server.handleGameMove

	return server
}

// Handler upgrades the request and serves the connection until it closes.
func (that *Server) Handler(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := that.logger.With("method", "Handler")

		conn, err := that.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("failed to upgrade connection", "error", err)
			return
		}

		newClient := &client{
			id:   pkg.GenerateSessionID(),
			conn: conn,
		}

		that.registerClient(newClient)
		defer that.unregisterClient(ctx, newClient)

		log.Info("connection established", "playerID", newClient.id)

		if err = that.sendMessage(newClient, ActionConnect, Payload{Player: newClient.id}); err != nil {
			log.Error("failed to send connect message", "error", err)
			return
		}

		that.readLoop(ctx, newClient)
	}
}

// readLoop processes inbound messages until the connection drops; the
// loop exiting is the disconnect signal.
func (that *Server) readLoop(ctx context.Context, client *client) {
	log := that.logger.With("method", "readLoop", "playerID", client.id)

	for {
		_, reqBody, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("unexpected close", "error", err)
			}
			return
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			continue
		}

		if err = handler(ctx, client, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

func (that *Server) registerClient(client *client) {
	that.connectionsMutex.Lock()
	that.connections[client.id] = client
	that.connectionsMutex.Unlock()
}

// unregisterClient drops the connection from the registry, ends the room
// the participant was in and notifies the remaining participant.
func (that *Server) unregisterClient(ctx context.Context, client *client) {
	log := that.logger.With("method", "unregisterClient", "playerID", client.id)

	that.connectionsMutex.Lock()
	delete(that.connections, client.id)
	that.connectionsMutex.Unlock()

	if err := client.conn.Close(); err != nil {
		log.Debug("failed to close connection", "error", err)
	}

	room, err := that.manager.Disconnect(ctx, client.id)
	if err != nil {
		log.Error("failed to handle disconnect", "error", err)
		return
	}

	if room == nil {
		log.Info("player disconnected")
		return
	}

	that.broadcastToRoom(room, ActionPlayerLeft, Payload{})

	log.Info("player disconnected, room abandoned", "roomID", room.ID)
}
