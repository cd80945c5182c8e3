package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

const (
	ActionConnect    = "connect"
	ActionRoomCreate = "room:create"
	ActionRoomJoin   = "room:join"
	ActionGameMove   = "game:move"
	ActionGameStart  = "game:start"
	ActionGameOver   = "game:over"
	ActionPlayerLeft = "player:left"
)

// Message is the wire envelope for every client and server message.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload carries the semantic fields of all message kinds; unset fields
// are omitted on the wire.
type Payload struct {
	Player        string        `json:"player,omitempty"`
	RoomID        string        `json:"room_id,omitempty"`
	Column        *int          `json:"column,omitempty"`
	Row           *int          `json:"row,omitempty"`
	Mark          string        `json:"mark,omitempty"`
	CurrentPlayer string        `json:"current_player,omitempty"`
	Winner        string        `json:"winner,omitempty"`
	Draw          bool          `json:"draw,omitempty"`
	Board         *entity.Board `json:"board,omitempty"`
	Success       bool          `json:"success,omitempty"`
	Error         string        `json:"error,omitempty"`
}

func (that *Server) sendMessage(client *client, action string, payload Payload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	client.writeMu.Lock()
	defer client.writeMu.Unlock()

	if err = client.conn.WriteJSON(response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendErrorResponse(client *client, action, errorMsg string) error {
	if err := that.sendMessage(client, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

// broadcastToRoom sends the message to every participant of the room that
// still has a live connection.
func (that *Server) broadcastToRoom(room *entity.Room, action string, payload Payload) {
	log := that.logger.With("method", "broadcastToRoom", "roomID", room.ID)

	for _, player := range room.Players {
		that.connectionsMutex.RLock()
		conn, ok := that.connections[player.ID]
		that.connectionsMutex.RUnlock()

		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		if err := that.sendMessage(conn, action, payload); err != nil {
			log.Error("failed to send room update", "playerID", player.ID, "error", err)
		}
	}
}
