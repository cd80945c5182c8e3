package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
)

// normalizeRoomID upper-cases a client-typed room code; codes are issued
// upper-case and every lookup must use the same form.
func normalizeRoomID(roomID string) string {
	return strings.ToUpper(roomID)
}

func (that *Server) handleRoomCreate(ctx context.Context, client *client, msg *Message) error {
	log := that.logger.With("method", "handleRoomCreate", "playerID", client.id)

	room, err := that.manager.CreateRoom(ctx, client.id)
	if err != nil {
		log.Error("failed to create room", "error", err)
		return that.sendErrorResponse(client, msg.Action, "failed to create room")
	}

	if err = that.sendMessage(client, msg.Action, Payload{RoomID: room.ID}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("room created", "roomID", room.ID)

	return nil
}

func (that *Server) handleRoomJoin(ctx context.Context, client *client, msg *Message) error {
	log := that.logger.With("method", "handleRoomJoin", "playerID", client.id)

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.RoomID == "" {
		return that.sendErrorResponse(client, msg.Action, "room id is required")
	}

	roomID := normalizeRoomID(payloadReq.RoomID)

	room, turnHolder, err := that.manager.JoinRoom(ctx, roomID, client.id)

	switch {
	case errors.Is(err, apperror.ErrRoomNotFound):
		return that.sendErrorResponse(client, msg.Action, "room not found")
	case errors.Is(err, apperror.ErrRoomFull):
		return that.sendErrorResponse(client, msg.Action, "room is full")
	case err != nil:
		log.Error("failed to join room", "roomID", roomID, "error", err)
		return that.sendErrorResponse(client, msg.Action, "failed to join room")
	}

	if err = that.sendMessage(client, msg.Action, Payload{RoomID: room.ID, Success: true}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	that.broadcastToRoom(room, ActionGameStart, Payload{
		RoomID:        room.ID,
		CurrentPlayer: turnHolder,
	})

	log.Info("player joined room", "roomID", room.ID)

	return nil
}

// handleGameMove applies a move and broadcasts the outcome. Every invalid
// move is dropped without a reply; the client is trusted to mirror the
// validation locally and notice that no state change happened.
func (that *Server) handleGameMove(ctx context.Context, client *client, msg *Message) error {
	log := that.logger.With("method", "handleGameMove", "playerID", client.id)

	var payloadReq Payload
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payloadReq.RoomID == "" || payloadReq.Column == nil {
		log.Debug("move dropped, incomplete payload")
		return nil
	}

	roomID := normalizeRoomID(payloadReq.RoomID)

	result, room, err := that.manager.MakeMove(ctx, roomID, client.id, *payloadReq.Column)
	if err != nil {
		log.Debug("move dropped", "roomID", roomID, "error", err)
		return nil
	}

	if result.Finished {
		that.broadcastToRoom(room, ActionGameOver, Payload{
			RoomID: room.ID,
			Winner: result.Winner,
			Draw:   result.Draw,
			Board:  &room.Board,
		})

		log.Info("game over", "roomID", room.ID, "winner", result.Winner, "draw", result.Draw)

		return nil
	}

	that.broadcastToRoom(room, ActionGameMove, Payload{
		RoomID:        room.ID,
		Row:           &result.Row,
		Column:        &result.Column,
		Player:        result.PlayerID,
		Mark:          result.Mark,
		CurrentPlayer: result.NextTurn,
	})

	return nil
}
