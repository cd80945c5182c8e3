package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/connectfour"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

type roomRepo interface {
	Create(ctx context.Context, creator *entity.Player) (*entity.Room, error)
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	DeleteByID(ctx context.Context, id string) error
	FindByPlayerID(ctx context.Context, playerID string) (*entity.Room, error)
}

// GameManager drives the per-room session state machine. A single mutex
// serializes every request, so each create, join, move or disconnect is
// handled to completion before the next one touches a room.
type GameManager struct {
	logger *slog.Logger
	rooms  roomRepo
	mu     sync.Mutex
}

func NewGameManager(logger *slog.Logger, rooms roomRepo) *GameManager {
	return &GameManager{
		logger: logger,
		rooms:  rooms,
	}
}

// CreateRoom allocates a fresh room with the given participant as creator.
func (that *GameManager) CreateRoom(ctx context.Context, playerID string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.rooms.Create(ctx, &entity.Player{ID: playerID})
	if err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	that.logger.Info("room created", "roomID", room.ID, "playerID", playerID)

	return room, nil
}

// JoinRoom attaches the participant to an existing room and activates it.
// The creator holds the first move. The turn holder is returned as a
// snapshot taken under the session lock, so callers never read the live
// room's turn field after the lock is released.
func (that *GameManager) JoinRoom(ctx context.Context, roomID, playerID string) (*entity.Room, string, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get room: %w", err)
	}

	if room.IsFull() || !room.IsWaiting() {
		return nil, "", fmt.Errorf("%w: %s", apperror.ErrRoomFull, roomID)
	}

	room.AddPlayer(&entity.Player{ID: playerID})

	if err = that.rooms.CreateOrUpdate(ctx, room); err != nil {
		return nil, "", fmt.Errorf("failed to update room: %w", err)
	}

	that.logger.Info("player joined room", "roomID", room.ID, "playerID", playerID)

	return room, room.Turn, nil
}

// MakeMove validates and applies one move. A finished room is removed from
// the registry before the result is returned; the returned room still
// carries its participants so the caller can address the broadcast.
func (that *GameManager) MakeMove(ctx context.Context, roomID, playerID string, column int) (*connectfour.MoveResult, *entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.rooms.GetByID(ctx, roomID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get room: %w", err)
	}

	result, err := connectfour.MakeMove(room, playerID, column)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make move: %w", err)
	}

	if result.Finished {
		if err = that.rooms.DeleteByID(ctx, room.ID); err != nil {
			that.logger.Error("failed to delete finished room", "roomID", room.ID, "error", err)
		}

		that.logger.Info("room finished", "roomID", room.ID, "winner", result.Winner, "draw", result.Draw)

		return result, room, nil
	}

	if err = that.rooms.CreateOrUpdate(ctx, room); err != nil {
		return nil, nil, fmt.Errorf("failed to update room: %w", err)
	}

	return result, room, nil
}

// Disconnect abandons and removes the room the participant was in, if any.
// The abandoned room is returned so the transport can notify the remaining
// participant; (nil, nil) means the participant was not in a room.
func (that *GameManager) Disconnect(ctx context.Context, playerID string) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	room, err := that.rooms.FindByPlayerID(ctx, playerID)
	if errors.Is(err, apperror.ErrRoomNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find room: %w", err)
	}

	room.Abandon()

	if err = that.rooms.DeleteByID(ctx, room.ID); err != nil {
		return nil, fmt.Errorf("failed to delete room: %w", err)
	}

	that.logger.Info("room abandoned", "roomID", room.ID, "playerID", playerID)

	return room, nil
}
