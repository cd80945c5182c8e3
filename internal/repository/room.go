package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/pkg"
)

var ErrCodeSpaceExhausted = errors.New("could not generate an unused room code")

// maxCodeAttempts bounds the regeneration loop on room-code collisions.
const maxCodeAttempts = 10

type RoomRepository interface {
	Create(ctx context.Context, creator *entity.Player) (*entity.Room, error)
	GetByID(ctx context.Context, id string) (*entity.Room, error)
	CreateOrUpdate(ctx context.Context, room *entity.Room) error
	DeleteByID(ctx context.Context, id string) error
	FindByPlayerID(ctx context.Context, playerID string) (*entity.Room, error)
}

// inMemoryRooms is the live-room registry. All state is process-local and
// lost on restart; the registry exclusively owns every Room instance.
type inMemoryRooms struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Room
}

func NewRoomRepository() RoomRepository {
	return &inMemoryRooms{
		rooms: make(map[string]*entity.Room),
	}
}

func (that *inMemoryRooms) Create(_ context.Context, creator *entity.Player) (*entity.Room, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := pkg.GenerateRoomCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate room code: %w", err)
		}

		if _, taken := that.rooms[code]; taken {
			continue
		}

		room := entity.NewRoom(code, creator)
		that.rooms[code] = room

		return room, nil
	}

	return nil, ErrCodeSpaceExhausted
}

func (that *inMemoryRooms) GetByID(_ context.Context, id string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, id)
	}

	return room, nil
}

func (that *inMemoryRooms) CreateOrUpdate(_ context.Context, room *entity.Room) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.rooms[room.ID] = room

	return nil
}

func (that *inMemoryRooms) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, id)

	return nil
}

func (that *inMemoryRooms) FindByPlayerID(_ context.Context, playerID string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	for _, room := range that.rooms {
		if room.PlayerByID(playerID) != nil {
			return room, nil
		}
	}

	return nil, fmt.Errorf("%w: no room for player %s", apperror.ErrRoomNotFound, playerID)
}
