package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

var roomCodePattern = regexp.MustCompile(`^[0-9A-Z]{6}$`)

func TestRoomRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a waiting room with a well-formed code", func(t *testing.T) {
		// Given: an empty registry
		repo := NewRoomRepository()

		// When: creating a room
		room, err := repo.Create(ctx, &entity.Player{ID: "player1"})

		// Then: the room exists under a 6-character [0-9A-Z] code
		require.NoError(t, err)
		assert.Regexp(t, roomCodePattern, room.ID)
		assert.True(t, room.IsWaiting())

		stored, err := repo.GetByID(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, room, stored)
	})

	t.Run("Issues distinct codes for distinct rooms", func(t *testing.T) {
		// Given: an empty registry
		repo := NewRoomRepository()

		// When: creating many rooms
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			room, err := repo.Create(ctx, &entity.Player{ID: "player1"})
			require.NoError(t, err)

			// Then: no code repeats among live rooms
			assert.False(t, seen[room.ID])
			seen[room.ID] = true
		}
	})
}

func TestRoomRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns ErrRoomNotFound for an unknown code", func(t *testing.T) {
		// Given: an empty registry
		repo := NewRoomRepository()

		// When: looking up a code that was never issued
		_, err := repo.GetByID(ctx, "ZZZZZZ")

		// Then: the sentinel error is returned
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}

func TestRoomRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()

	// Given: a registry with one room
	repo := NewRoomRepository()
	room, err := repo.Create(ctx, &entity.Player{ID: "player1"})
	require.NoError(t, err)

	// When: deleting it
	require.NoError(t, repo.DeleteByID(ctx, room.ID))

	// Then: the room is gone
	_, err = repo.GetByID(ctx, room.ID)
	assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
}

func TestRoomRepository_FindByPlayerID(t *testing.T) {
	ctx := context.Background()

	t.Run("Finds the room containing the participant", func(t *testing.T) {
		// Given: a room with two participants
		repo := NewRoomRepository()
		room, err := repo.Create(ctx, &entity.Player{ID: "player1"})
		require.NoError(t, err)

		room.AddPlayer(&entity.Player{ID: "player2"})
		require.NoError(t, repo.CreateOrUpdate(ctx, room))

		// When: looking up by either participant
		byCreator, err := repo.FindByPlayerID(ctx, "player1")
		require.NoError(t, err)
		byJoiner, err := repo.FindByPlayerID(ctx, "player2")
		require.NoError(t, err)

		// Then: both resolve to the same room
		assert.Equal(t, room.ID, byCreator.ID)
		assert.Equal(t, room.ID, byJoiner.ID)
	})

	t.Run("Returns ErrRoomNotFound for a player without a room", func(t *testing.T) {
		// Given: an empty registry
		repo := NewRoomRepository()

		// When: looking up an unknown participant
		_, err := repo.FindByPlayerID(ctx, "ghost")

		// Then: the sentinel error is returned
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})
}
