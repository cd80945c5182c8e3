package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
	"github.com/rocketscienceinc/connectfour-backend/internal/repository"
)

func newManager() *GameManager {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewGameManager(logger, repository.NewRoomRepository())
}

func TestGameManager_CreateRoom(t *testing.T) {
	ctx := context.Background()

	// Given: a fresh manager
	manager := newManager()

	// When: a participant creates a room
	room, err := manager.CreateRoom(ctx, "player1")

	// Then: the room is waiting with the creator as sole participant
	require.NoError(t, err)
	assert.True(t, room.IsWaiting())
	require.Len(t, room.Players, 1)
	assert.Equal(t, "player1", room.Players[0].ID)
}

func TestGameManager_JoinRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("Activates the room and gives the creator the first move", func(t *testing.T) {
		// Given: a waiting room
		manager := newManager()
		room, err := manager.CreateRoom(ctx, "player1")
		require.NoError(t, err)

		// When: a second participant joins
		joined, turnHolder, err := manager.JoinRoom(ctx, room.ID, "player2")

		// Then: the room is ongoing and the creator holds the turn
		require.NoError(t, err)
		assert.True(t, joined.IsOngoing())
		assert.Equal(t, "player1", joined.Turn)
		assert.Equal(t, "player1", turnHolder)
		require.Len(t, joined.Players, 2)
	})

	t.Run("Returns ErrRoomNotFound for an unknown code", func(t *testing.T) {
		// Given: a fresh manager
		manager := newManager()

		// When: joining a room that does not exist
		_, _, err := manager.JoinRoom(ctx, "ZZZZZZ", "player2")

		// Then: the join fails with RoomNotFound
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("Returns ErrRoomFull for a third participant", func(t *testing.T) {
		// Given: an active room with two participants
		manager := newManager()
		room, err := manager.CreateRoom(ctx, "player1")
		require.NoError(t, err)
		_, _, err = manager.JoinRoom(ctx, room.ID, "player2")
		require.NoError(t, err)

		// When: a third participant tries to join
		_, _, err = manager.JoinRoom(ctx, room.ID, "player3")

		// Then: the join fails with RoomFull
		require.ErrorIs(t, err, apperror.ErrRoomFull)
	})
}

func TestGameManager_MakeMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies moves and keeps the room registered while ongoing", func(t *testing.T) {
		// Given: an active room
		manager := newManager()
		room, err := manager.CreateRoom(ctx, "player1")
		require.NoError(t, err)
		_, _, err = manager.JoinRoom(ctx, room.ID, "player2")
		require.NoError(t, err)

		// When: the creator makes the opening move
		result, updated, err := manager.MakeMove(ctx, room.ID, "player1", 0)

		// Then: the disc lands and the turn flips
		require.NoError(t, err)
		assert.Equal(t, entity.BoardRows-1, result.Row)
		assert.False(t, result.Finished)
		assert.Equal(t, "player2", updated.Turn)
	})

	t.Run("Rejects a move for an unknown room", func(t *testing.T) {
		// Given: a fresh manager
		manager := newManager()

		// When: moving in a room that does not exist
		_, _, err := manager.MakeMove(ctx, "ZZZZZZ", "player1", 0)

		// Then: the move fails with RoomNotFound
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("A winning move removes the room from the registry", func(t *testing.T) {
		// Given: an active room one move away from a vertical red win
		manager := newManager()
		room, err := manager.CreateRoom(ctx, "player1")
		require.NoError(t, err)
		_, _, err = manager.JoinRoom(ctx, room.ID, "player2")
		require.NoError(t, err)

		sequence := []struct {
			player string
			column int
		}{
			{"player1", 0}, {"player2", 1},
			{"player1", 0}, {"player2", 1},
			{"player1", 0}, {"player2", 2},
		}
		for _, move := range sequence {
			_, _, err = manager.MakeMove(ctx, room.ID, move.player, move.column)
			require.NoError(t, err)
		}

		// When: red drops the fourth disc into column 0
		result, finished, err := manager.MakeMove(ctx, room.ID, "player1", 0)

		// Then: red wins and the room leaves the registry
		require.NoError(t, err)
		assert.True(t, result.Finished)
		assert.Equal(t, "player1", result.Winner)
		assert.True(t, finished.IsFinished())

		_, _, err = manager.MakeMove(ctx, room.ID, "player2", 3)
		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("A non-turn-holder move never mutates the board", func(t *testing.T) {
		// Given: an active room with the creator to move
		manager := newManager()
		room, err := manager.CreateRoom(ctx, "player1")
		require.NoError(t, err)
		active, _, err := manager.JoinRoom(ctx, room.ID, "player2")
		require.NoError(t, err)
		before := active.Board

		// When: the joiner moves out of turn
		_, _, err = manager.MakeMove(ctx, room.ID, "player2", 3)

		// Then: the request is rejected and the board unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, before, active.Board)
	})
}

func TestGameManager_Disconnect(t *testing.T) {
	ctx := context.Background()

	t.Run("Abandons and removes the room of the disconnected player", func(t *testing.T) {
		// Given: an active room
		manager := newManager()
		room, err := manager.CreateRoom(ctx, "player1")
		require.NoError(t, err)
		_, _, err = manager.JoinRoom(ctx, room.ID, "player2")
		require.NoError(t, err)

		// When: the creator disconnects
		abandoned, err := manager.Disconnect(ctx, "player1")

		// Then: the room is abandoned and no longer joinable
		require.NoError(t, err)
		require.NotNil(t, abandoned)
		assert.True(t, abandoned.IsTerminal())

		_, _, err = manager.JoinRoom(ctx, room.ID, "player3")
		assert.ErrorIs(t, err, apperror.ErrRoomNotFound)
	})

	t.Run("Is a no-op for a player without a room", func(t *testing.T) {
		// Given: a fresh manager
		manager := newManager()

		// When: an unknown participant disconnects
		room, err := manager.Disconnect(ctx, "ghost")

		// Then: nothing happens
		require.NoError(t, err)
		assert.Nil(t, room)
	})
}
