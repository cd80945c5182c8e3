package connectfour

import (
	"github.com/rocketscienceinc/connectfour-backend/internal/apperror"
	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

// MoveResult describes a successfully applied move. When Finished is set
// the room reached a terminal state: Winner holds the winning participant
// ID, or Draw is set when the board filled without a win. NextTurn is the
// turn holder after the move, snapshotted so callers never have to read
// the live room once it leaves the session lock; it is empty on a
// terminal move.
type MoveResult struct {
	Row      int
	Column   int
	PlayerID string
	Mark     string
	NextTurn string
	Finished bool
	Winner   string
	Draw     bool
}

// MakeMove validates and applies one move for the given participant. The
// checks run in order: the room must be ongoing, the participant must hold
// the turn, the column must be in range and have a free slot.
func MakeMove(room *entity.Room, playerID string, column int) (*MoveResult, error) {
	if !room.IsOngoing() {
		return nil, apperror.ErrRoomNotActive
	}

	if room.Turn != playerID {
		return nil, apperror.ErrNotYourTurn
	}

	if column < 0 || column >= entity.BoardCols {
		return nil, apperror.ErrInvalidColumn
	}

	row, ok := room.Board.LowestEmptyRow(column)
	if !ok {
		return nil, apperror.ErrColumnFull
	}

	player := room.PlayerByID(playerID)

	room.Board.Place(row, column, player.Mark)

	result := &MoveResult{
		Row:      row,
		Column:   column,
		PlayerID: playerID,
		Mark:     player.Mark,
	}

	// The win check always uses the just-placed cell, before the turn
	// holder advances.
	switch {
	case room.Board.CheckWin(row, column):
		room.Finish(playerID)
		result.Finished = true
		result.Winner = playerID
	case room.Board.CheckDraw():
		room.Finish("")
		result.Finished = true
		result.Draw = true
	default:
		room.AdvanceTurn()
		result.NextTurn = room.Turn
	}

	return result, nil
}
