package entity

const (
	BoardRows = 6
	BoardCols = 7

	winLength = 4

	MarkRed    = "R"
	MarkYellow = "Y"

	EmptyCell = ""
)

// directions holds the two opposing rays of each axis: horizontal,
// vertical and both diagonals.
var directions = [4][2][2]int{
	{{0, -1}, {0, 1}},
	{{-1, 0}, {1, 0}},
	{{-1, -1}, {1, 1}},
	{{-1, 1}, {1, -1}},
}

// Board is a Connect Four grid. Row 0 is the top row; discs stack upward
// from row BoardRows-1, so a column's occupied cells are always contiguous
// from the bottom.
type Board [BoardRows][BoardCols]string

// LowestEmptyRow scans the column from the bottom and returns the first
// empty row. The second return value is false when the column is full;
// callers must treat that as a rejected move, not an error.
func (that *Board) LowestEmptyRow(column int) (int, bool) {
	for row := BoardRows - 1; row >= 0; row-- {
		if that[row][column] == EmptyCell {
			return row, true
		}
	}

	return -1, false
}

// Place records the mark at the given cell. The cell must be empty and the
// row must come from LowestEmptyRow; that is the caller's contract.
func (that *Board) Place(row, column int, mark string) {
	that[row][column] = mark
}

// CheckWin reports whether the mark just placed at (row, column) completes
// a run of at least four identical marks along any axis. It only ever
// walks outward from the placed cell, so the cost does not grow with how
// full the board is.
func (that *Board) CheckWin(row, column int) bool {
	mark := that[row][column]
	if mark == EmptyCell {
		return false
	}

	for _, axis := range directions {
		count := 1 + that.countRun(row, column, axis[0][0], axis[0][1], mark) +
			that.countRun(row, column, axis[1][0], axis[1][1], mark)
		if count >= winLength {
			return true
		}
	}

	return false
}

// countRun walks from (row, column) in the given direction and counts
// contiguous cells holding mark, excluding the starting cell.
func (that *Board) countRun(row, column, deltaRow, deltaCol int, mark string) int {
	count := 0

	for r, c := row+deltaRow, column+deltaCol; r >= 0 && r < BoardRows && c >= 0 && c < BoardCols; r, c = r+deltaRow, c+deltaCol {
		if that[r][c] != mark {
			break
		}
		count++
	}

	return count
}

// CheckDraw reports whether the board is full. With the gravity invariant
// it is enough to look at the top row.
func (that *Board) CheckDraw() bool {
	for column := 0; column < BoardCols; column++ {
		if that[0][column] == EmptyCell {
			return false
		}
	}

	return true
}
