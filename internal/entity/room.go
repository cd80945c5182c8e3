package entity

const (
	StatusWaiting   = "waiting"
	StatusOngoing   = "ongoing"
	StatusFinished  = "finished"
	StatusAbandoned = "abandoned"

	maxPlayers = 2
)

// Room is a single isolated two-player session identified by a short code.
// Turn holds the ID of the participant currently permitted to move; it is
// empty while the room is waiting and after it reaches a terminal status.
type Room struct {
	ID      string    `json:"id"`
	Players []*Player `json:"players,omitempty"`
	Board   Board     `json:"board"`
	Turn    string    `json:"player_turn,omitempty"`
	Status  string    `json:"status"`
	Winner  string    `json:"winner,omitempty"`
}

// NewRoom creates a waiting room with the creator as sole participant.
// The creator always plays the red mark and will hold the first turn once
// an opponent joins.
func NewRoom(id string, creator *Player) *Room {
	creator.Mark = MarkRed

	return &Room{
		ID:      id,
		Players: []*Player{creator},
		Status:  StatusWaiting,
	}
}

// AddPlayer attaches the second participant and activates the room: the
// joiner gets the yellow mark and the creator gets the first move.
func (that *Room) AddPlayer(player *Player) {
	player.Mark = MarkYellow
	that.Players = append(that.Players, player)
	that.Status = StatusOngoing
	that.Turn = that.Players[0].ID
}

func (that *Room) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Room) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Room) IsFinished() bool {
	return that.Status == StatusFinished
}

// IsTerminal reports whether the room accepts no further moves.
func (that *Room) IsTerminal() bool {
	return that.Status == StatusFinished || that.Status == StatusAbandoned
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= maxPlayers
}

// PlayerByID returns the participant with the given ID, or nil.
func (that *Room) PlayerByID(id string) *Player {
	for _, player := range that.Players {
		if player.ID == id {
			return player
		}
	}

	return nil
}

// Opponent returns the other participant, or nil if the room has only one.
func (that *Room) Opponent(id string) *Player {
	for _, player := range that.Players {
		if player.ID != id {
			return player
		}
	}

	return nil
}

// AdvanceTurn flips the turn holder to the other participant.
func (that *Room) AdvanceTurn() {
	if opponent := that.Opponent(that.Turn); opponent != nil {
		that.Turn = opponent.ID
	}
}

// Finish marks the room terminal with the given winner; an empty winner
// means a draw. The turn holder is cleared so no participant may move.
func (that *Room) Finish(winner string) {
	that.Winner = winner
	that.Status = StatusFinished
	that.Turn = ""
}

// Abandon marks the room terminal after a participant disconnect.
func (that *Room) Abandon() {
	that.Status = StatusAbandoned
	that.Turn = ""
}
