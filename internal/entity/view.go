package entity

// Server message types.
const (
	MessageStateUpdate  = "stateUpdate"
	MessagePlayerUpdate = "playerUpdate"
	MessageLobbyJoined  = "lobbyJoined"
	MessageLobbies      = "lobbiesUpdate"
	MessageIDAssign     = "idAssign"
	MessageError        = "error"
)

// StateView is the per-viewer projection of a game.
type StateView struct {
	ServerMessageType string       `json:"serverMessageType"`
	Tiles             []Tile       `json:"tiles"`
	Players           []PlayerView `json:"players"`
	OnTurnRole        int          `json:"onTurnRole"`
	GuessesRemaining  int          `json:"guessesRemaining"`
	Clue              *Clue        `json:"clue"`
	NewTurn           bool         `json:"new_turn"`
	Winner            *Team        `json:"winner"`
}

type PlayerView struct {
	Name    string `json:"name"`
	UUID    string `json:"uuid"`
	Ready   bool   `json:"ready"`
	InGame  bool   `json:"inGame"`
	InLobby bool   `json:"inLobby"`
	Role    *int   `json:"role"`
}

func (that *Player) View() PlayerView {
	view := PlayerView{
		Name:    that.Name,
		UUID:    that.ID,
		Ready:   that.IsReady,
		InGame:  that.InGame,
		InLobby: that.InLobby,
	}
	if that.Role != nil {
		index := that.Role.Index()
		view.Role = &index
	}
	return view
}

type PlayerUpdate struct {
	ServerMessageType string       `json:"serverMessageType"`
	Players           []PlayerView `json:"players"`
}

func NewPlayerUpdate(players []*Player) PlayerUpdate {
	views := make([]PlayerView, 0, len(players))
	for _, player := range players {
		views = append(views, player.View())
	}
	return PlayerUpdate{ServerMessageType: MessagePlayerUpdate, Players: views}
}

// LobbyInfo is the directory entry for a lobby.
type LobbyInfo struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Players []PlayerView `json:"players"`
	InGame  bool         `json:"inGame"`
}

// IsJoinable reports whether another player may still enter.
func (that *LobbyInfo) IsJoinable() bool {
	return !that.InGame && len(that.Players) < MaxSeats
}
