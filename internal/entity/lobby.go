package entity

import "strings"

const defaultLobbyName = "Unnamed Lobby"

// Lobby gathers human players before a game starts.
type Lobby struct {
	ID      string
	Name    string
	Players []*Player
	InGame  bool
}

func NewLobby(id, name string) *Lobby {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultLobbyName
	}
	return &Lobby{ID: id, Name: name}
}

func (that *Lobby) IsFull() bool {
	return len(that.Players) >= MaxSeats
}

func (that *Lobby) Has(playerID string) bool {
	return that.index(playerID) >= 0
}

func (that *Lobby) Add(player *Player) {
	if that.Has(player.ID) {
		return
	}
	that.Players = append(that.Players, player)
}

func (that *Lobby) Remove(playerID string) {
	if i := that.index(playerID); i >= 0 {
		that.Players = append(that.Players[:i], that.Players[i+1:]...)
	}
}

func (that *Lobby) index(playerID string) int {
	for i, player := range that.Players {
		if player.ID == playerID {
			return i
		}
	}
	return -1
}

// RoleHolder returns the player holding role, if any.
func (that *Lobby) RoleHolder(role Role) *Player {
	for _, player := range that.Players {
		if player.HasRole(role) {
			return player
		}
	}
	return nil
}

// ReadyToStart reports whether every player is named, seated and ready.
func (that *Lobby) ReadyToStart() bool {
	if that.InGame || len(that.Players) == 0 {
		return false
	}
	for _, player := range that.Players {
		if player.Name == "" || player.Role == nil || !player.IsReady {
			return false
		}
	}
	return true
}

// FreeRoles lists roles nobody has picked, in ordinal order.
func (that *Lobby) FreeRoles() []Role {
	free := make([]Role, 0, MaxSeats)
	for _, role := range Roles {
		if that.RoleHolder(role) == nil {
			free = append(free, role)
		}
	}
	return free
}

func (that *Lobby) Info() *LobbyInfo {
	players := make([]PlayerView, 0, len(that.Players))
	for _, player := range that.Players {
		players = append(players, player.View())
	}
	return &LobbyInfo{
		ID:      that.ID,
		Name:    that.Name,
		Players: players,
		InGame:  that.InGame,
	}
}
