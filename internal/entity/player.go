package entity

import (
	"context"
	"fmt"
)

// Connection delivers server messages to one player.
type Connection interface {
	ID() string
	Send(ctx context.Context, message any) error
}

type nopConnection struct {
	id string
}

// NewNopConnection backs AI seats, which have nobody to talk to.
func NewNopConnection(id string) Connection {
	return &nopConnection{id: id}
}

func (that *nopConnection) ID() string { return that.id }

func (that *nopConnection) Send(context.Context, any) error { return nil }

type Player struct {
	ID      string `json:"uuid"`
	Name    string `json:"name"`
	Role    *Role  `json:"role"`
	IsHuman bool   `json:"-"`
	IsReady bool   `json:"ready"`
	InLobby bool   `json:"inLobby"`
	InGame  bool   `json:"inGame"`
	LobbyID string `json:"-"`

	Conn Connection `json:"-"`
}

func NewHumanPlayer(conn Connection) *Player {
	return &Player{
		ID:      conn.ID(),
		IsHuman: true,
		Conn:    conn,
	}
}

// NewBotPlayer creates the AI seat for role.
func NewBotPlayer(id string, role Role) *Player {
	kind := "GPT Guesser"
	if role.IsSpymaster() {
		kind = "GPT Spy Master"
	}

	return &Player{
		ID:      id,
		Name:    fmt.Sprintf("%s (%s)", kind, role.Team()),
		Role:    &role,
		IsReady: true,
		Conn:    NewNopConnection(id),
	}
}

func (that *Player) HasRole(role Role) bool {
	return that.Role != nil && *that.Role == role
}

func (that *Player) AssignRole(role Role) {
	that.Role = &role
}

func (that *Player) Send(ctx context.Context, message any) error {
	if that.Conn == nil {
		return nil
	}
	return that.Conn.Send(ctx, message)
}
