package websocket

import "github.com/rocketscienceinc/codenames-backend/internal/entity"

// Client message types.
const (
	typeIDRequest   = "idRequest"
	typeCreateLobby = "createLobby"
	typeJoinLobby   = "joinLobby"
	typeLobbies     = "lobbiesRequest"
	typeLeaveLobby  = "leaveLobby"
	typePreferences = "preferencesRequest"
	typeInitialise  = "initialiseRequest"
	typeProvideClue = "provideClue"
	typeGuessTile   = "guessTile"
	typePassTurn    = "passTurn"
)

// ClientMessage is every request a browser can send. Which fields are set depends on Type.
type ClientMessage struct {
	Type    string       `json:"clientMessageType"`
	Name    string       `json:"name,omitempty"`
	LobbyID string       `json:"lobbyId,omitempty"`
	Word    string       `json:"word,omitempty"`
	Number  *int         `json:"number,omitempty"`
	Player  *PlayerPrefs `json:"player,omitempty"`
}

type PlayerPrefs struct {
	Name  *string `json:"name"`
	Ready *bool   `json:"ready"`
	Role  *int    `json:"role"`
}

type idAssign struct {
	ServerMessageType string `json:"serverMessageType"`
	UUID              string `json:"uuid"`
}

type lobbyJoined struct {
	ServerMessageType string `json:"serverMessageType"`
	LobbyID           string `json:"lobbyId"`
}

type lobbiesUpdate struct {
	ServerMessageType string              `json:"serverMessageType"`
	Lobbies           []*entity.LobbyInfo `json:"lobbies"`
}

type errorMessage struct {
	ServerMessageType string `json:"serverMessageType"`
	Message           string `json:"message"`
}

func newError(message string) errorMessage {
	return errorMessage{ServerMessageType: entity.MessageError, Message: message}
}
