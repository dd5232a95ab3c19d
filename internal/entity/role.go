package entity

import (
	"fmt"
)

type Team string

const (
	TeamRed      Team = "red"
	TeamBlue     Team = "blue"
	TeamAssassin Team = "assassin"
	TeamNeutral  Team = "neutral"

	// TeamUnknown is what non-spymasters see for unrevealed tiles.
	TeamUnknown Team = "unknown"
)

// Other returns the opposing playing team.
func (that Team) Other() Team {
	if that == TeamRed {
		return TeamBlue
	}
	return TeamRed
}

func (that Team) IsPlaying() bool {
	return that == TeamRed || that == TeamBlue
}

// Role is one of the four fixed seats. The ordinal is part of the wire protocol.
type Role int

const (
	RoleRedSpymaster Role = iota
	RoleBlueSpymaster
	RoleRedOperative
	RoleBlueOperative
)

// Roles lists every role in ordinal order.
var Roles = [...]Role{RoleRedSpymaster, RoleBlueSpymaster, RoleRedOperative, RoleBlueOperative}

func NewRole(team Team, isSpymaster bool) Role {
	switch {
	case team == TeamRed && isSpymaster:
		return RoleRedSpymaster
	case team == TeamBlue && isSpymaster:
		return RoleBlueSpymaster
	case team == TeamRed:
		return RoleRedOperative
	default:
		return RoleBlueOperative
	}
}

// RoleFromIndex validates a wire ordinal.
func RoleFromIndex(index int) (Role, error) {
	if index < 0 || index >= len(Roles) {
		return 0, fmt.Errorf("unknown role index %d", index)
	}
	return Role(index), nil
}

func (that Role) Team() Team {
	if that == RoleRedSpymaster || that == RoleRedOperative {
		return TeamRed
	}
	return TeamBlue
}

func (that Role) IsSpymaster() bool {
	return that == RoleRedSpymaster || that == RoleBlueSpymaster
}

func (that Role) Index() int {
	return int(that)
}

func (that Role) String() string {
	kind := "operative"
	if that.IsSpymaster() {
		kind = "spymaster"
	}
	return fmt.Sprintf("%s %s", that.Team(), kind)
}
