package types

import (
	"github.com/cbodonnell/descent/pkg/kinematic"
)

// PlayerState is the server-side state of a joined player.
type PlayerState struct {
	ID       string
	Username string
	Name     string
	Color    int
	Level    int
	Xp       int
	Position kinematic.Vector
	Rotation float64
	Depth    int
	Hp       int
	MaxHp    int
	JoinedAt int64
}

// Copy returns a copy of the player state.
func (p *PlayerState) Copy() *PlayerState {
	copy := *p
	return &copy
}
