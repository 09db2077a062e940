package mobs

import (
	"github.com/cbodonnell/descent/pkg/kinematic"
)

// Type describes a mob archetype. Types unlock by depth: the deepest
// qualifying entry of the table is used.
type Type struct {
	Name     string
	Color    int
	Shape    string
	MinDepth int
}

// Types is ordered by MinDepth ascending.
var Types = []Type{
	{Name: "Slime", Color: 0x7bed9f, MinDepth: 0, Shape: "sphere"},
	{Name: "Goblin", Color: 0xffa502, MinDepth: 1, Shape: "box"},
	{Name: "Orc", Color: 0xff6348, MinDepth: 2, Shape: "box"},
	{Name: "Demon", Color: 0xff4757, MinDepth: 3, Shape: "box"},
	{Name: "Shadow", Color: 0x5f27cd, MinDepth: 5, Shape: "octahedron"},
	{Name: "Void", Color: 0x2c2c54, MinDepth: 8, Shape: "octahedron"},
	{Name: "Ancient", Color: 0x1e1e1e, MinDepth: 12, Shape: "octahedron"},
}

// TypeForDepth returns the mob type for a depth: the last table entry
// whose MinDepth does not exceed the depth.
func TypeForDepth(depth int) Type {
	selected := Types[0]
	for _, t := range Types {
		if depth >= t.MinDepth {
			selected = t
		}
	}
	return selected
}

// State is a mob's AI state.
type State string

const (
	StatePatrol State = "patrol"
	StateChase  State = "chase"
	StateAttack State = "attack"
)

// Mob is a server-simulated NPC. Depth and Type are immutable after
// spawning.
type Mob struct {
	ID       uint32
	Depth    int
	Type     Type
	Position kinematic.Vector
	Rotation float64
	Hp       int
	MaxHp    int
	Damage   int
	XpReward int
	Speed    float64
	Level    int
	State    State

	patrolTarget    kinematic.Vector
	hasPatrolTarget bool
	patrolWait      float64
	attackCooldown  float64
}

// Stats are the depth-scaled attributes of a freshly spawned mob.
type Stats struct {
	MaxHp  int
	Damage int
	Xp     int
	Speed  float64
	Level  int
}

// DamageResult reports the outcome of a hit on a mob.
type DamageResult struct {
	Died  bool
	Xp    int
	Hp    int
	MaxHp int
	Mob   *Mob
}

// AttackIntent signals that a mob wants to attack a player this tick.
// The engine is the single authority for attack decisions; the tick
// loop applies them without re-checking proximity.
type AttackIntent struct {
	MobID    uint32
	TargetID string
	Damage   int
}
