package mobs

import (
	"math/rand"
	"testing"

	"github.com/cbodonnell/descent/pkg/game/types"
	"github.com/cbodonnell/descent/pkg/kinematic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playersAt(positions ...kinematic.Vector) map[string]*types.PlayerState {
	players := make(map[string]*types.PlayerState)
	for i, pos := range positions {
		id := string(rune('a' + i))
		players[id] = &types.PlayerState{ID: id, Position: pos, Depth: 0}
	}
	return players
}

func spawnAtOrigin(m *Manager, depth int) *Mob {
	mob := m.SpawnMob(depth, nil)
	mob.Position = kinematic.Vector{}
	return mob
}

func TestUpdate_StateFromDistance(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		want     State
	}{
		{"within attack range", 1.0, StateAttack},
		{"at attack range", 1.5, StateAttack},
		{"within aggro range", 5.0, StateChase},
		{"at aggro range", 12.0, StateChase},
		{"beyond aggro range", 12.5, StatePatrol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager()
			mob := spawnAtOrigin(m, 0)

			m.Update(0.05, playersAt(kinematic.Vector{X: tt.distance}))
			assert.Equal(t, tt.want, mob.State)
		})
	}
}

func TestUpdate_StateIsRecomputedEveryTick(t *testing.T) {
	m := newTestManager()
	mob := spawnAtOrigin(m, 0)

	// Identical inputs always yield the same state, regardless of the
	// previous state.
	for i := 0; i < 5; i++ {
		mob.Position = kinematic.Vector{}
		m.Update(0.05, playersAt(kinematic.Vector{X: 5}))
		assert.Equal(t, StateChase, mob.State)

		mob.Position = kinematic.Vector{}
		m.Update(0.05, playersAt(kinematic.Vector{X: 20}))
		assert.Equal(t, StatePatrol, mob.State)
	}
}

func TestUpdate_ChaseMovesTowardNearestPlayer(t *testing.T) {
	m := newTestManager()
	mob := spawnAtOrigin(m, 0)

	far := kinematic.Vector{X: 11, Z: 0}
	near := kinematic.Vector{X: 0, Z: 8}
	m.Update(0.1, playersAt(far, near))

	require.Equal(t, StateChase, mob.State)
	// speed 2 * delta 0.1 along +Z toward the nearer player
	assert.InDelta(t, 0.0, mob.Position.X, 1e-9)
	assert.InDelta(t, 0.2, mob.Position.Z, 1e-9)
	// Facing +Z is rotation 0 (heading measured from +Z toward +X).
	assert.InDelta(t, 0.0, mob.Rotation, 1e-9)
}

func TestUpdate_AttackEmitsIntentAndCooldown(t *testing.T) {
	m := newTestManager()
	mob := spawnAtOrigin(m, 0)
	players := playersAt(kinematic.Vector{X: 1})

	intents := m.Update(0.05, players)
	require.Len(t, intents, 1)
	assert.Equal(t, mob.ID, intents[0].MobID)
	assert.Equal(t, "a", intents[0].TargetID)
	assert.Equal(t, mob.Damage, intents[0].Damage)

	// Cooldown suppresses further intents for one second.
	total := 0.0
	for total < 0.9 {
		assert.Empty(t, m.Update(0.05, players))
		total += 0.05
	}

	intents = m.Update(0.2, players)
	require.Len(t, intents, 1)
}

func TestUpdate_AttackFacesPlayer(t *testing.T) {
	m := newTestManager()
	mob := spawnAtOrigin(m, 0)

	m.Update(0.05, playersAt(kinematic.Vector{X: 1, Z: 0}))
	require.Equal(t, StateAttack, mob.State)
	// +X is heading pi/2.
	assert.InDelta(t, 1.5707963, mob.Rotation, 1e-6)
}

func TestUpdate_PatrolWaitsThenMoves(t *testing.T) {
	m := newTestManager()
	mob := spawnAtOrigin(m, 0)

	// First update picks a patrol target and a wait of 1-3 s.
	m.Update(0.05, nil)
	require.Equal(t, StatePatrol, mob.State)
	require.True(t, mob.hasPatrolTarget)
	assert.GreaterOrEqual(t, mob.patrolWait, 1.0)
	assert.LessOrEqual(t, mob.patrolWait, 3.0)

	target := mob.patrolTarget
	dist := kinematic.Distance(mob.Position, target)
	assert.GreaterOrEqual(t, dist, 3.0)
	assert.LessOrEqual(t, dist, 8.0)

	// While waiting the mob does not move.
	m.Update(0.5, nil)
	assert.Equal(t, kinematic.Vector{}, mob.Position)

	// Burn the rest of the wait, then the mob walks toward its target
	// at 30% speed.
	m.Update(3.0, nil)
	before := kinematic.Distance(mob.Position, target)
	m.Update(0.1, nil)
	after := kinematic.Distance(mob.Position, target)
	assert.Less(t, after, before)
	assert.InDelta(t, before-after, mob.Speed*0.3*0.1, 1e-9)
}

func TestUpdate_DeadMobsAreSkipped(t *testing.T) {
	m := newTestManager()
	mob := spawnAtOrigin(m, 0)
	mob.Hp = 0

	intents := m.Update(0.05, playersAt(kinematic.Vector{X: 1}))
	assert.Empty(t, intents)
	assert.Equal(t, kinematic.Vector{}, mob.Position)
}

func TestUpdate_IgnoresPlayersOnOtherDepths(t *testing.T) {
	m := newTestManager()
	mob := spawnAtOrigin(m, 0)

	players := map[string]*types.PlayerState{
		"deep": {ID: "deep", Position: kinematic.Vector{X: 1}, Depth: 3},
	}
	m.Update(0.05, players)
	assert.Equal(t, StatePatrol, mob.State)
}

func TestUpdate_DeterministicWithFixedSeed(t *testing.T) {
	run := func() kinematic.Vector {
		m := NewManager(rand.New(rand.NewSource(99)))
		mob := m.SpawnMob(0, nil)
		for i := 0; i < 100; i++ {
			m.Update(0.05, nil)
		}
		return mob.Position
	}
	assert.Equal(t, run(), run())
}
