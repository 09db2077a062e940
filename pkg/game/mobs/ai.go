package mobs

import (
	"math"

	"github.com/cbodonnell/descent/pkg/game/constants"
	"github.com/cbodonnell/descent/pkg/game/types"
	"github.com/cbodonnell/descent/pkg/kinematic"
)

// Update advances every live mob's state machine by delta seconds and
// returns the attack intents produced this tick. State is recomputed
// from the distance to the nearest same-depth player on every call:
// attack within MobAttackRange, chase within MobAggroRange, patrol
// otherwise. There is no hysteresis.
func (m *Manager) Update(delta float64, players map[string]*types.PlayerState) []AttackIntent {
	playersByDepth := make(map[int][]*types.PlayerState)
	for _, player := range players {
		playersByDepth[player.Depth] = append(playersByDepth[player.Depth], player)
	}

	var intents []AttackIntent
	for _, mob := range m.mobs {
		if mob.Hp <= 0 {
			continue
		}

		var closest *types.PlayerState
		closestDist := math.Inf(1)
		for _, player := range playersByDepth[mob.Depth] {
			dist := kinematic.Distance(mob.Position, player.Position)
			if dist < closestDist {
				closestDist = dist
				closest = player
			}
		}

		if mob.attackCooldown > 0 {
			mob.attackCooldown -= delta
		}

		switch {
		case closest != nil && closestDist <= constants.MobAttackRange:
			mob.State = StateAttack
			if intent := m.handleAttack(mob, closest); intent != nil {
				intents = append(intents, *intent)
			}
		case closest != nil && closestDist <= constants.MobAggroRange:
			mob.State = StateChase
			m.handleChase(mob, closest, delta)
		default:
			mob.State = StatePatrol
			m.handlePatrol(mob, delta)
		}
	}

	return intents
}

func (m *Manager) handlePatrol(mob *Mob, delta float64) {
	if mob.patrolWait > 0 {
		mob.patrolWait -= delta
		return
	}

	dist := kinematic.Distance(mob.Position, mob.patrolTarget)
	if !mob.hasPatrolTarget || dist < constants.MobPatrolArriveDistance {
		angle := m.rng.Float64() * 2 * math.Pi
		distance := constants.MobPatrolTargetMinDistance + m.rng.Float64()*constants.MobPatrolTargetRange
		mob.patrolTarget = kinematic.Vector{
			X: mob.Position.X + math.Cos(angle)*distance,
			Z: mob.Position.Z + math.Sin(angle)*distance,
		}
		mob.hasPatrolTarget = true
		mob.patrolWait = constants.MobPatrolWaitMin + m.rng.Float64()*constants.MobPatrolWaitRange
		return
	}

	step := mob.Speed * constants.MobPatrolSpeedFactor * delta
	direction := mob.patrolTarget.Sub(mob.Position).Normalized()
	mob.Position = mob.Position.Add(direction.Scale(step))
	mob.Rotation = math.Atan2(direction.X, direction.Z)
}

func (m *Manager) handleChase(mob *Mob, player *types.PlayerState, delta float64) {
	dist := kinematic.Distance(mob.Position, player.Position)
	if dist <= 0.1 {
		return
	}

	step := mob.Speed * delta
	direction := player.Position.Sub(mob.Position).Normalized()
	mob.Position = mob.Position.Add(direction.Scale(step))
	mob.Rotation = math.Atan2(direction.X, direction.Z)
}

func (m *Manager) handleAttack(mob *Mob, player *types.PlayerState) *AttackIntent {
	mob.Rotation = kinematic.Heading(mob.Position, player.Position)

	if mob.attackCooldown > 0 {
		return nil
	}
	mob.attackCooldown = constants.MobAttackCooldown

	return &AttackIntent{
		MobID:    mob.ID,
		TargetID: player.ID,
		Damage:   mob.Damage,
	}
}
