package mobs

import (
	"math"
	"math/rand"
	"time"

	"github.com/cbodonnell/descent/pkg/game/constants"
	"github.com/cbodonnell/descent/pkg/kinematic"
)

// Manager owns all live mobs, indexed by id and grouped by depth.
// It is not safe for concurrent use; all calls must happen on the
// simulation goroutine.
type Manager struct {
	mobs      map[uint32]*Mob
	depths    map[int]map[uint32]struct{}
	nextMobID uint32
	rng       *rand.Rand
}

// NewManager creates a mob manager. A nil rng uses a time-seeded
// source; tests inject a fixed seed for reproducible spawns and AI.
func NewManager(rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Manager{
		mobs:      make(map[uint32]*Mob),
		depths:    make(map[int]map[uint32]struct{}),
		nextMobID: 1,
		rng:       rng,
	}
}

// StatsForDepth returns mob attributes scaled for a depth.
func StatsForDepth(depth int) Stats {
	multiplier := math.Pow(constants.MobGrowthFactor, float64(depth))
	return Stats{
		MaxHp:  int(float64(constants.MobBaseHp) * multiplier),
		Damage: int(float64(constants.MobBaseDamage) * multiplier),
		Xp:     int(float64(constants.MobBaseXp) * multiplier),
		Speed:  math.Min(constants.MobBaseSpeed+float64(depth)*constants.MobSpeedPerDepth, constants.MobMaxSpeed),
		Level:  depth + 1,
	}
}

// PopulationForDepth returns the lazy-populate mob count for a depth.
func PopulationForDepth(depth int) int {
	count := constants.MobsPerDepthBase + int(float64(depth)*constants.MobsPerDepthFactor)
	if count > constants.MobsPerDepthMax {
		count = constants.MobsPerDepthMax
	}
	return count
}

// SpawnMob creates a mob at the given depth, sampling a position in an
// annulus around the origin and avoiding the supplied positions where
// possible. Position assignment is best-effort: if every attempt lands
// too close to a player, the last sample is used.
func (m *Manager) SpawnMob(depth int, avoid []kinematic.Vector) *Mob {
	mobType := TypeForDepth(depth)
	stats := StatsForDepth(depth)

	var position kinematic.Vector
	for attempt := 0; attempt < constants.MobSpawnMaxAttempts; attempt++ {
		angle := m.rng.Float64() * 2 * math.Pi
		distance := constants.MobSpawnMinDistance +
			m.rng.Float64()*(constants.MobSpawnMaxDistance-constants.MobSpawnMinDistance)
		position = kinematic.Vector{
			X: math.Cos(angle) * distance,
			Z: math.Sin(angle) * distance,
		}

		tooClose := false
		for _, p := range avoid {
			if kinematic.Distance(position, p) < constants.MobSpawnMinDistance {
				tooClose = true
				break
			}
		}
		if !tooClose {
			break
		}
	}

	mob := &Mob{
		ID:       m.nextMobID,
		Depth:    depth,
		Type:     mobType,
		Position: position,
		Rotation: m.rng.Float64() * 2 * math.Pi,
		Hp:       stats.MaxHp,
		MaxHp:    stats.MaxHp,
		Damage:   stats.Damage,
		XpReward: stats.Xp,
		Speed:    stats.Speed,
		Level:    stats.Level,
		State:    StatePatrol,
	}
	m.nextMobID++

	m.mobs[mob.ID] = mob
	if m.depths[depth] == nil {
		m.depths[depth] = make(map[uint32]struct{})
	}
	m.depths[depth][mob.ID] = struct{}{}

	return mob
}

// SpawnMobsForDepth spawns the full population for a depth. Callers
// are responsible for only invoking this when the depth is empty.
func (m *Manager) SpawnMobsForDepth(depth int, avoid []kinematic.Vector) []*Mob {
	count := PopulationForDepth(depth)
	spawned := make([]*Mob, 0, count)
	for i := 0; i < count; i++ {
		spawned = append(spawned, m.SpawnMob(depth, avoid))
	}
	return spawned
}

// GetMob returns a mob by id, or nil.
func (m *Manager) GetMob(id uint32) *Mob {
	return m.mobs[id]
}

// GetMobsForDepth returns all mobs at a depth.
func (m *Manager) GetMobsForDepth(depth int) []*Mob {
	ids := m.depths[depth]
	mobsAtDepth := make([]*Mob, 0, len(ids))
	for id := range ids {
		if mob, ok := m.mobs[id]; ok {
			mobsAtDepth = append(mobsAtDepth, mob)
		}
	}
	return mobsAtDepth
}

// CountForDepth returns the number of mobs at a depth.
func (m *Manager) CountForDepth(depth int) int {
	return len(m.depths[depth])
}

// DamageMob applies damage to a live mob. It returns nil if the mob is
// absent or already dead, so a second hit on a corpse never rewards
// twice. Hp floors at zero.
func (m *Manager) DamageMob(id uint32, damage int) *DamageResult {
	mob, ok := m.mobs[id]
	if !ok || mob.Hp <= 0 {
		return nil
	}

	mob.Hp -= damage
	if mob.Hp <= 0 {
		mob.Hp = 0
		return &DamageResult{Died: true, Xp: mob.XpReward, Mob: mob}
	}

	return &DamageResult{Died: false, Hp: mob.Hp, MaxHp: mob.MaxHp, Mob: mob}
}

// RemoveMob deletes a mob from the registry. Unknown ids are a no-op.
func (m *Manager) RemoveMob(id uint32) {
	mob, ok := m.mobs[id]
	if !ok {
		return
	}

	if depthSet, ok := m.depths[mob.Depth]; ok {
		delete(depthSet, id)
	}
	delete(m.mobs, id)
}

// ClearDepth removes every mob at a depth.
func (m *Manager) ClearDepth(depth int) {
	for id := range m.depths[depth] {
		delete(m.mobs, id)
	}
	delete(m.depths, depth)
}
