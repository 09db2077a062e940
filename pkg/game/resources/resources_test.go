package resources

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/cbodonnell/descent/pkg/game/constants"
	"github.com/cbodonnell/descent/pkg/kinematic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestManager(clock *fakeClock) *Manager {
	return NewManager(rand.New(rand.NewSource(1)), clock.Now)
}

func TestHitResource_DestroyAndRespawn(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_000_000)}
	m := newTestManager(clock)
	res := m.CreateResource(TypeTree, kinematic.Vector{X: 20, Z: 20}, 0)
	require.Equal(t, 50, res.MaxHp)

	result := m.HitResource(res.ID, 60)
	require.NotNil(t, result)
	assert.True(t, result.Destroyed)
	assert.NotEmpty(t, result.Drops)
	assert.False(t, res.IsHarvestable)
	assert.Equal(t, clock.Now().UnixMilli()+30000, res.RespawnAt)

	// Hitting a destroyed resource is a no-op: drops are paid out once.
	assert.Nil(t, m.HitResource(res.ID, 10))

	// Before the deadline nothing changes.
	clock.Advance(29 * time.Second)
	changed, _ := m.Update()
	assert.False(t, changed)
	assert.False(t, res.IsHarvestable)

	// At the deadline the resource restores to full hp, exactly once.
	clock.Advance(1 * time.Second)
	changed, depths := m.Update()
	assert.True(t, changed)
	assert.True(t, res.IsHarvestable)
	assert.Equal(t, 50, res.Hp)
	assert.Contains(t, depths, 0)

	changed, _ = m.Update()
	assert.False(t, changed)
}

func TestHitResource_NonLethal(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_000_000)}
	m := newTestManager(clock)
	res := m.CreateResource(TypeRock, kinematic.Vector{X: -15, Z: 15}, 1)

	result := m.HitResource(res.ID, 30)
	require.NotNil(t, result)
	assert.False(t, result.Destroyed)
	assert.Equal(t, 50, result.Hp)
	assert.Equal(t, 80, result.MaxHp)
	assert.Empty(t, result.Drops)
}

func TestHitResource_UnknownID(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_000_000)}
	m := newTestManager(clock)
	assert.Nil(t, m.HitResource(404, 10))
}

func TestInitializeWorld_Counts(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_000_000)}
	m := newTestManager(clock)
	m.InitializeWorld()

	countByType := func(depth int, resourceType string) int {
		count := 0
		for _, res := range m.GetResourcesForDepth(depth) {
			if res.Type == resourceType {
				count++
			}
		}
		return count
	}

	assert.Equal(t, 15, countByType(0, TypeTree))
	assert.Equal(t, 10, countByType(0, TypeRock))

	// Trees taper to zero by depth 4; rocks increase with depth.
	assert.Equal(t, 7, countByType(1, TypeTree))
	assert.Equal(t, 1, countByType(3, TypeTree))
	assert.Equal(t, 0, countByType(4, TypeTree))
	assert.Equal(t, 10, countByType(1, TypeRock))
	assert.Equal(t, 14, countByType(3, TypeRock))
	assert.Equal(t, 16, countByType(6, TypeRock))
}

func TestInitializeWorld_Idempotent(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_000_000)}
	m := newTestManager(clock)
	m.InitializeWorld()
	count := m.Count()
	m.InitializeWorld()
	assert.Equal(t, count, m.Count())
}

func TestInitializeWorld_AvoidsSpawnArea(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_000_000)}
	m := newTestManager(clock)
	m.InitializeWorld()

	for _, res := range m.All() {
		inside := math.Abs(res.Position.X) <= constants.ResourceExclusionZone &&
			math.Abs(res.Position.Z) <= constants.ResourceExclusionZone
		assert.False(t, inside, "resource %d at %+v is inside the spawn area", res.ID, res.Position)
	}
}

func TestAddResource_AdvancesIDCounter(t *testing.T) {
	clock := &fakeClock{now: time.UnixMilli(1_000_000)}
	m := newTestManager(clock)
	m.AddResource(&Resource{ID: 41, Type: TypeTree, Depth: 0, Hp: 50, MaxHp: 50, IsHarvestable: true})

	res := m.CreateResource(TypeRock, kinematic.Vector{X: 20, Z: 20}, 0)
	assert.Equal(t, uint32(42), res.ID)
}
