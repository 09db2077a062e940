package resources

import (
	"math/rand"
	"time"

	"github.com/cbodonnell/descent/pkg/game/constants"
	"github.com/cbodonnell/descent/pkg/game/items"
	"github.com/cbodonnell/descent/pkg/kinematic"
)

// Resource type names.
const (
	TypeTree = "tree"
	TypeRock = "rock"
)

// Resource is a harvestable world node.
type Resource struct {
	ID            uint32
	Type          string
	Position      kinematic.Vector
	Depth         int
	Hp            int
	MaxHp         int
	IsHarvestable bool
	// RespawnAt is the unix millisecond deadline after which the
	// resource becomes harvestable again, or zero when harvestable.
	RespawnAt int64
	Drops     []items.Stack
}

// HitResult reports the outcome of a harvest hit.
type HitResult struct {
	Destroyed bool
	Hp        int
	MaxHp     int
	Drops     []items.Stack
}

// Manager owns all harvestable resources, grouped by depth. It is not
// safe for concurrent use; all calls must happen on the simulation
// goroutine.
type Manager struct {
	resources map[uint32]*Resource
	depths    map[int]map[uint32]struct{}
	nextID    uint32
	rng       *rand.Rand
	now       func() time.Time
}

// NewManager creates a resource manager. A nil rng uses a time-seeded
// source; a nil now uses time.Now. Tests inject both.
func NewManager(rng *rand.Rand, now func() time.Time) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &Manager{
		resources: make(map[uint32]*Resource),
		depths:    make(map[int]map[uint32]struct{}),
		nextID:    1,
		rng:       rng,
		now:       now,
	}
}

func maxHpForType(resourceType string) int {
	if resourceType == TypeTree {
		return constants.TreeHp
	}
	return constants.RockHp
}

// AddResource registers an existing resource, keeping the id counter
// ahead of loaded ids. Used when restoring persisted state.
func (m *Manager) AddResource(res *Resource) {
	m.resources[res.ID] = res
	if m.depths[res.Depth] == nil {
		m.depths[res.Depth] = make(map[uint32]struct{})
	}
	m.depths[res.Depth][res.ID] = struct{}{}
	if res.ID >= m.nextID {
		m.nextID = res.ID + 1
	}
}

// CreateResource creates a resource at a position, rolling its drops
// from the static drop table.
func (m *Manager) CreateResource(resourceType string, position kinematic.Vector, depth int) *Resource {
	maxHp := maxHpForType(resourceType)
	res := &Resource{
		ID:            m.nextID,
		Type:          resourceType,
		Position:      position,
		Depth:         depth,
		Hp:            maxHp,
		MaxHp:         maxHp,
		IsHarvestable: true,
		Drops:         items.Roll(m.rng, items.ResourceDropTable(resourceType)),
	}
	m.nextID++
	m.AddResource(res)
	return res
}

// depthPlan returns the resource counts for a depth: trees taper off
// with depth while rocks increase.
func depthPlan(depth int) map[string]int {
	plan := make(map[string]int)
	switch {
	case depth == 0:
		plan[TypeTree] = 15
		plan[TypeRock] = 10
	case depth <= 3:
		if trees := 10 - depth*3; trees > 0 {
			plan[TypeTree] = trees
		}
		plan[TypeRock] = 8 + depth*2
	default:
		plan[TypeRock] = 10 + depth
	}
	return plan
}

// InitializeWorld populates depths 0-6 with resources. Positions are
// sampled uniformly in a square, excluding the spawn area around the
// origin. Does nothing if resources already exist.
func (m *Manager) InitializeWorld() {
	if len(m.resources) > 0 {
		return
	}

	for depth := 0; depth <= 6; depth++ {
		for resourceType, count := range depthPlan(depth) {
			for i := 0; i < count; i++ {
				m.CreateResource(resourceType, m.samplePosition(), depth)
			}
		}
	}
}

func (m *Manager) samplePosition() kinematic.Vector {
	for {
		pos := kinematic.Vector{
			X: (m.rng.Float64() - 0.5) * constants.ResourceWorldSize,
			Z: (m.rng.Float64() - 0.5) * constants.ResourceWorldSize,
		}
		if pos.X > constants.ResourceExclusionZone || pos.X < -constants.ResourceExclusionZone ||
			pos.Z > constants.ResourceExclusionZone || pos.Z < -constants.ResourceExclusionZone {
			return pos
		}
	}
}

// GetResource returns a resource by id, or nil.
func (m *Manager) GetResource(id uint32) *Resource {
	return m.resources[id]
}

// GetResourcesForDepth returns all resources at a depth, harvestable
// or not.
func (m *Manager) GetResourcesForDepth(depth int) []*Resource {
	ids := m.depths[depth]
	resourcesAtDepth := make([]*Resource, 0, len(ids))
	for id := range ids {
		if res, ok := m.resources[id]; ok {
			resourcesAtDepth = append(resourcesAtDepth, res)
		}
	}
	return resourcesAtDepth
}

// All returns every resource.
func (m *Manager) All() []*Resource {
	all := make([]*Resource, 0, len(m.resources))
	for _, res := range m.resources {
		all = append(all, res)
	}
	return all
}

// Count returns the number of resources.
func (m *Manager) Count() int {
	return len(m.resources)
}

// HitResource applies harvest damage. It returns nil if the resource
// is absent or awaiting respawn. On a lethal hit the resource stops
// being harvestable, a respawn deadline is set, and the drops are
// returned exactly once for the attributed harvester.
func (m *Manager) HitResource(id uint32, damage int) *HitResult {
	res, ok := m.resources[id]
	if !ok || !res.IsHarvestable {
		return nil
	}

	res.Hp -= damage
	if res.Hp <= 0 {
		res.Hp = 0
		res.IsHarvestable = false
		res.RespawnAt = m.now().UnixMilli() + constants.ResourceRespawnDelayMs
		return &HitResult{Destroyed: true, Drops: res.Drops}
	}

	return &HitResult{Destroyed: false, Hp: res.Hp, MaxHp: res.MaxHp}
}

// Update restores resources whose respawn deadline has elapsed and
// reports whether anything changed, along with the affected depths.
// Called on a coarse timer rather than every tick.
func (m *Manager) Update() (bool, map[int]struct{}) {
	nowMs := m.now().UnixMilli()
	changed := false
	changedDepths := make(map[int]struct{})

	for _, res := range m.resources {
		if res.IsHarvestable || res.RespawnAt == 0 || nowMs < res.RespawnAt {
			continue
		}
		res.IsHarvestable = true
		res.Hp = res.MaxHp
		res.RespawnAt = 0
		changed = true
		changedDepths[res.Depth] = struct{}{}
	}

	return changed, changedDepths
}
