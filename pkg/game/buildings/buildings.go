package buildings

import (
	"math"
	"time"

	"github.com/cbodonnell/descent/pkg/game/items"
	"github.com/cbodonnell/descent/pkg/kinematic"
)

// Type describes a placeable structure's footprint on the ground
// plane and whether it blocks movement or stores items.
type Type struct {
	ID        string
	Width     float64
	Depth     float64
	Height    float64
	Collision bool
	Storage   bool
}

// Types maps type ids to their definitions.
var Types = map[string]Type{
	"wall":           {ID: "wall", Width: 2, Depth: 0.2, Height: 2, Collision: true},
	"floor":          {ID: "floor", Width: 4, Depth: 4, Height: 0.1},
	"door":           {ID: "door", Width: 1, Depth: 0.2, Height: 2},
	"chest_small":    {ID: "chest_small", Width: 0.8, Depth: 0.5, Height: 0.6, Collision: true, Storage: true},
	"chest_large":    {ID: "chest_large", Width: 1.2, Depth: 0.6, Height: 0.8, Collision: true, Storage: true},
	"crafting_table": {ID: "crafting_table", Width: 1, Depth: 1, Height: 0.9, Collision: true},
	"bed":            {ID: "bed", Width: 1, Depth: 2, Height: 0.5, Collision: true},
}

// Building is a placed structure.
type Building struct {
	ID        uint32
	Type      string
	Position  kinematic.Vector
	Rotation  float64
	Depth     int
	OwnerID   string
	Contents  []items.Stack
	CreatedAt int64
}

// PlacementSpec is a client's request to place a building.
type PlacementSpec struct {
	Type     string
	Position kinematic.Vector
	Rotation float64
	Contents []items.Stack
}

// Registry owns all placed buildings, grouped by depth. It is not
// safe for concurrent use; all calls must happen on the simulation
// goroutine.
type Registry struct {
	buildings map[uint32]*Building
	depths    map[int]map[uint32]struct{}
	nextID    uint32
	now       func() time.Time
}

// NewRegistry creates a building registry. A nil now uses time.Now.
func NewRegistry(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		buildings: make(map[uint32]*Building),
		depths:    make(map[int]map[uint32]struct{}),
		nextID:    1,
		now:       now,
	}
}

// AddExisting registers a persisted building, keeping the id counter
// ahead of loaded ids.
func (r *Registry) AddExisting(b *Building) {
	r.buildings[b.ID] = b
	if r.depths[b.Depth] == nil {
		r.depths[b.Depth] = make(map[uint32]struct{})
	}
	r.depths[b.Depth][b.ID] = struct{}{}
	if b.ID >= r.nextID {
		r.nextID = b.ID + 1
	}
}

// quantizeRotation snaps a rotation to the nearest quarter turn.
func quantizeRotation(rotation float64) float64 {
	quarter := math.Pi / 2
	return math.Round(rotation/quarter) * quarter
}

// overlaps reports whether two axis-aligned footprints centered at the
// given positions overlap.
func overlaps(aPos kinematic.Vector, aType Type, bPos kinematic.Vector, bType Type) bool {
	dx := math.Abs(aPos.X - bPos.X)
	dz := math.Abs(aPos.Z - bPos.Z)
	return dx < (aType.Width+bType.Width)/2 && dz < (aType.Depth+bType.Depth)/2
}

// CanPlace reports whether a footprint fits at a position without
// overlapping any same-depth building.
func (r *Registry) CanPlace(spec PlacementSpec, depth int) bool {
	buildingType, ok := Types[spec.Type]
	if !ok {
		return false
	}

	for id := range r.depths[depth] {
		existing := r.buildings[id]
		existingType, ok := Types[existing.Type]
		if !ok {
			continue
		}
		if overlaps(spec.Position, buildingType, existing.Position, existingType) {
			return false
		}
	}
	return true
}

// AddBuilding validates and places a building, returning the canonical
// record for broadcast, or nil if the placement is refused.
func (r *Registry) AddBuilding(spec PlacementSpec, depth int, ownerID string) *Building {
	if !r.CanPlace(spec, depth) {
		return nil
	}

	building := &Building{
		ID:        r.nextID,
		Type:      spec.Type,
		Position:  spec.Position,
		Rotation:  quantizeRotation(spec.Rotation),
		Depth:     depth,
		OwnerID:   ownerID,
		Contents:  spec.Contents,
		CreatedAt: r.now().UnixMilli(),
	}
	r.nextID++

	r.buildings[building.ID] = building
	if r.depths[depth] == nil {
		r.depths[depth] = make(map[uint32]struct{})
	}
	r.depths[depth][building.ID] = struct{}{}

	return building
}

// GetBuilding returns a building by id, or nil.
func (r *Registry) GetBuilding(id uint32) *Building {
	return r.buildings[id]
}

// GetBuildingsForDepth returns all buildings at a depth.
func (r *Registry) GetBuildingsForDepth(depth int) []*Building {
	ids := r.depths[depth]
	buildingsAtDepth := make([]*Building, 0, len(ids))
	for id := range ids {
		if b, ok := r.buildings[id]; ok {
			buildingsAtDepth = append(buildingsAtDepth, b)
		}
	}
	return buildingsAtDepth
}

// All returns every building.
func (r *Registry) All() []*Building {
	all := make([]*Building, 0, len(r.buildings))
	for _, b := range r.buildings {
		all = append(all, b)
	}
	return all
}

// RemoveBuilding removes a building if the requester is its owner.
// Non-owners and unknown ids are refused silently.
func (r *Registry) RemoveBuilding(id uint32, requesterID string) bool {
	building, ok := r.buildings[id]
	if !ok || building.OwnerID != requesterID {
		return false
	}

	if depthSet, ok := r.depths[building.Depth]; ok {
		delete(depthSet, id)
	}
	delete(r.buildings, id)
	return true
}

// UpdateContents replaces a building's stored items. Any co-depth
// occupant may mutate shared storage; there is no ownership gate.
func (r *Registry) UpdateContents(id uint32, contents []items.Stack) bool {
	building, ok := r.buildings[id]
	if !ok {
		return false
	}

	building.Contents = contents
	return true
}
