package buildings

import (
	"math"
	"testing"
	"time"

	"github.com/cbodonnell/descent/pkg/game/items"
	"github.com/cbodonnell/descent/pkg/kinematic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNow() time.Time {
	return time.UnixMilli(5_000_000)
}

func TestAddBuilding(t *testing.T) {
	r := NewRegistry(testNow)

	building := r.AddBuilding(PlacementSpec{
		Type:     "wall",
		Position: kinematic.Vector{X: 3, Z: 4},
		Rotation: 1.6,
	}, 0, "owner-1")

	require.NotNil(t, building)
	assert.Equal(t, uint32(1), building.ID)
	assert.Equal(t, 0, building.Depth)
	assert.Equal(t, "owner-1", building.OwnerID)
	// Rotation snaps to the nearest quarter turn.
	assert.InDelta(t, math.Pi/2, building.Rotation, 1e-9)
	assert.Equal(t, testNow().UnixMilli(), building.CreatedAt)
}

func TestAddBuilding_RejectsOverlap(t *testing.T) {
	r := NewRegistry(testNow)

	first := r.AddBuilding(PlacementSpec{Type: "wall", Position: kinematic.Vector{}}, 0, "a")
	require.NotNil(t, first)

	// Two 2-unit-wide walls centered 1 unit apart overlap.
	assert.Nil(t, r.AddBuilding(PlacementSpec{Type: "wall", Position: kinematic.Vector{X: 1}}, 0, "b"))

	// The same position on another depth is fine.
	assert.NotNil(t, r.AddBuilding(PlacementSpec{Type: "wall", Position: kinematic.Vector{X: 1}}, 1, "b"))

	// Far enough apart on the same depth is fine.
	assert.NotNil(t, r.AddBuilding(PlacementSpec{Type: "wall", Position: kinematic.Vector{X: 5}}, 0, "b"))
}

func TestAddBuilding_UnknownType(t *testing.T) {
	r := NewRegistry(testNow)
	assert.Nil(t, r.AddBuilding(PlacementSpec{Type: "castle"}, 0, "a"))
}

func TestRemoveBuilding_OwnerGated(t *testing.T) {
	r := NewRegistry(testNow)
	building := r.AddBuilding(PlacementSpec{Type: "bed", Position: kinematic.Vector{X: 10}}, 0, "owner-1")
	require.NotNil(t, building)

	assert.False(t, r.RemoveBuilding(building.ID, "intruder"))
	assert.NotNil(t, r.GetBuilding(building.ID))

	assert.True(t, r.RemoveBuilding(building.ID, "owner-1"))
	assert.Nil(t, r.GetBuilding(building.ID))
	assert.Empty(t, r.GetBuildingsForDepth(0))

	assert.False(t, r.RemoveBuilding(building.ID, "owner-1"))
}

func TestUpdateContents_NoOwnershipGate(t *testing.T) {
	r := NewRegistry(testNow)
	chest := r.AddBuilding(PlacementSpec{Type: "chest_small", Position: kinematic.Vector{X: 10}}, 0, "owner-1")
	require.NotNil(t, chest)

	contents := []items.Stack{{TypeID: items.TypeWood, Quantity: 5}}
	assert.True(t, r.UpdateContents(chest.ID, contents))
	assert.Equal(t, contents, r.GetBuilding(chest.ID).Contents)

	assert.False(t, r.UpdateContents(999, contents))
}

func TestAddExisting_AdvancesIDCounter(t *testing.T) {
	r := NewRegistry(testNow)
	r.AddExisting(&Building{ID: 7, Type: "wall", Position: kinematic.Vector{X: 20}, Depth: 2, OwnerID: "a"})

	require.Len(t, r.GetBuildingsForDepth(2), 1)

	next := r.AddBuilding(PlacementSpec{Type: "wall", Position: kinematic.Vector{X: -20}}, 2, "b")
	require.NotNil(t, next)
	assert.Equal(t, uint32(8), next.ID)
}
