package game

import (
	"github.com/cbodonnell/descent/pkg/game/buildings"
	"github.com/cbodonnell/descent/pkg/game/items"
	"github.com/cbodonnell/descent/pkg/game/mobs"
	"github.com/cbodonnell/descent/pkg/game/resources"
	"github.com/cbodonnell/descent/pkg/game/types"
	"github.com/cbodonnell/descent/pkg/kinematic"
	"github.com/cbodonnell/descent/pkg/messages"
	"github.com/cbodonnell/descent/pkg/repositories/models"
)

// PlayerViewFromState converts a player state to its client view.
func PlayerViewFromState(player *types.PlayerState) messages.PlayerView {
	return messages.PlayerView{
		ID:       player.ID,
		Name:     player.Name,
		Color:    player.Color,
		Level:    player.Level,
		X:        player.Position.X,
		Z:        player.Position.Z,
		Rotation: player.Rotation,
		Depth:    player.Depth,
		Hp:       player.Hp,
		MaxHp:    player.MaxHp,
	}
}

// MobViewFromMob converts a mob to its client view.
func MobViewFromMob(mob *mobs.Mob) messages.MobView {
	return messages.MobView{
		ID:       mob.ID,
		X:        mob.Position.X,
		Z:        mob.Position.Z,
		Rotation: mob.Rotation,
		Hp:       mob.Hp,
		MaxHp:    mob.MaxHp,
		State:    string(mob.State),
		Type: messages.MobTypeView{
			Name:     mob.Type.Name,
			Color:    mob.Type.Color,
			Shape:    mob.Type.Shape,
			MinDepth: mob.Type.MinDepth,
		},
		Level: mob.Level,
	}
}

// MobViewsForDepth converts all mobs at a depth to client views.
func MobViewsForDepth(mobManager *mobs.Manager, depth int) []messages.MobView {
	mobsAtDepth := mobManager.GetMobsForDepth(depth)
	views := make([]messages.MobView, 0, len(mobsAtDepth))
	for _, mob := range mobsAtDepth {
		views = append(views, MobViewFromMob(mob))
	}
	return views
}

// ResourceViewFromResource converts a resource to its client view.
func ResourceViewFromResource(res *resources.Resource) messages.ResourceView {
	return messages.ResourceView{
		ID:            res.ID,
		Type:          res.Type,
		X:             res.Position.X,
		Z:             res.Position.Z,
		Depth:         res.Depth,
		Hp:            res.Hp,
		MaxHp:         res.MaxHp,
		IsHarvestable: res.IsHarvestable,
	}
}

// ResourceViewsForDepth converts all resources at a depth to client views.
func ResourceViewsForDepth(resourceManager *resources.Manager, depth int) []messages.ResourceView {
	resourcesAtDepth := resourceManager.GetResourcesForDepth(depth)
	views := make([]messages.ResourceView, 0, len(resourcesAtDepth))
	for _, res := range resourcesAtDepth {
		views = append(views, ResourceViewFromResource(res))
	}
	return views
}

// BuildingViewFromBuilding converts a building to its client view.
func BuildingViewFromBuilding(building *buildings.Building) messages.BuildingView {
	return messages.BuildingView{
		ID:       building.ID,
		Type:     building.Type,
		X:        building.Position.X,
		Z:        building.Position.Z,
		Rotation: building.Rotation,
		Depth:    building.Depth,
		OwnerID:  building.OwnerID,
		Contents: StacksToMessages(building.Contents),
	}
}

// BuildingViewsForDepth converts all buildings at a depth to client views.
func BuildingViewsForDepth(registry *buildings.Registry, depth int) []messages.BuildingView {
	buildingsAtDepth := registry.GetBuildingsForDepth(depth)
	views := make([]messages.BuildingView, 0, len(buildingsAtDepth))
	for _, building := range buildingsAtDepth {
		views = append(views, BuildingViewFromBuilding(building))
	}
	return views
}

// StacksToMessages converts item stacks to their wire form.
func StacksToMessages(stacks []items.Stack) []messages.ItemStack {
	if stacks == nil {
		return nil
	}
	converted := make([]messages.ItemStack, 0, len(stacks))
	for _, stack := range stacks {
		converted = append(converted, messages.ItemStack{TypeID: stack.TypeID, Quantity: stack.Quantity})
	}
	return converted
}

// StacksFromMessages converts wire item stacks to domain stacks.
func StacksFromMessages(stacks []messages.ItemStack) []items.Stack {
	if stacks == nil {
		return nil
	}
	converted := make([]items.Stack, 0, len(stacks))
	for _, stack := range stacks {
		converted = append(converted, items.Stack{TypeID: stack.TypeID, Quantity: stack.Quantity})
	}
	return converted
}

func stacksToModels(stacks []items.Stack) []models.ItemStack {
	if stacks == nil {
		return nil
	}
	converted := make([]models.ItemStack, 0, len(stacks))
	for _, stack := range stacks {
		converted = append(converted, models.ItemStack{TypeID: stack.TypeID, Quantity: stack.Quantity})
	}
	return converted
}

func stacksFromModels(stacks []models.ItemStack) []items.Stack {
	if stacks == nil {
		return nil
	}
	converted := make([]items.Stack, 0, len(stacks))
	for _, stack := range stacks {
		converted = append(converted, items.Stack{TypeID: stack.TypeID, Quantity: stack.Quantity})
	}
	return converted
}

// BuildingFromModel converts a persisted building to its domain form.
func BuildingFromModel(model models.Building) *buildings.Building {
	return &buildings.Building{
		ID:        model.ID,
		Type:      model.Type,
		Position:  kinematic.Vector{X: model.X, Z: model.Z},
		Rotation:  model.Rotation,
		Depth:     model.Depth,
		OwnerID:   model.OwnerID,
		Contents:  stacksFromModels(model.Contents),
		CreatedAt: model.CreatedAt,
	}
}

// BuildingModels snapshots the building registry for persistence.
func BuildingModels(registry *buildings.Registry) []models.Building {
	all := registry.All()
	converted := make([]models.Building, 0, len(all))
	for _, building := range all {
		converted = append(converted, models.Building{
			ID:        building.ID,
			Type:      building.Type,
			X:         building.Position.X,
			Z:         building.Position.Z,
			Rotation:  building.Rotation,
			Depth:     building.Depth,
			OwnerID:   building.OwnerID,
			Contents:  stacksToModels(building.Contents),
			CreatedAt: building.CreatedAt,
		})
	}
	return converted
}

// ResourceFromModel converts a persisted resource to its domain form.
func ResourceFromModel(model models.Resource) *resources.Resource {
	return &resources.Resource{
		ID:            model.ID,
		Type:          model.Type,
		Position:      kinematic.Vector{X: model.X, Z: model.Z},
		Depth:         model.Depth,
		Hp:            model.Hp,
		MaxHp:         model.MaxHp,
		IsHarvestable: model.IsHarvestable,
		RespawnAt:     model.RespawnAt,
		Drops:         stacksFromModels(model.Drops),
	}
}

// ResourceModels snapshots the resource manager for persistence.
func ResourceModels(resourceManager *resources.Manager) []models.Resource {
	all := resourceManager.All()
	converted := make([]models.Resource, 0, len(all))
	for _, res := range all {
		converted = append(converted, models.Resource{
			ID:            res.ID,
			Type:          res.Type,
			X:             res.Position.X,
			Z:             res.Position.Z,
			Depth:         res.Depth,
			Hp:            res.Hp,
			MaxHp:         res.MaxHp,
			IsHarvestable: res.IsHarvestable,
			RespawnAt:     res.RespawnAt,
			Drops:         stacksToModels(res.Drops),
		})
	}
	return converted
}
