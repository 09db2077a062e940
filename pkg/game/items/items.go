package items

import "math/rand"

// Item type ids shared with clients.
const (
	TypeWood    = "wood"
	TypeStone   = "stone"
	TypeMeat    = "meat"
	TypeLeather = "leather"
)

// Stack is a dropped item type and quantity.
type Stack struct {
	TypeID   string `json:"typeId"`
	Quantity int    `json:"quantity"`
}

// DropEntry is one row of a drop table. Each entry is rolled
// independently: it is included with probability Chance, with a
// quantity drawn uniformly from [MinQuantity, MaxQuantity].
type DropEntry struct {
	TypeID      string
	Chance      float64
	MinQuantity int
	MaxQuantity int
}

// mobDropTables maps mob type names to their drop tables. Types
// without an entry use defaultMobDrops.
var mobDropTables = map[string][]DropEntry{
	"Slime": {
		{TypeID: TypeMeat, Chance: 0.6, MinQuantity: 1, MaxQuantity: 1},
	},
	"Goblin": {
		{TypeID: TypeMeat, Chance: 0.8, MinQuantity: 1, MaxQuantity: 2},
		{TypeID: TypeLeather, Chance: 0.3, MinQuantity: 1, MaxQuantity: 1},
	},
}

var defaultMobDrops = []DropEntry{
	{TypeID: TypeMeat, Chance: 0.8, MinQuantity: 1, MaxQuantity: 2},
	{TypeID: TypeLeather, Chance: 0.4, MinQuantity: 1, MaxQuantity: 2},
}

// resourceDropTables maps resource types to their drop tables.
var resourceDropTables = map[string][]DropEntry{
	"tree": {
		{TypeID: TypeWood, Chance: 1.0, MinQuantity: 3, MaxQuantity: 5},
	},
	"rock": {
		{TypeID: TypeStone, Chance: 1.0, MinQuantity: 2, MaxQuantity: 4},
	},
}

// MobDropTable returns the drop table for a mob type name.
func MobDropTable(mobType string) []DropEntry {
	if table, ok := mobDropTables[mobType]; ok {
		return table
	}
	return defaultMobDrops
}

// ResourceDropTable returns the drop table for a resource type.
func ResourceDropTable(resourceType string) []DropEntry {
	return resourceDropTables[resourceType]
}

// Roll generates drops from a table using the supplied RNG. The RNG is
// injected so drop generation is reproducible under a fixed seed.
func Roll(rng *rand.Rand, table []DropEntry) []Stack {
	var drops []Stack
	for _, entry := range table {
		if rng.Float64() >= entry.Chance {
			continue
		}
		quantity := entry.MinQuantity
		if entry.MaxQuantity > entry.MinQuantity {
			quantity += rng.Intn(entry.MaxQuantity - entry.MinQuantity + 1)
		}
		drops = append(drops, Stack{TypeID: entry.TypeID, Quantity: quantity})
	}
	return drops
}
