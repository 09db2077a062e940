package items

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoll_DeterministicUnderFixedSeed(t *testing.T) {
	table := MobDropTable("Goblin")

	first := Roll(rand.New(rand.NewSource(42)), table)
	second := Roll(rand.New(rand.NewSource(42)), table)

	assert.Equal(t, first, second)
}

func TestRoll_QuantityWithinRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	table := ResourceDropTable("tree")

	for i := 0; i < 100; i++ {
		drops := Roll(rng, table)
		require.Len(t, drops, 1)
		assert.Equal(t, TypeWood, drops[0].TypeID)
		assert.GreaterOrEqual(t, drops[0].Quantity, 3)
		assert.LessOrEqual(t, drops[0].Quantity, 5)
	}
}

func TestRoll_ChanceZeroNeverDrops(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	table := []DropEntry{{TypeID: TypeLeather, Chance: 0, MinQuantity: 1, MaxQuantity: 1}}

	for i := 0; i < 100; i++ {
		assert.Empty(t, Roll(rng, table))
	}
}

func TestMobDropTable_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, defaultMobDrops, MobDropTable("Ancient"))
}
