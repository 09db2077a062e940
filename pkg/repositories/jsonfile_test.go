package repositories

import (
	"context"
	"testing"

	"github.com/cbodonnell/descent/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFileRepository_Users(t *testing.T) {
	ctx := context.Background()
	repo, err := NewJSONFileRepository(t.TempDir())
	require.NoError(t, err)

	_, err = repo.GetUser(ctx, "nobody")
	assert.True(t, IsNotFound(err))

	user := &models.User{
		Username:     "miner",
		PasswordHash: "$2a$10$fake",
		DisplayName:  "miner",
		Level:        1,
		Color:        0x00d4ff,
		CreatedAt:    1000,
	}
	require.NoError(t, repo.CreateUser(ctx, user))
	assert.True(t, IsAlreadyExists(repo.CreateUser(ctx, user)))

	count, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	user.Level = 3
	user.Xp = 250
	require.NoError(t, repo.SaveUser(ctx, user))

	got, err := repo.GetUser(ctx, "miner")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Level)
	assert.Equal(t, 250, got.Xp)

	assert.True(t, IsNotFound(repo.SaveUser(ctx, &models.User{Username: "ghost"})))
}

func TestJSONFileRepository_FullRewrite(t *testing.T) {
	ctx := context.Background()
	repo, err := NewJSONFileRepository(t.TempDir())
	require.NoError(t, err)

	buildings, err := repo.ListBuildings(ctx)
	require.NoError(t, err)
	assert.Empty(t, buildings)

	first := []models.Building{
		{ID: 1, Type: "wall", X: 2, Z: 3, Depth: 0, OwnerID: "a"},
		{ID: 2, Type: "chest_small", X: 5, Z: 5, Depth: 1, OwnerID: "b",
			Contents: []models.ItemStack{{TypeID: "wood", Quantity: 4}}},
	}
	require.NoError(t, repo.SaveBuildings(ctx, first))

	// A later save replaces the stored list wholesale.
	require.NoError(t, repo.SaveBuildings(ctx, first[:1]))

	buildings, err = repo.ListBuildings(ctx)
	require.NoError(t, err)
	require.Len(t, buildings, 1)
	assert.Equal(t, uint32(1), buildings[0].ID)

	resources := []models.Resource{
		{ID: 1, Type: "tree", X: 10, Z: -10, Depth: 0, Hp: 50, MaxHp: 50,
			IsHarvestable: true, Drops: []models.ItemStack{{TypeID: "wood", Quantity: 3}}},
	}
	require.NoError(t, repo.SaveResources(ctx, resources))

	got, err := repo.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "tree", got[0].Type)
	assert.True(t, got[0].IsHarvestable)
}
