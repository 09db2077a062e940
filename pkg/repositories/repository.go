package repositories

import (
	"context"

	"github.com/cbodonnell/descent/pkg/repositories/models"
)

// Repository persists users, buildings and resources. Buildings and
// resources follow the full-rewrite contract: the stored list is
// replaced wholesale on every save.
type Repository interface {
	Close(ctx context.Context) error

	GetUser(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	SaveUser(ctx context.Context, user *models.User) error
	CountUsers(ctx context.Context) (int, error)

	ListBuildings(ctx context.Context) ([]models.Building, error)
	SaveBuildings(ctx context.Context, buildings []models.Building) error

	ListResources(ctx context.Context) ([]models.Resource, error)
	SaveResources(ctx context.Context, resources []models.Resource) error
}
