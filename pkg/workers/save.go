package workers

import (
	"context"

	"github.com/cbodonnell/descent/pkg/log"
	"github.com/cbodonnell/descent/pkg/repositories"
	"github.com/cbodonnell/descent/pkg/repositories/models"
)

// SaveRequest is a persistence request from the game loop. The game
// loop never blocks on storage; requests are handed off through a
// buffered channel and written here.
type SaveRequest interface{}

// SaveUserRequest persists a full user record.
type SaveUserRequest struct {
	User *models.User
}

// SaveProgressRequest merges a player's level and xp onto their stored
// user record. The read happens here, off the game loop.
type SaveProgressRequest struct {
	Username string
	Level    int
	Xp       int
}

// SaveBuildingsRequest replaces the persisted building set.
type SaveBuildingsRequest struct {
	Buildings []models.Building
}

// SaveResourcesRequest replaces the persisted resource set.
type SaveResourcesRequest struct {
	Resources []models.Resource
}

type SaveWorker struct {
	repository      repositories.Repository
	saveRequestChan <-chan SaveRequest
}

type NewSaveWorkerOptions struct {
	Repository      repositories.Repository
	SaveRequestChan <-chan SaveRequest
}

// NewSaveWorker creates a new SaveWorker.
// The worker processes save requests from the game loop and writes
// them to the repository.
func NewSaveWorker(opts NewSaveWorkerOptions) *SaveWorker {
	return &SaveWorker{
		repository:      opts.Repository,
		saveRequestChan: opts.SaveRequestChan,
	}
}

func (w *SaveWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case saveRequest := <-w.saveRequestChan:
			w.handleSaveRequest(ctx, saveRequest)
		}
	}
}

func (w *SaveWorker) handleSaveRequest(ctx context.Context, saveRequest SaveRequest) {
	switch request := saveRequest.(type) {
	case SaveUserRequest:
		if err := w.repository.SaveUser(ctx, request.User); err != nil {
			log.Error("Failed to save user %s: %v", request.User.Username, err)
		}
	case SaveProgressRequest:
		user, err := w.repository.GetUser(ctx, request.Username)
		if err != nil {
			log.Error("Failed to get user %s for save: %v", request.Username, err)
			return
		}
		user.Level = request.Level
		user.Xp = request.Xp
		if err := w.repository.SaveUser(ctx, user); err != nil {
			log.Error("Failed to save user %s: %v", request.Username, err)
		}
	case SaveBuildingsRequest:
		if err := w.repository.SaveBuildings(ctx, request.Buildings); err != nil {
			log.Error("Failed to save buildings: %v", err)
		}
	case SaveResourcesRequest:
		if err := w.repository.SaveResources(ctx, request.Resources); err != nil {
			log.Error("Failed to save resources: %v", err)
		}
	default:
		log.Error("Unknown save request type: %T", saveRequest)
	}
}
