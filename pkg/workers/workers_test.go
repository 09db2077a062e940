package workers

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cbodonnell/descent/pkg/game/types"
	"github.com/cbodonnell/descent/pkg/messages"
	"github.com/cbodonnell/descent/pkg/network"
	"github.com/cbodonnell/descent/pkg/queue"
	"github.com/cbodonnell/descent/pkg/repositories"
	"github.com/cbodonnell/descent/pkg/repositories/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopMessenger struct{}

func (nopMessenger) WriteMessage(*messages.Message) error { return nil }

func TestClientEventWorker_TranslatesEvents(t *testing.T) {
	clientManager := network.NewClientManager()
	connectionEventQueue := queue.NewInMemoryQueue(100)

	worker := NewClientEventWorker(NewClientEventWorkerOptions{
		ClientManager:        clientManager,
		ConnectionEventQueue: connectionEventQueue,
	})
	go worker.Start()

	clientID := clientManager.ConnectClient(nopMessenger{})
	clientManager.DisconnectClient(clientID)

	require.Eventually(t, func() bool {
		return connectionEventQueue.Size() == 2
	}, time.Second, 10*time.Millisecond)

	events, err := connectionEventQueue.ReadAllMessages()
	require.NoError(t, err)
	require.Len(t, events, 2)

	connect, ok := events[0].(*types.ConnectClientEvent)
	require.True(t, ok)
	assert.Equal(t, clientID, connect.ClientID)

	disconnect, ok := events[1].(*types.DisconnectClientEvent)
	require.True(t, ok)
	assert.Equal(t, clientID, disconnect.ClientID)
}

type recordingRepository struct {
	mu        sync.Mutex
	stored    map[string]*models.User
	users     []*models.User
	buildings [][]models.Building
	resources [][]models.Resource
}

func (r *recordingRepository) Close(ctx context.Context) error { return nil }

func (r *recordingRepository) GetUser(ctx context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.stored[username]; ok {
		return user, nil
	}
	return nil, &repositories.ErrNotFound{}
}

func (r *recordingRepository) CreateUser(ctx context.Context, user *models.User) error { return nil }

func (r *recordingRepository) SaveUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, user)
	return nil
}

func (r *recordingRepository) CountUsers(ctx context.Context) (int, error) { return 0, nil }

func (r *recordingRepository) ListBuildings(ctx context.Context) ([]models.Building, error) {
	return nil, nil
}

func (r *recordingRepository) SaveBuildings(ctx context.Context, buildings []models.Building) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buildings = append(r.buildings, buildings)
	return nil
}

func (r *recordingRepository) ListResources(ctx context.Context) ([]models.Resource, error) {
	return nil, nil
}

func (r *recordingRepository) SaveResources(ctx context.Context, resources []models.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources = append(r.resources, resources)
	return nil
}

func (r *recordingRepository) counts() (int, int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users), len(r.buildings), len(r.resources)
}

func TestSaveWorker_WritesRequests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repository := &recordingRepository{}
	saveRequestChan := make(chan SaveRequest, 10)

	worker := NewSaveWorker(NewSaveWorkerOptions{
		Repository:      repository,
		SaveRequestChan: saveRequestChan,
	})
	go worker.Start(ctx)

	saveRequestChan <- SaveUserRequest{User: &models.User{Username: "ada"}}
	saveRequestChan <- SaveBuildingsRequest{Buildings: []models.Building{{ID: 1, Type: "wall"}}}
	saveRequestChan <- SaveResourcesRequest{Resources: []models.Resource{{ID: 1, Type: "tree"}}}

	require.Eventually(t, func() bool {
		users, buildings, resources := repository.counts()
		return users == 1 && buildings == 1 && resources == 1
	}, time.Second, 10*time.Millisecond)

	assert.Equal(t, "ada", repository.users[0].Username)
}

func TestSaveWorker_MergesProgressOntoStoredUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repository := &recordingRepository{stored: map[string]*models.User{
		"ada": {Username: "ada", DisplayName: "Ada", PasswordHash: "$2a$10$fake", Level: 1, Color: 0x00d4ff},
	}}
	saveRequestChan := make(chan SaveRequest, 10)

	worker := NewSaveWorker(NewSaveWorkerOptions{
		Repository:      repository,
		SaveRequestChan: saveRequestChan,
	})
	go worker.Start(ctx)

	saveRequestChan <- SaveProgressRequest{Username: "ada", Level: 3, Xp: 250}

	require.Eventually(t, func() bool {
		users, _, _ := repository.counts()
		return users == 1
	}, time.Second, 10*time.Millisecond)

	saved := repository.users[0]
	assert.Equal(t, 3, saved.Level)
	assert.Equal(t, 250, saved.Xp)
	// Fields the game loop does not own are carried over unchanged.
	assert.Equal(t, "$2a$10$fake", saved.PasswordHash)
	assert.Equal(t, 0x00d4ff, saved.Color)

	// Progress for an unknown user is dropped; the follow-up request
	// proves the worker kept going.
	saveRequestChan <- SaveProgressRequest{Username: "ghost", Level: 2, Xp: 10}
	saveRequestChan <- SaveUserRequest{User: &models.User{Username: "bob"}}

	require.Eventually(t, func() bool {
		users, _, _ := repository.counts()
		return users == 2
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "bob", repository.users[1].Username)
}
