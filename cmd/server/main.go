package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/cbodonnell/descent/pkg/auth"
	"github.com/cbodonnell/descent/pkg/config"
	"github.com/cbodonnell/descent/pkg/game"
	"github.com/cbodonnell/descent/pkg/game/buildings"
	"github.com/cbodonnell/descent/pkg/game/mobs"
	"github.com/cbodonnell/descent/pkg/game/resources"
	"github.com/cbodonnell/descent/pkg/game/types"
	"github.com/cbodonnell/descent/pkg/log"
	"github.com/cbodonnell/descent/pkg/network"
	"github.com/cbodonnell/descent/pkg/queue"
	"github.com/cbodonnell/descent/pkg/repositories"
	"github.com/cbodonnell/descent/pkg/version"
	"github.com/cbodonnell/descent/pkg/workers"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	logLevel := flag.String("log-level", "", "Log level override")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			panic(fmt.Sprintf("Failed to load config: %v", err))
		}
		cfg = loaded
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	parsedLogLevel, err := log.ParseLogLevel(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse log level: %v", err))
	}

	logger := log.New(os.Stdout, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting server version %s", version.Get())
	ctx := context.Background()

	repository, err := newRepository(ctx, cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to create repository: %v", err))
	}
	defer repository.Close(ctx)

	gameState := types.NewGameState()
	mobManager := mobs.NewManager(nil)
	resourceManager := resources.NewManager(nil, nil)
	buildingRegistry := buildings.NewRegistry(nil)

	if err := loadWorld(ctx, repository, resourceManager, buildingRegistry); err != nil {
		panic(fmt.Sprintf("Failed to load world: %v", err))
	}

	clientManager := network.NewClientManager()
	clientMessageQueue := queue.NewInMemoryQueue(10000)
	connectionEventQueue := queue.NewInMemoryQueue(1000)

	wsServer := network.NewWSServer(network.NewWSServerOptions{
		Port:          cfg.Server.WSPort,
		ClientManager: clientManager,
		MessageQueue:  clientMessageQueue,
	})
	go wsServer.Start(ctx)

	authServer := auth.NewAuthServer(auth.NewAuthServerOptions{
		Port:        cfg.Server.AuthPort,
		Handler:     auth.NewAuthHandler(repository),
		PlayerCount: gameState.PlayerCount,
	})
	go authServer.Start()

	clientEventWorker := workers.NewClientEventWorker(workers.NewClientEventWorkerOptions{
		ClientManager:        clientManager,
		ConnectionEventQueue: connectionEventQueue,
	})
	go clientEventWorker.Start()

	saveRequestChan := make(chan workers.SaveRequest, 100)
	saveWorker := workers.NewSaveWorker(workers.NewSaveWorkerOptions{
		Repository:      repository,
		SaveRequestChan: saveRequestChan,
	})
	go saveWorker.Start(ctx)

	gameManager := game.NewGameManager(game.NewGameManagerOptions{
		ClientManager:        clientManager,
		ClientMessageQueue:   clientMessageQueue,
		ConnectionEventQueue: connectionEventQueue,
		Repository:           repository,
		GameState:            gameState,
		MobManager:           mobManager,
		ResourceManager:      resourceManager,
		BuildingRegistry:     buildingRegistry,
		SaveRequestChan:      saveRequestChan,
		GameLoopInterval:     cfg.TickInterval(),
		ResourceCheckTicks:   cfg.Game.ResourceCheckTicks,
	})

	log.Info("Starting game manager")
	if err := gameManager.Start(ctx); err != nil {
		panic(fmt.Sprintf("Game manager exited: %v", err))
	}
}

func newRepository(ctx context.Context, cfg *config.Config) (repositories.Repository, error) {
	switch cfg.Storage.Backend {
	case "jsonfile":
		return repositories.NewJSONFileRepository(cfg.Storage.DataDir)
	case "sqlite":
		return repositories.NewSQLiteRepository(ctx, cfg.Storage.Path)
	case "postgres":
		return repositories.NewPostgresRepository(ctx, cfg.Storage.DSN)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}
}

// loadWorld restores persisted buildings and resources, generating and
// persisting a fresh resource world on first run.
func loadWorld(ctx context.Context, repository repositories.Repository, resourceManager *resources.Manager, buildingRegistry *buildings.Registry) error {
	buildingModels, err := repository.ListBuildings(ctx)
	if err != nil {
		return fmt.Errorf("failed to list buildings: %v", err)
	}
	for _, model := range buildingModels {
		buildingRegistry.AddExisting(game.BuildingFromModel(model))
	}
	log.Info("Loaded %d buildings", len(buildingModels))

	resourceModels, err := repository.ListResources(ctx)
	if err != nil {
		return fmt.Errorf("failed to list resources: %v", err)
	}
	for _, model := range resourceModels {
		resourceManager.AddResource(game.ResourceFromModel(model))
	}

	if len(resourceModels) == 0 {
		resourceManager.InitializeWorld()
		if err := repository.SaveResources(ctx, game.ResourceModels(resourceManager)); err != nil {
			return fmt.Errorf("failed to save generated resources: %v", err)
		}
		log.Info("Generated %d resources", resourceManager.Count())
	} else {
		log.Info("Loaded %d resources", len(resourceModels))
	}

	return nil
}
