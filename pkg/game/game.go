package game

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/cbodonnell/descent/pkg/game/buildings"
	"github.com/cbodonnell/descent/pkg/game/constants"
	"github.com/cbodonnell/descent/pkg/game/items"
	"github.com/cbodonnell/descent/pkg/game/mobs"
	"github.com/cbodonnell/descent/pkg/game/resources"
	"github.com/cbodonnell/descent/pkg/game/types"
	"github.com/cbodonnell/descent/pkg/kinematic"
	"github.com/cbodonnell/descent/pkg/log"
	"github.com/cbodonnell/descent/pkg/messages"
	"github.com/cbodonnell/descent/pkg/network"
	"github.com/cbodonnell/descent/pkg/queue"
	"github.com/cbodonnell/descent/pkg/repositories"
	"github.com/cbodonnell/descent/pkg/workers"
)

// mobRespawn is a deferred replacement spawn for a killed mob.
type mobRespawn struct {
	depth     int
	remaining float64
}

type GameManager struct {
	clientManager        *network.ClientManager
	clientMessageQueue   queue.Queue
	connectionEventQueue queue.Queue
	repository           repositories.Repository
	gameState            *types.GameState
	mobManager           *mobs.Manager
	resourceManager      *resources.Manager
	buildingRegistry     *buildings.Registry
	saveRequestChan      chan<- workers.SaveRequest
	gameLoopInterval     time.Duration
	resourceCheckTicks   int
	rng                  *rand.Rand

	tickCount       int
	pendingRespawns []mobRespawn
}

// NewGameManagerOptions contains options for creating a new GameManager.
type NewGameManagerOptions struct {
	ClientManager        *network.ClientManager
	ClientMessageQueue   queue.Queue
	ConnectionEventQueue queue.Queue
	Repository           repositories.Repository
	GameState            *types.GameState
	MobManager           *mobs.Manager
	ResourceManager      *resources.Manager
	BuildingRegistry     *buildings.Registry
	SaveRequestChan      chan<- workers.SaveRequest
	GameLoopInterval     time.Duration
	// ResourceCheckTicks is the number of game ticks between resource
	// respawn sweeps.
	ResourceCheckTicks int
	// Rng drives drop rolls. A nil value uses a time-seeded source.
	Rng *rand.Rand
}

func NewGameManager(opts NewGameManagerOptions) *GameManager {
	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	resourceCheckTicks := opts.ResourceCheckTicks
	if resourceCheckTicks <= 0 {
		resourceCheckTicks = 1
	}
	return &GameManager{
		clientManager:        opts.ClientManager,
		clientMessageQueue:   opts.ClientMessageQueue,
		connectionEventQueue: opts.ConnectionEventQueue,
		repository:           opts.Repository,
		gameState:            opts.GameState,
		mobManager:           opts.MobManager,
		resourceManager:      opts.ResourceManager,
		buildingRegistry:     opts.BuildingRegistry,
		saveRequestChan:      opts.SaveRequestChan,
		gameLoopInterval:     opts.GameLoopInterval,
		resourceCheckTicks:   resourceCheckTicks,
		rng:                  rng,
	}
}

// Start starts the game loop.
func (gm *GameManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(gm.gameLoopInterval)
	defer ticker.Stop()

	lastTick := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case t := <-ticker.C:
			delta := t.Sub(lastTick).Seconds()
			lastTick = t
			gm.runTick(ctx, t, delta)
		}
	}
}

// runTick runs one tick inside a recover boundary so a panic in a
// single tick cannot halt the simulation.
func (gm *GameManager) runTick(ctx context.Context, t time.Time, delta float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Recovered from panic in game tick: %v", r)
		}
	}()
	gm.gameTick(ctx, t, delta)
}

// gameTick runs one iteration of the game loop.
func (gm *GameManager) gameTick(ctx context.Context, t time.Time, delta float64) {
	gm.gameState.Timestamp = t.UnixMilli()
	gm.processConnectionEvents(ctx)
	gm.processClientMessages(ctx)
	gm.updateServerObjects(delta)
}

// processConnectionEvents processes all pending connection events in
// the queue. Players only enter the game state on an authenticated
// join message, so a connect event is informational.
func (gm *GameManager) processConnectionEvents(ctx context.Context) {
	pendingEvents, err := gm.connectionEventQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read connection events: %v", err)
		return
	}
	for _, item := range pendingEvents {
		switch event := item.(type) {
		case *types.ConnectClientEvent:
			log.Debug("Client %s connected, awaiting join", event.ClientID)
		case *types.DisconnectClientEvent:
			gm.handleClientDisconnect(ctx, event.ClientID)
		default:
			log.Error("Unhandled connection event type: %T", event)
		}
	}
}

func (gm *GameManager) handleClientDisconnect(ctx context.Context, clientID string) {
	player := gm.gameState.GetPlayer(clientID)
	if player == nil {
		return
	}

	gm.saveProgress(player)
	gm.gameState.RemovePlayer(clientID)

	// Departures are announced to every depth so rosters stay accurate.
	gm.broadcastAll(messages.New(messages.MessageTypeServerPlayerLeft, &messages.ServerPlayerLeft{
		ID: clientID,
	}), clientID)
}

// processClientMessages processes all pending client messages in the
// queue and updates the game state accordingly.
func (gm *GameManager) processClientMessages(ctx context.Context) {
	pendingMessages, err := gm.clientMessageQueue.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read client messages: %v", err)
		return
	}
	for _, item := range pendingMessages {
		message, ok := item.(*messages.Message)
		if !ok {
			log.Error("Failed to cast message to messages.Message")
			continue
		}

		if err := gm.handleClientMessageSafe(ctx, message); err != nil {
			log.Error("Failed to handle %s message from client %s: %v", message.Type, message.ClientID, err)
		}
	}
}

// handleClientMessageSafe isolates each message handler so one bad
// message cannot take down the rest of the batch.
func (gm *GameManager) handleClientMessageSafe(ctx context.Context, message *messages.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("recovered from panic: %v", r)
		}
	}()
	return gm.handleClientMessage(ctx, message)
}

func (gm *GameManager) handleClientMessage(ctx context.Context, message *messages.Message) error {
	switch message.Type {
	case messages.MessageTypeClientPlayerJoin:
		return gm.handlePlayerJoin(ctx, message)
	case messages.MessageTypeClientPlayerMove:
		return gm.handlePlayerMove(message)
	case messages.MessageTypeClientPlayerDepthChange:
		return gm.handlePlayerDepthChange(ctx, message)
	case messages.MessageTypeClientMobHit:
		return gm.handleMobHit(message)
	case messages.MessageTypeClientResourceHit:
		return gm.handleResourceHit(message)
	case messages.MessageTypeClientPlayerLevelUp:
		return gm.handlePlayerLevelUp(ctx, message)
	case messages.MessageTypeClientPlayerDamaged:
		return gm.handlePlayerDamaged(message)
	case messages.MessageTypeClientBuildingPlaced:
		return gm.handleBuildingPlaced(message)
	case messages.MessageTypeClientBuildingRemoved:
		return gm.handleBuildingRemoved(message)
	case messages.MessageTypeClientBuildingContentsUpdate:
		return gm.handleBuildingContentsUpdate(message)
	default:
		return fmt.Errorf("unknown client message type: %s", message.Type)
	}
}

func playerMaxHp(level int) int {
	return constants.PlayerBaseHp + constants.PlayerHpPerLevel*(level-1)
}

func (gm *GameManager) handlePlayerJoin(ctx context.Context, message *messages.Message) error {
	playerJoin := &messages.ClientPlayerJoin{}
	if err := json.Unmarshal(message.Payload, playerJoin); err != nil {
		return fmt.Errorf("failed to unmarshal player join: %v", err)
	}
	if playerJoin.Depth < 0 {
		return nil
	}

	user, err := gm.repository.GetUser(ctx, playerJoin.Username)
	if err != nil {
		if repositories.IsNotFound(err) {
			gm.unicast(message.ClientID, messages.New(messages.MessageTypeServerAuthError, &messages.ServerAuthError{
				Error: "User not authenticated",
			}))
			return nil
		}
		return fmt.Errorf("failed to get user %s: %v", playerJoin.Username, err)
	}

	maxHp := playerMaxHp(user.Level)
	player := &types.PlayerState{
		ID:       message.ClientID,
		Username: user.Username,
		Name:     user.DisplayName,
		Color:    user.Color,
		Level:    user.Level,
		Xp:       user.Xp,
		Position: kinematic.Vector{X: playerJoin.X, Z: playerJoin.Z},
		Depth:    playerJoin.Depth,
		Hp:       maxHp,
		MaxHp:    maxHp,
		JoinedAt: time.Now().UnixMilli(),
	}
	gm.gameState.AddPlayer(message.ClientID, player)
	log.Info("Player %s joined as %s (level %d)", player.Username, player.Name, player.Level)

	gm.ensureMobsForDepth(player.Depth)
	gm.sendDepthSnapshots(message.ClientID, player.Depth)

	// Arrivals are announced to every depth so rosters stay accurate.
	gm.broadcastAll(messages.New(messages.MessageTypeServerPlayerJoined, &messages.ServerPlayerJoined{
		PlayerView: PlayerViewFromState(player),
		Username:   player.Username,
		Xp:         player.Xp,
	}), message.ClientID)

	return nil
}

func (gm *GameManager) handlePlayerMove(message *messages.Message) error {
	playerMove := &messages.ClientPlayerMove{}
	if err := json.Unmarshal(message.Payload, playerMove); err != nil {
		return fmt.Errorf("failed to unmarshal player move: %v", err)
	}

	player := gm.gameState.GetPlayer(message.ClientID)
	if player == nil {
		return nil
	}

	player.Position = kinematic.Vector{X: playerMove.X, Z: playerMove.Z}
	player.Rotation = playerMove.Rotation

	gm.broadcastToDepth(player.Depth, messages.New(messages.MessageTypeServerPlayerMoved, &messages.ServerPlayerMoved{
		ID:       player.ID,
		X:        player.Position.X,
		Z:        player.Position.Z,
		Rotation: player.Rotation,
		Depth:    player.Depth,
	}), message.ClientID)

	return nil
}

func (gm *GameManager) handlePlayerDepthChange(ctx context.Context, message *messages.Message) error {
	depthChange := &messages.ClientPlayerDepthChange{}
	if err := json.Unmarshal(message.Payload, depthChange); err != nil {
		return fmt.Errorf("failed to unmarshal player depth change: %v", err)
	}
	if depthChange.Depth < 0 {
		return nil
	}

	player := gm.gameState.GetPlayer(message.ClientID)
	if player == nil {
		return nil
	}

	oldDepth := player.Depth
	player.Depth = depthChange.Depth

	gm.ensureMobsForDepth(player.Depth)
	gm.sendDepthSnapshots(message.ClientID, player.Depth)

	// Depth changes are announced to every depth so rosters stay accurate.
	gm.broadcastAll(messages.New(messages.MessageTypeServerPlayerChangedDepth, &messages.ServerPlayerChangedDepth{
		ID:       player.ID,
		Depth:    player.Depth,
		OldDepth: oldDepth,
		Name:     player.Name,
		Level:    player.Level,
	}), message.ClientID)

	gm.saveProgress(player)

	return nil
}

func (gm *GameManager) handleMobHit(message *messages.Message) error {
	mobHit := &messages.ClientMobHit{}
	if err := json.Unmarshal(message.Payload, mobHit); err != nil {
		return fmt.Errorf("failed to unmarshal mob hit: %v", err)
	}

	result := gm.mobManager.DamageMob(mobHit.MobID, mobHit.Damage)
	if result == nil {
		return nil
	}
	depth := result.Mob.Depth

	if !result.Died {
		gm.broadcastToDepth(depth, messages.New(messages.MessageTypeServerMobDamaged, &messages.ServerMobDamaged{
			MobID:      mobHit.MobID,
			Hp:         result.Hp,
			MaxHp:      result.MaxHp,
			AttackerID: message.ClientID,
		}), messages.ServerClientID)
		return nil
	}

	// Only the killer receives the drops; everyone else sees the death
	// with an empty list.
	drops := StacksToMessages(items.Roll(gm.rng, items.MobDropTable(result.Mob.Type.Name)))
	gm.sendToDepthPerRecipient(depth, func(recipientID string) *messages.Message {
		mobDied := &messages.ServerMobDied{
			MobID:    mobHit.MobID,
			Xp:       result.Xp,
			KillerID: message.ClientID,
			Drops:    []messages.ItemStack{},
		}
		if recipientID == message.ClientID {
			mobDied.Drops = drops
		}
		return messages.New(messages.MessageTypeServerMobDied, mobDied)
	})

	gm.mobManager.RemoveMob(mobHit.MobID)
	gm.pendingRespawns = append(gm.pendingRespawns, mobRespawn{
		depth:     depth,
		remaining: constants.MobRespawnDelay,
	})

	return nil
}

func (gm *GameManager) handleResourceHit(message *messages.Message) error {
	resourceHit := &messages.ClientResourceHit{}
	if err := json.Unmarshal(message.Payload, resourceHit); err != nil {
		return fmt.Errorf("failed to unmarshal resource hit: %v", err)
	}

	res := gm.resourceManager.GetResource(resourceHit.ResourceID)
	if res == nil {
		return nil
	}

	result := gm.resourceManager.HitResource(resourceHit.ResourceID, resourceHit.Damage)
	if result == nil {
		return nil
	}

	if !result.Destroyed {
		gm.broadcastToDepth(res.Depth, messages.New(messages.MessageTypeServerResourceDamaged, &messages.ServerResourceDamaged{
			ResourceID: resourceHit.ResourceID,
			Hp:         result.Hp,
			MaxHp:      result.MaxHp,
			AttackerID: message.ClientID,
		}), messages.ServerClientID)
		return nil
	}

	// Only the harvester receives the drops.
	drops := StacksToMessages(result.Drops)
	gm.sendToDepthPerRecipient(res.Depth, func(recipientID string) *messages.Message {
		destroyed := &messages.ServerResourceDestroyed{
			ResourceID:  resourceHit.ResourceID,
			HarvesterID: message.ClientID,
			Drops:       []messages.ItemStack{},
		}
		if recipientID == message.ClientID {
			destroyed.Drops = drops
		}
		return messages.New(messages.MessageTypeServerResourceDestroyed, destroyed)
	})

	gm.requestSaveResources()

	return nil
}

func (gm *GameManager) handlePlayerLevelUp(ctx context.Context, message *messages.Message) error {
	levelUp := &messages.ClientPlayerLevelUp{}
	if err := json.Unmarshal(message.Payload, levelUp); err != nil {
		return fmt.Errorf("failed to unmarshal player level up: %v", err)
	}

	player := gm.gameState.GetPlayer(message.ClientID)
	if player == nil {
		return nil
	}

	player.Level = levelUp.Level
	player.Xp = levelUp.Xp
	player.MaxHp = playerMaxHp(levelUp.Level)
	player.Hp = player.MaxHp

	gm.broadcastToDepth(player.Depth, messages.New(messages.MessageTypeServerPlayerLeveledUp, &messages.ServerPlayerLeveledUp{
		ID:    player.ID,
		Level: player.Level,
		Name:  player.Name,
	}), message.ClientID)

	gm.saveProgress(player)

	return nil
}

func (gm *GameManager) handlePlayerDamaged(message *messages.Message) error {
	playerDamaged := &messages.ClientPlayerDamaged{}
	if err := json.Unmarshal(message.Payload, playerDamaged); err != nil {
		return fmt.Errorf("failed to unmarshal player damaged: %v", err)
	}

	player := gm.gameState.GetPlayer(message.ClientID)
	if player == nil {
		return nil
	}

	hp := playerDamaged.Hp
	if hp < 0 {
		hp = 0
	}
	if hp > player.MaxHp {
		hp = player.MaxHp
	}
	player.Hp = hp

	gm.broadcastToDepth(player.Depth, messages.New(messages.MessageTypeServerPlayerHpChanged, &messages.ServerPlayerHpChanged{
		ID:    player.ID,
		Hp:    player.Hp,
		MaxHp: player.MaxHp,
	}), message.ClientID)

	return nil
}

func (gm *GameManager) handleBuildingPlaced(message *messages.Message) error {
	buildingPlaced := &messages.ClientBuildingPlaced{}
	if err := json.Unmarshal(message.Payload, buildingPlaced); err != nil {
		return fmt.Errorf("failed to unmarshal building placed: %v", err)
	}

	player := gm.gameState.GetPlayer(message.ClientID)
	if player == nil {
		return nil
	}

	building := gm.buildingRegistry.AddBuilding(buildings.PlacementSpec{
		Type:     buildingPlaced.Type,
		Position: kinematic.Vector{X: buildingPlaced.X, Z: buildingPlaced.Z},
		Rotation: buildingPlaced.Rotation,
		Contents: StacksFromMessages(buildingPlaced.Contents),
	}, player.Depth, player.Username)
	if building == nil {
		log.Debug("Refused building placement of %s by %s", buildingPlaced.Type, player.Username)
		return nil
	}

	gm.broadcastToDepth(player.Depth, messages.New(messages.MessageTypeServerBuildingPlaced, &messages.ServerBuildingPlaced{
		Building: BuildingViewFromBuilding(building),
	}), messages.ServerClientID)

	gm.requestSaveBuildings()

	return nil
}

func (gm *GameManager) handleBuildingRemoved(message *messages.Message) error {
	buildingRemoved := &messages.ClientBuildingRemoved{}
	if err := json.Unmarshal(message.Payload, buildingRemoved); err != nil {
		return fmt.Errorf("failed to unmarshal building removed: %v", err)
	}

	player := gm.gameState.GetPlayer(message.ClientID)
	if player == nil {
		return nil
	}

	if !gm.buildingRegistry.RemoveBuilding(buildingRemoved.BuildingID, player.Username) {
		return nil
	}

	gm.broadcastToDepth(player.Depth, messages.New(messages.MessageTypeServerBuildingRemoved, &messages.ServerBuildingRemoved{
		BuildingID: buildingRemoved.BuildingID,
	}), messages.ServerClientID)

	gm.requestSaveBuildings()

	return nil
}

func (gm *GameManager) handleBuildingContentsUpdate(message *messages.Message) error {
	contentsUpdate := &messages.ClientBuildingContentsUpdate{}
	if err := json.Unmarshal(message.Payload, contentsUpdate); err != nil {
		return fmt.Errorf("failed to unmarshal building contents update: %v", err)
	}

	player := gm.gameState.GetPlayer(message.ClientID)
	if player == nil {
		return nil
	}

	if !gm.buildingRegistry.UpdateContents(contentsUpdate.BuildingID, StacksFromMessages(contentsUpdate.Contents)) {
		return nil
	}

	gm.broadcastToDepth(player.Depth, messages.New(messages.MessageTypeServerBuildingContentsChanged, &messages.ServerBuildingContentsChanged{
		BuildingID: contentsUpdate.BuildingID,
		Contents:   contentsUpdate.Contents,
	}), message.ClientID)

	gm.requestSaveBuildings()

	return nil
}

// updateServerObjects advances the simulation by delta seconds.
func (gm *GameManager) updateServerObjects(delta float64) {
	gm.processMobRespawns(delta)

	for _, intent := range gm.mobManager.Update(delta, gm.gameState.Players) {
		gm.unicast(intent.TargetID, messages.New(messages.MessageTypeServerMobAttackedPlayer, &messages.ServerMobAttackedPlayer{
			MobID:  intent.MobID,
			Damage: intent.Damage,
		}))
	}

	for depth := range gm.gameState.ActiveDepths() {
		gm.broadcastToDepth(depth, messages.New(messages.MessageTypeServerMobsUpdate, &messages.ServerMobsUpdate{
			Mobs: MobViewsForDepth(gm.mobManager, depth),
		}), messages.ServerClientID)
	}

	gm.tickCount++
	if gm.tickCount%gm.resourceCheckTicks == 0 {
		changed, changedDepths := gm.resourceManager.Update()
		if changed {
			for depth := range changedDepths {
				gm.broadcastToDepth(depth, messages.New(messages.MessageTypeServerResourcesSync, &messages.ServerResourcesSync{
					Resources: ResourceViewsForDepth(gm.resourceManager, depth),
				}), messages.ServerClientID)
			}
			gm.requestSaveResources()
		}
	}
}

// processMobRespawns spawns replacements for mobs killed a few seconds
// ago, keeping depth populations stable.
func (gm *GameManager) processMobRespawns(delta float64) {
	remaining := gm.pendingRespawns[:0]
	for _, respawn := range gm.pendingRespawns {
		respawn.remaining -= delta
		if respawn.remaining > 0 {
			remaining = append(remaining, respawn)
			continue
		}

		mob := gm.mobManager.SpawnMob(respawn.depth, gm.playerPositionsAtDepth(respawn.depth))
		gm.broadcastToDepth(respawn.depth, messages.New(messages.MessageTypeServerMobSpawned, &messages.ServerMobSpawned{
			Mob: MobViewFromMob(mob),
		}), messages.ServerClientID)
	}
	gm.pendingRespawns = remaining
}

// ensureMobsForDepth lazily populates a depth the first time a player
// arrives there.
func (gm *GameManager) ensureMobsForDepth(depth int) {
	if gm.mobManager.CountForDepth(depth) > 0 {
		return
	}
	spawned := gm.mobManager.SpawnMobsForDepth(depth, gm.playerPositionsAtDepth(depth))
	log.Debug("Spawned %d mobs at depth %d", len(spawned), depth)
}

func (gm *GameManager) playerPositionsAtDepth(depth int) []kinematic.Vector {
	players := gm.gameState.GetPlayersForDepth(depth)
	positions := make([]kinematic.Vector, 0, len(players))
	for _, player := range players {
		positions = append(positions, player.Position)
	}
	return positions
}

// playerViewsForDepth snapshots the players at a depth, keyed by id.
func (gm *GameManager) playerViewsForDepth(depth int) map[string]messages.PlayerView {
	views := make(map[string]messages.PlayerView)
	for id, p := range gm.gameState.Players {
		if p.Depth != depth {
			continue
		}
		views[id] = PlayerViewFromState(p)
	}
	return views
}

// sendDepthSnapshots unicasts the player, mob, resource and building
// state of a depth to a single client.
func (gm *GameManager) sendDepthSnapshots(clientID string, depth int) {
	gm.unicast(clientID, messages.New(messages.MessageTypeServerCurrentPlayers, &messages.ServerCurrentPlayers{
		Players: gm.playerViewsForDepth(depth),
	}))
	gm.unicast(clientID, messages.New(messages.MessageTypeServerMobsSync, &messages.ServerMobsSync{
		Mobs: MobViewsForDepth(gm.mobManager, depth),
	}))
	gm.unicast(clientID, messages.New(messages.MessageTypeServerResourcesSync, &messages.ServerResourcesSync{
		Resources: ResourceViewsForDepth(gm.resourceManager, depth),
	}))
	gm.unicast(clientID, messages.New(messages.MessageTypeServerBuildingsSync, &messages.ServerBuildingsSync{
		Buildings: BuildingViewsForDepth(gm.buildingRegistry, depth),
	}))
}

// saveProgress asks the save worker to persist a player's level and xp.
// The stored user record is read and merged on the worker goroutine so
// the tick loop never touches storage.
func (gm *GameManager) saveProgress(player *types.PlayerState) {
	gm.saveRequestChan <- workers.SaveProgressRequest{
		Username: player.Username,
		Level:    player.Level,
		Xp:       player.Xp,
	}
}

func (gm *GameManager) requestSaveBuildings() {
	gm.saveRequestChan <- workers.SaveBuildingsRequest{Buildings: BuildingModels(gm.buildingRegistry)}
}

func (gm *GameManager) requestSaveResources() {
	gm.saveRequestChan <- workers.SaveResourcesRequest{Resources: ResourceModels(gm.resourceManager)}
}

// unicast sends a message to a single client.
func (gm *GameManager) unicast(clientID string, msg *messages.Message) {
	client, err := gm.clientManager.GetClient(clientID)
	if err != nil {
		log.Debug("Dropping %s message: %v", msg.Type, err)
		return
	}
	if err := client.Messenger.WriteMessage(msg); err != nil {
		log.Error("Failed to write %s message to client %s: %v", msg.Type, clientID, err)
	}
}

// broadcastAll sends a message to every connected client except the one
// identified by exceptID.
func (gm *GameManager) broadcastAll(msg *messages.Message, exceptID string) {
	for _, client := range gm.clientManager.GetClients() {
		if client.ID == exceptID {
			continue
		}
		if err := client.Messenger.WriteMessage(msg); err != nil {
			log.Error("Failed to write %s message to client %s: %v", msg.Type, client.ID, err)
		}
	}
}

// broadcastToDepth sends a message to every joined player at a depth
// except the one identified by exceptID.
func (gm *GameManager) broadcastToDepth(depth int, msg *messages.Message, exceptID string) {
	for _, client := range gm.clientManager.GetClients() {
		if client.ID == exceptID {
			continue
		}
		player := gm.gameState.GetPlayer(client.ID)
		if player == nil || player.Depth != depth {
			continue
		}
		if err := client.Messenger.WriteMessage(msg); err != nil {
			log.Error("Failed to write %s message to client %s: %v", msg.Type, client.ID, err)
		}
	}
}

// sendToDepthPerRecipient sends a recipient-specific message to every
// joined player at a depth.
func (gm *GameManager) sendToDepthPerRecipient(depth int, build func(recipientID string) *messages.Message) {
	for _, client := range gm.clientManager.GetClients() {
		player := gm.gameState.GetPlayer(client.ID)
		if player == nil || player.Depth != depth {
			continue
		}
		if err := client.Messenger.WriteMessage(build(client.ID)); err != nil {
			log.Error("Failed to write message to client %s: %v", client.ID, err)
		}
	}
}
