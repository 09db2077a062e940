package types

// GameState holds the player registry. Mobs, resources and buildings
// live in their own managers; players are the anchor for depth scoping.
type GameState struct {
	// Timestamp is the time at which the game state was generated
	Timestamp int64
	// Players maps client IDs to player states
	Players map[string]*PlayerState
}

func NewGameState() *GameState {
	return &GameState{
		Players: make(map[string]*PlayerState),
	}
}

func (g *GameState) AddPlayer(id string, state *PlayerState) {
	g.Players[id] = state
}

func (g *GameState) GetPlayer(id string) *PlayerState {
	return g.Players[id]
}

func (g *GameState) RemovePlayer(id string) {
	delete(g.Players, id)
}

func (g *GameState) PlayerCount() int {
	return len(g.Players)
}

// GetPlayersForDepth returns the players at a depth.
func (g *GameState) GetPlayersForDepth(depth int) []*PlayerState {
	var players []*PlayerState
	for _, player := range g.Players {
		if player.Depth == depth {
			players = append(players, player)
		}
	}
	return players
}

// ActiveDepths returns the set of depths with at least one player.
func (g *GameState) ActiveDepths() map[int]struct{} {
	depths := make(map[int]struct{})
	for _, player := range g.Players {
		depths[player.Depth] = struct{}{}
	}
	return depths
}
