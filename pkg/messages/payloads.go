package messages

// ItemStack is a dropped item type and quantity.
type ItemStack struct {
	TypeID   string `json:"typeId"`
	Quantity int    `json:"quantity"`
}

// PlayerView is the public view of a player sent to clients.
type PlayerView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Color    int     `json:"color"`
	Level    int     `json:"level"`
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	Rotation float64 `json:"rotation"`
	Depth    int     `json:"depth"`
	Hp       int     `json:"hp"`
	MaxHp    int     `json:"maxHp"`
}

// MobTypeView describes a mob type for clients.
type MobTypeView struct {
	Name     string `json:"name"`
	Color    int    `json:"color"`
	Shape    string `json:"shape"`
	MinDepth int    `json:"minDepth"`
}

// MobView is the per-tick view of a mob sent to clients.
type MobView struct {
	ID       uint32      `json:"id"`
	X        float64     `json:"x"`
	Z        float64     `json:"z"`
	Rotation float64     `json:"rotation"`
	Hp       int         `json:"hp"`
	MaxHp    int         `json:"maxHp"`
	State    string      `json:"state"`
	Type     MobTypeView `json:"type"`
	Level    int         `json:"level"`
}

// ResourceView is the view of a harvestable resource sent to clients.
type ResourceView struct {
	ID            uint32  `json:"id"`
	Type          string  `json:"type"`
	X             float64 `json:"x"`
	Z             float64 `json:"z"`
	Depth         int     `json:"depth"`
	Hp            int     `json:"hp"`
	MaxHp         int     `json:"maxHp"`
	IsHarvestable bool    `json:"isHarvestable"`
}

// BuildingView is the view of a placed building sent to clients.
type BuildingView struct {
	ID       uint32      `json:"id"`
	Type     string      `json:"type"`
	X        float64     `json:"x"`
	Z        float64     `json:"z"`
	Rotation float64     `json:"rotation"`
	Depth    int         `json:"depth"`
	OwnerID  string      `json:"ownerId"`
	Contents []ItemStack `json:"contents,omitempty"`
}

// Client payloads

type ClientPlayerJoin struct {
	Username string  `json:"username"`
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	Depth    int     `json:"depth"`
}

type ClientPlayerMove struct {
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	Rotation float64 `json:"rotation"`
}

type ClientPlayerDepthChange struct {
	Depth int `json:"depth"`
}

type ClientMobHit struct {
	MobID  uint32 `json:"mobId"`
	Damage int    `json:"damage"`
}

type ClientResourceHit struct {
	ResourceID uint32 `json:"resourceId"`
	Damage     int    `json:"damage"`
}

type ClientPlayerLevelUp struct {
	Level int `json:"level"`
	Xp    int `json:"xp"`
	MaxHp int `json:"maxHp"`
}

type ClientPlayerDamaged struct {
	Hp    int `json:"hp"`
	MaxHp int `json:"maxHp"`
}

type ClientBuildingPlaced struct {
	Type     string      `json:"type"`
	X        float64     `json:"x"`
	Z        float64     `json:"z"`
	Rotation float64     `json:"rotation"`
	Contents []ItemStack `json:"contents,omitempty"`
}

type ClientBuildingRemoved struct {
	BuildingID uint32 `json:"buildingId"`
}

type ClientBuildingContentsUpdate struct {
	BuildingID uint32      `json:"buildingId"`
	Contents   []ItemStack `json:"contents"`
}

// Server payloads

type ServerAuthError struct {
	Error string `json:"error"`
}

type ServerCurrentPlayers struct {
	Players map[string]PlayerView `json:"players"`
}

type ServerPlayerJoined struct {
	PlayerView
	Username string `json:"username"`
	Xp       int    `json:"xp"`
}

type ServerPlayerLeft struct {
	ID string `json:"id"`
}

type ServerPlayerMoved struct {
	ID       string  `json:"id"`
	X        float64 `json:"x"`
	Z        float64 `json:"z"`
	Rotation float64 `json:"rotation"`
	Depth    int     `json:"depth"`
}

type ServerPlayerChangedDepth struct {
	ID       string `json:"id"`
	Depth    int    `json:"depth"`
	OldDepth int    `json:"oldDepth"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
}

type ServerPlayerLeveledUp struct {
	ID    string `json:"id"`
	Level int    `json:"level"`
	Name  string `json:"name"`
}

type ServerPlayerHpChanged struct {
	ID    string `json:"id"`
	Hp    int    `json:"hp"`
	MaxHp int    `json:"maxHp"`
}

type ServerMobsSync struct {
	Mobs []MobView `json:"mobs"`
}

type ServerMobsUpdate struct {
	Mobs []MobView `json:"mobs"`
}

type ServerMobDamaged struct {
	MobID      uint32 `json:"mobId"`
	Hp         int    `json:"hp"`
	MaxHp      int    `json:"maxHp"`
	AttackerID string `json:"attackerId"`
}

type ServerMobDied struct {
	MobID    uint32      `json:"mobId"`
	Xp       int         `json:"xp"`
	KillerID string      `json:"killerId"`
	Drops    []ItemStack `json:"drops"`
}

type ServerMobSpawned struct {
	Mob MobView `json:"mob"`
}

type ServerMobAttackedPlayer struct {
	MobID  uint32 `json:"mobId"`
	Damage int    `json:"damage"`
}

type ServerResourcesSync struct {
	Resources []ResourceView `json:"resources"`
}

type ServerResourceDamaged struct {
	ResourceID uint32 `json:"resourceId"`
	Hp         int    `json:"hp"`
	MaxHp      int    `json:"maxHp"`
	AttackerID string `json:"attackerId"`
}

type ServerResourceDestroyed struct {
	ResourceID  uint32      `json:"resourceId"`
	HarvesterID string      `json:"harvesterId"`
	Drops       []ItemStack `json:"drops"`
}

type ServerBuildingsSync struct {
	Buildings []BuildingView `json:"buildings"`
}

type ServerBuildingPlaced struct {
	Building BuildingView `json:"building"`
}

type ServerBuildingRemoved struct {
	BuildingID uint32 `json:"buildingId"`
}

type ServerBuildingContentsChanged struct {
	BuildingID uint32      `json:"buildingId"`
	Contents   []ItemStack `json:"contents"`
}
