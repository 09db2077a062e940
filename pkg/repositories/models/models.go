package models

// ItemStack is a stored item type and quantity.
type ItemStack struct {
	TypeID   string `json:"typeId"`
	Quantity int    `json:"quantity"`
}

// User is a registered account keyed by username.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"passwordHash"`
	DisplayName  string `json:"displayName"`
	Level        int    `json:"level"`
	Xp           int    `json:"xp"`
	Color        int    `json:"color"`
	CreatedAt    int64  `json:"createdAt"`
}

// Building is a persisted placed structure.
type Building struct {
	ID        uint32      `json:"id"`
	Type      string      `json:"type"`
	X         float64     `json:"x"`
	Z         float64     `json:"z"`
	Rotation  float64     `json:"rotation"`
	Depth     int         `json:"depth"`
	OwnerID   string      `json:"ownerId"`
	Contents  []ItemStack `json:"contents,omitempty"`
	CreatedAt int64       `json:"createdAt"`
}

// Resource is a persisted harvestable node.
type Resource struct {
	ID            uint32      `json:"id"`
	Type          string      `json:"type"`
	X             float64     `json:"x"`
	Z             float64     `json:"z"`
	Depth         int         `json:"depth"`
	Hp            int         `json:"hp"`
	MaxHp         int         `json:"maxHp"`
	IsHarvestable bool        `json:"isHarvestable"`
	RespawnAt     int64       `json:"respawnAt,omitempty"`
	Drops         []ItemStack `json:"drops"`
}
