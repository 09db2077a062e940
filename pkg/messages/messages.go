package messages

import "encoding/json"

const (
	// MessageBufferSize represents the maximum size of a message
	MessageBufferSize = 4096
)

// Client message types
const (
	MessageTypeClientPlayerJoin             = "playerJoin"
	MessageTypeClientPlayerMove             = "playerMove"
	MessageTypeClientPlayerDepthChange      = "playerDepthChange"
	MessageTypeClientMobHit                 = "mobHit"
	MessageTypeClientResourceHit            = "resourceHit"
	MessageTypeClientPlayerLevelUp          = "playerLevelUp"
	MessageTypeClientPlayerDamaged          = "playerDamaged"
	MessageTypeClientBuildingPlaced         = "buildingPlaced"
	MessageTypeClientBuildingRemoved        = "buildingRemoved"
	MessageTypeClientBuildingContentsUpdate = "buildingContentsUpdate"
)

// Server message types
const (
	MessageTypeServerAuthError               = "authError"
	MessageTypeServerCurrentPlayers          = "currentPlayers"
	MessageTypeServerPlayerJoined            = "playerJoined"
	MessageTypeServerPlayerLeft              = "playerLeft"
	MessageTypeServerPlayerMoved             = "playerMoved"
	MessageTypeServerPlayerChangedDepth      = "playerChangedDepth"
	MessageTypeServerPlayerLeveledUp         = "playerLeveledUp"
	MessageTypeServerPlayerHpChanged         = "playerHpChanged"
	MessageTypeServerMobsSync                = "mobsSync"
	MessageTypeServerMobsUpdate              = "mobsUpdate"
	MessageTypeServerMobDamaged              = "mobDamaged"
	MessageTypeServerMobDied                 = "mobDied"
	MessageTypeServerMobSpawned              = "mobSpawned"
	MessageTypeServerMobAttackedPlayer       = "mobAttackedPlayer"
	MessageTypeServerResourcesSync           = "resourcesSync"
	MessageTypeServerResourceDamaged         = "resourceDamaged"
	MessageTypeServerResourceDestroyed       = "resourceDestroyed"
	MessageTypeServerBuildingsSync           = "buildingsSync"
	MessageTypeServerBuildingPlaced          = "buildingPlaced"
	MessageTypeServerBuildingRemoved         = "buildingRemoved"
	MessageTypeServerBuildingContentsChanged = "buildingContentsChanged"
)

// ServerClientID is the client ID used for messages originating from the server.
const ServerClientID = ""

// Message represents a generic message for serialization/deserialization
type Message struct {
	ClientID string          `json:"clientID"`
	Type     string          `json:"type"`
	Payload  json.RawMessage `json:"payload"`
}

// New builds a server-originated message, marshaling the payload.
// It panics if the payload cannot be marshaled, which only happens
// for non-serializable payload types.
func New(msgType string, payload interface{}) *Message {
	b, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return &Message{
		ClientID: ServerClientID,
		Type:     msgType,
		Payload:  b,
	}
}
