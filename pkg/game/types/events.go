package types

type ConnectClientEvent struct {
	ClientID string
}

type DisconnectClientEvent struct {
	ClientID string
}
