package network

import (
	"testing"

	"github.com/cbodonnell/descent/pkg/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessenger struct {
	sent []*messages.Message
}

func (m *fakeMessenger) WriteMessage(msg *messages.Message) error {
	m.sent = append(m.sent, msg)
	return nil
}

func TestClientManager_ConnectDisconnect(t *testing.T) {
	cm := NewClientManager()

	clientID := cm.ConnectClient(&fakeMessenger{})
	require.NotEmpty(t, clientID)
	assert.True(t, cm.Exists(clientID))

	event := <-cm.GetClientEventChan()
	assert.Equal(t, ClientEvent{ClientID: clientID, Type: ClientEventTypeConnect}, event)

	client, err := cm.GetClient(clientID)
	require.NoError(t, err)
	assert.Equal(t, clientID, client.ID)

	cm.DisconnectClient(clientID)
	assert.False(t, cm.Exists(clientID))

	event = <-cm.GetClientEventChan()
	assert.Equal(t, ClientEvent{ClientID: clientID, Type: ClientEventTypeDisconnect}, event)

	_, err = cm.GetClient(clientID)
	assert.Error(t, err)
}

func TestClientManager_DisconnectUnknownClientIsNoOp(t *testing.T) {
	cm := NewClientManager()
	cm.DisconnectClient("nope")
	assert.Empty(t, cm.GetClients())
	assert.Empty(t, cm.GetClientEventChan())
}

func TestClientManager_UniqueIDs(t *testing.T) {
	cm := NewClientManager()
	a := cm.ConnectClient(&fakeMessenger{})
	b := cm.ConnectClient(&fakeMessenger{})
	assert.NotEqual(t, a, b)
	assert.Len(t, cm.GetClients(), 2)
}
