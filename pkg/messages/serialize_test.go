package messages

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeMessage_RoundTrip(t *testing.T) {
	payload, err := json.Marshal(&ClientMobHit{MobID: 7, Damage: 12})
	require.NoError(t, err)

	msg := &Message{
		ClientID: "client-1",
		Type:     MessageTypeClientMobHit,
		Payload:  payload,
	}

	b, err := SerializeMessage(msg)
	require.NoError(t, err)

	got, err := DeserializeMessage(b)
	require.NoError(t, err)

	assert.Equal(t, msg.ClientID, got.ClientID)
	assert.Equal(t, msg.Type, got.Type)

	hit := &ClientMobHit{}
	require.NoError(t, json.Unmarshal(got.Payload, hit))
	assert.Equal(t, uint32(7), hit.MobID)
	assert.Equal(t, 12, hit.Damage)
}

func TestDeserializeMessage_Garbage(t *testing.T) {
	_, err := DeserializeMessage([]byte("not a zstd frame"))
	assert.Error(t, err)
}
