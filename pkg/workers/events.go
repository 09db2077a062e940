package workers

import (
	"github.com/cbodonnell/descent/pkg/game/types"
	"github.com/cbodonnell/descent/pkg/log"
	"github.com/cbodonnell/descent/pkg/network"
	"github.com/cbodonnell/descent/pkg/queue"
)

type ClientEventWorker struct {
	clientManager        *network.ClientManager
	connectionEventQueue queue.Queue
}

type NewClientEventWorkerOptions struct {
	ClientManager        *network.ClientManager
	ConnectionEventQueue queue.Queue
}

// NewClientEventWorker creates a new ClientEventWorker.
// The worker processes client events like connect and disconnect
// and writes connection events to a queue for the game loop to process.
func NewClientEventWorker(opts NewClientEventWorkerOptions) *ClientEventWorker {
	return &ClientEventWorker{
		clientManager:        opts.ClientManager,
		connectionEventQueue: opts.ConnectionEventQueue,
	}
}

func (w *ClientEventWorker) Start() {
	for event := range w.clientManager.GetClientEventChan() {
		switch event.Type {
		case network.ClientEventTypeConnect:
			w.enqueue(&types.ConnectClientEvent{ClientID: event.ClientID})
		case network.ClientEventTypeDisconnect:
			w.enqueue(&types.DisconnectClientEvent{ClientID: event.ClientID})
		default:
			log.Error("Unknown client event type: %v", event.Type)
		}
	}
}

func (w *ClientEventWorker) enqueue(event interface{}) {
	if err := w.connectionEventQueue.Enqueue(event); err != nil {
		log.Error("Failed to enqueue connection event: %v", err)
	}
}
