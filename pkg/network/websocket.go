package network

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/cbodonnell/descent/pkg/log"
	"github.com/cbodonnell/descent/pkg/messages"
	"github.com/cbodonnell/descent/pkg/queue"
	"github.com/gorilla/websocket"
)

// WSServer accepts WebSocket connections and feeds inbound messages
// into the game's message queue, stamped with the sender's client ID.
type WSServer struct {
	port          int
	clientManager *ClientManager
	messageQueue  queue.Queue
	tls           *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewWSServerOptions struct {
	Port          int
	ClientManager *ClientManager
	MessageQueue  queue.Queue
	TLS           *TLSConfig
}

// NewWSServer creates a new WebSocket server.
func NewWSServer(opts NewWSServerOptions) *WSServer {
	return &WSServer{
		port:          opts.Port,
		clientManager: opts.ClientManager,
		messageQueue:  opts.MessageQueue,
		tls:           opts.TLS,
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Start starts the WebSocket server.
func (s *WSServer) Start(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("Failed to upgrade to WebSocket: %v", err)
			return
		}
		log.Debug("New WebSocket connection from %s", conn.RemoteAddr().String())
		go s.handleWSConnection(conn)
	})

	addr := fmt.Sprintf(":%d", s.port)
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		server.Shutdown(ctx)
	}()

	var listenAndServe func() error
	if s.tls != nil {
		log.Info("WebSocket server listening on %s with TLS", addr)
		listenAndServe = func() error {
			return server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("WebSocket server listening on %s", addr)
		listenAndServe = server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("WebSocket server closed")
			return
		}
		log.Error("WebSocket server error: %v", err)
	}
}

// handleWSConnection registers the connection as a client and reads
// messages until the connection closes.
func (s *WSServer) handleWSConnection(conn *websocket.Conn) {
	clientID := s.clientManager.ConnectClient(newWSMessenger(conn))
	log.Info("Client %s connected", clientID)

	defer func() {
		s.clientManager.DisconnectClient(clientID)
		log.Info("Client %s disconnected", clientID)
		conn.Close()
	}()

	for {
		message, err := ReadMessageFromWS(conn)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error("Error reading WebSocket message from %s: %v", conn.RemoteAddr().String(), err)
			}
			log.Trace("Connection closed for %s", conn.RemoteAddr().String())
			return
		}

		// The client ID is assigned server-side; never trust the wire value.
		message.ClientID = clientID
		if err := s.messageQueue.Enqueue(message); err != nil {
			log.Error("Failed to enqueue message from client %s: %v", clientID, err)
		}
	}
}

// wsMessenger serializes writes to a WebSocket connection, which does
// not support concurrent writers.
type wsMessenger struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func newWSMessenger(conn *websocket.Conn) *wsMessenger {
	return &wsMessenger{conn: conn}
}

func (m *wsMessenger) WriteMessage(msg *messages.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return WriteMessageToWS(m.conn, msg)
}

// WriteMessageToWS writes a Message to a WebSocket connection
func WriteMessageToWS(conn *websocket.Conn, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}

	return nil
}

// ReadMessageFromWS reads a Message from a WebSocket connection
func ReadMessageFromWS(conn *websocket.Conn) (*messages.Message, error) {
	_, message, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	msg, err := messages.DeserializeMessage(message)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return msg, nil
}
