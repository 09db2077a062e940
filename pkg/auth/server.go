package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cbodonnell/descent/pkg/log"
	"github.com/cbodonnell/descent/pkg/version"
	"github.com/gorilla/mux"
)

type AuthServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAuthServerOptions struct {
	Port    int
	Handler *AuthHandler
	TLS     *TLSConfig
	// PlayerCount reports the number of connected players for the
	// health endpoint. Optional.
	PlayerCount func() int
}

// NewAuthServer creates a new http.Server for handling authentication
// and profile requests
func NewAuthServer(opts NewAuthServerOptions) *AuthServer {
	startedAt := time.Now()

	router := mux.NewRouter()
	router.HandleFunc("/register", opts.Handler.HandleRegister()).Methods(http.MethodPost)
	router.HandleFunc("/login", opts.Handler.HandleLogin()).Methods(http.MethodPost)
	router.HandleFunc("/updateProfile", opts.Handler.HandleUpdateProfile()).Methods(http.MethodPost)
	router.HandleFunc("/colors", opts.Handler.HandleColors()).Methods(http.MethodGet)
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		health := map[string]interface{}{
			"status":  "ok",
			"version": version.Get(),
			"uptime":  time.Since(startedAt).Seconds(),
		}
		if opts.PlayerCount != nil {
			health["players"] = opts.PlayerCount()
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(health); err != nil {
			log.Error("Failed to encode health response: %v", err)
		}
	}).Methods(http.MethodGet)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: router,
	}
	return &AuthServer{
		server: server,
		tls:    opts.TLS,
	}
}

// Start starts the AuthServer
func (s *AuthServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("Auth server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("Auth server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("Auth server closed")
			return
		}
		log.Error("Auth server error: %v", err)
	}
}

// Stop stops the AuthServer
func (s *AuthServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
