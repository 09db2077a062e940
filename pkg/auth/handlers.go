package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cbodonnell/descent/pkg/log"
	"github.com/cbodonnell/descent/pkg/repositories"
	"github.com/cbodonnell/descent/pkg/repositories/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	MinUsernameLength = 3
	MinPasswordLength = 4
	MaxDisplayNameLen = 20
)

// UserView is the public view of a user returned by the auth endpoints.
// It never includes the password hash.
type UserView struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Level       int    `json:"level"`
	Xp          int    `json:"xp"`
	Color       int    `json:"color"`
}

// Response is the envelope for all auth endpoint responses.
type Response struct {
	Success bool      `json:"success"`
	User    *UserView `json:"user,omitempty"`
	Error   string    `json:"error,omitempty"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Color       *int   `json:"color"`
}

// AuthHandler serves user registration, login and profile updates
// backed by the repository.
type AuthHandler struct {
	repository repositories.Repository
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(repository repositories.Repository) *AuthHandler {
	return &AuthHandler{
		repository: repository,
	}
}

func publicView(user *models.User) *UserView {
	return &UserView{
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Level:       user.Level,
		Xp:          user.Xp,
		Color:       user.Color,
	}
}

func writeResponse(w http.ResponseWriter, response *Response) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error("Failed to encode auth response: %v", err)
	}
}

func writeError(w http.ResponseWriter, message string) {
	writeResponse(w, &Response{Success: false, Error: message})
}

// HandleRegister handles requests to the register endpoint
func (h *AuthHandler) HandleRegister() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		request := &registerRequest{}
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			writeError(w, "Invalid request body")
			return
		}

		if len(request.Username) < MinUsernameLength {
			writeError(w, "Username must be at least 3 characters")
			return
		}
		if len(request.Password) < MinPasswordLength {
			writeError(w, "Password must be at least 4 characters")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password: %v", err)
			writeError(w, "Failed to register")
			return
		}

		userCount, err := h.repository.CountUsers(r.Context())
		if err != nil {
			log.Error("Failed to count users: %v", err)
			writeError(w, "Failed to register")
			return
		}

		user := &models.User{
			Username:     request.Username,
			PasswordHash: string(hash),
			DisplayName:  request.Username,
			Level:        1,
			Xp:           0,
			Color:        PlayerColors[userCount%len(PlayerColors)],
			CreatedAt:    time.Now().UnixMilli(),
		}

		if err := h.repository.CreateUser(r.Context(), user); err != nil {
			if repositories.IsAlreadyExists(err) {
				writeError(w, "User already exists")
				return
			}
			log.Error("Failed to create user: %v", err)
			writeError(w, "Failed to register")
			return
		}

		writeResponse(w, &Response{Success: true, User: publicView(user)})
	}
}

// HandleLogin handles requests to the login endpoint
func (h *AuthHandler) HandleLogin() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		request := &loginRequest{}
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			writeError(w, "Invalid request body")
			return
		}

		user, err := h.repository.GetUser(r.Context(), request.Username)
		if err != nil {
			if repositories.IsNotFound(err) {
				writeError(w, "User not found")
				return
			}
			log.Error("Failed to get user: %v", err)
			writeError(w, "Failed to log in")
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(request.Password)); err != nil {
			writeError(w, "Incorrect password")
			return
		}

		writeResponse(w, &Response{Success: true, User: publicView(user)})
	}
}

// HandleUpdateProfile handles requests to the updateProfile endpoint.
// The display name is truncated to 20 characters; colors outside the
// palette are ignored.
func (h *AuthHandler) HandleUpdateProfile() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		request := &updateProfileRequest{}
		if err := json.NewDecoder(r.Body).Decode(request); err != nil {
			writeError(w, "Invalid request body")
			return
		}

		user, err := h.repository.GetUser(r.Context(), request.Username)
		if err != nil {
			if repositories.IsNotFound(err) {
				writeError(w, "User not found")
				return
			}
			log.Error("Failed to get user: %v", err)
			writeError(w, "Failed to update profile")
			return
		}

		if request.DisplayName != "" {
			displayName := request.DisplayName
			if len(displayName) > MaxDisplayNameLen {
				displayName = displayName[:MaxDisplayNameLen]
			}
			user.DisplayName = displayName
		}
		if request.Color != nil && IsValidColor(*request.Color) {
			user.Color = *request.Color
		}

		if err := h.repository.SaveUser(r.Context(), user); err != nil {
			log.Error("Failed to save user: %v", err)
			writeError(w, "Failed to update profile")
			return
		}

		writeResponse(w, &Response{Success: true, User: publicView(user)})
	}
}

// HandleColors handles requests to the colors endpoint
func (h *AuthHandler) HandleColors() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(map[string]interface{}{
			"colors": PlayerColors,
		}); err != nil {
			log.Error("Failed to encode colors response: %v", err)
		}
	}
}
