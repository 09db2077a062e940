package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cbodonnell/descent/pkg/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHandler(t *testing.T) (*AuthHandler, repositories.Repository) {
	t.Helper()
	repository, err := repositories.NewJSONFileRepository(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { repository.Close(context.Background()) })
	return NewAuthHandler(repository), repository
}

func doRequest(t *testing.T, handler func(w *httptest.ResponseRecorder), decode interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	handler(w)
	require.NoError(t, json.NewDecoder(w.Body).Decode(decode))
}

func postJSON(t *testing.T, handlerFunc func(w *httptest.ResponseRecorder, body *bytes.Buffer), payload interface{}) *Response {
	t.Helper()
	body := &bytes.Buffer{}
	require.NoError(t, json.NewEncoder(body).Encode(payload))
	response := &Response{}
	doRequest(t, func(w *httptest.ResponseRecorder) {
		handlerFunc(w, body)
	}, response)
	return response
}

func register(t *testing.T, h *AuthHandler, username, password string) *Response {
	t.Helper()
	return postJSON(t, func(w *httptest.ResponseRecorder, body *bytes.Buffer) {
		r := httptest.NewRequest("POST", "/register", body)
		h.HandleRegister()(w, r)
	}, map[string]string{"username": username, "password": password})
}

func login(t *testing.T, h *AuthHandler, username, password string) *Response {
	t.Helper()
	return postJSON(t, func(w *httptest.ResponseRecorder, body *bytes.Buffer) {
		r := httptest.NewRequest("POST", "/login", body)
		h.HandleLogin()(w, r)
	}, map[string]string{"username": username, "password": password})
}

func TestHandleRegister(t *testing.T) {
	h, repository := newTestHandler(t)

	response := register(t, h, "ada", "s3cret")
	require.True(t, response.Success, "error: %s", response.Error)
	require.NotNil(t, response.User)
	assert.Equal(t, "ada", response.User.Username)
	assert.Equal(t, "ada", response.User.DisplayName)
	assert.Equal(t, 1, response.User.Level)
	assert.Equal(t, 0, response.User.Xp)
	assert.Equal(t, PlayerColors[0], response.User.Color)

	// The stored password is a bcrypt hash, never the plaintext.
	user, err := repository.GetUser(context.Background(), "ada")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret")))
}

func TestHandleRegister_Validation(t *testing.T) {
	h, _ := newTestHandler(t)

	tests := []struct {
		name     string
		username string
		password string
		want     string
	}{
		{"short username", "ab", "s3cret", "Username must be at least 3 characters"},
		{"short password", "ada", "abc", "Password must be at least 4 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			response := register(t, h, tt.username, tt.password)
			assert.False(t, response.Success)
			assert.Equal(t, tt.want, response.Error)
		})
	}
}

func TestHandleRegister_DuplicateUsername(t *testing.T) {
	h, _ := newTestHandler(t)

	require.True(t, register(t, h, "ada", "s3cret").Success)

	response := register(t, h, "ada", "other")
	assert.False(t, response.Success)
	assert.Equal(t, "User already exists", response.Error)
}

func TestHandleRegister_ColorsAssignedRoundRobin(t *testing.T) {
	h, _ := newTestHandler(t)

	first := register(t, h, "user-one", "s3cret")
	second := register(t, h, "user-two", "s3cret")
	require.True(t, first.Success)
	require.True(t, second.Success)
	assert.Equal(t, PlayerColors[0], first.User.Color)
	assert.Equal(t, PlayerColors[1], second.User.Color)
}

func TestHandleLogin(t *testing.T) {
	h, _ := newTestHandler(t)
	require.True(t, register(t, h, "ada", "s3cret").Success)

	response := login(t, h, "ada", "s3cret")
	require.True(t, response.Success)
	assert.Equal(t, "ada", response.User.Username)

	response = login(t, h, "ada", "wrong")
	assert.False(t, response.Success)
	assert.Equal(t, "Incorrect password", response.Error)

	response = login(t, h, "ghost", "s3cret")
	assert.False(t, response.Success)
	assert.Equal(t, "User not found", response.Error)
}

func TestHandleUpdateProfile(t *testing.T) {
	h, _ := newTestHandler(t)
	require.True(t, register(t, h, "ada", "s3cret").Success)

	updateProfile := func(payload interface{}) *Response {
		return postJSON(t, func(w *httptest.ResponseRecorder, body *bytes.Buffer) {
			r := httptest.NewRequest("POST", "/updateProfile", body)
			h.HandleUpdateProfile()(w, r)
		}, payload)
	}

	// Display names are truncated to 20 characters.
	response := updateProfile(map[string]interface{}{
		"username":    "ada",
		"displayName": strings.Repeat("x", 30),
	})
	require.True(t, response.Success)
	assert.Equal(t, strings.Repeat("x", 20), response.User.DisplayName)

	// Palette colors are accepted.
	response = updateProfile(map[string]interface{}{
		"username": "ada",
		"color":    PlayerColors[3],
	})
	require.True(t, response.Success)
	assert.Equal(t, PlayerColors[3], response.User.Color)

	// Colors outside the palette are ignored.
	response = updateProfile(map[string]interface{}{
		"username": "ada",
		"color":    0x123456,
	})
	require.True(t, response.Success)
	assert.Equal(t, PlayerColors[3], response.User.Color)

	response = updateProfile(map[string]interface{}{"username": "ghost"})
	assert.False(t, response.Success)
	assert.Equal(t, "User not found", response.Error)
}

func TestHandleColors(t *testing.T) {
	h, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	h.HandleColors()(w, httptest.NewRequest("GET", "/colors", nil))

	var response struct {
		Colors []int `json:"colors"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, PlayerColors, response.Colors)
	assert.Len(t, response.Colors, 12)
}
