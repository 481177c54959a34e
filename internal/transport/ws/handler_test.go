package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"perfil/internal/domain"
	"perfil/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestServeRejectsMissingToken(t *testing.T) {
	log := logger.New("error", "text")
	hub := NewHub(context.Background(), log)
	handler := NewHandler(hub, log, "secret", nil)

	w := httptest.NewRecorder()
	handler.Serve(w, httptest.NewRequest(http.MethodGet, "/ws/notifications", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestServeRejectsInvalidToken(t *testing.T) {
	log := logger.New("error", "text")
	hub := NewHub(context.Background(), log)
	handler := NewHandler(hub, log, "secret", nil)

	w := httptest.NewRecorder()
	handler.Serve(w, httptest.NewRequest(http.MethodGet, "/ws/notifications?token=garbage", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNotificationReachesConnectedClient(t *testing.T) {
	log := logger.New("error", "text")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(ctx, log)
	go hub.Run()
	defer hub.Stop()

	handler := NewHandler(hub, log, "secret", nil)

	srv := httptest.NewServer(http.HandlerFunc(handler.Serve))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "?token=" + signToken(t, "secret")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the hub time to register the client before broadcasting.
	time.Sleep(50 * time.Millisecond)

	hub.Notify(domain.Notification{
		Variant: domain.NotificationSuccess,
		Title:   domain.NotificationTitleProfile,
		Message: "Perfil atualizado com sucesso!",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var n domain.Notification
	require.NoError(t, json.Unmarshal(payload, &n))
	assert.Equal(t, "success", n.Variant)
	assert.Equal(t, "Perfil", n.Title)
	assert.Equal(t, "Perfil atualizado com sucesso!", n.Message)
}
