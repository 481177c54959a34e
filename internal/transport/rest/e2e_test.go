package rest

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"perfil/internal/client"
	"perfil/internal/config"
	"perfil/internal/core/form"
	"perfil/internal/domain"
	"perfil/internal/logger"
	"perfil/internal/transport/ws"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Drives the edit form through the HTTP client against the real router:
// load, edit, submit, notification.
func TestFormAgainstRouter(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}
	log := logger.New("error", "text")

	userID := uuid.New()
	svc := &mockProfileService{snapshot: &domain.ProfileSnapshot{
		ID:       userID,
		Name:     "Ana Silva",
		Username: "ana",
	}}

	hub := ws.NewHub(context.Background(), log)
	router := NewRouter(cfg, &RouterDeps{
		Auth:    NewAuthHandler(nil, cfg),
		Profile: NewProfileHandler(svc, &mockHistory{}, &mockNotifier{}),
		Ws:      ws.NewHandler(hub, log, cfg.JWTSecret, nil),
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	api := client.New(srv.URL, token)
	notifier := &mockNotifier{}
	f := form.New(api, api, notifier)

	require.NoError(t, f.Load(context.Background()))

	values := f.Values()
	assert.Equal(t, "Ana Silva", values.Name)
	assert.Equal(t, "ana", values.Username)

	f.SetName("Maria Souza")
	require.NoError(t, f.Submit(context.Background()))

	require.Len(t, svc.updated, 1)
	assert.Equal(t, userID, svc.updated[0].ID)
	assert.Equal(t, "Maria Souza", svc.updated[0].Name)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, domain.NotificationSuccess, notifier.events[0].Variant)
	assert.Equal(t, "Perfil atualizado com sucesso!", notifier.events[0].Message)
}

func TestFormAgainstRouterExpiredToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "secret"}
	log := logger.New("error", "text")

	hub := ws.NewHub(context.Background(), log)
	router := NewRouter(cfg, &RouterDeps{
		Auth:    NewAuthHandler(nil, cfg),
		Profile: NewProfileHandler(&mockProfileService{}, &mockHistory{}, &mockNotifier{}),
		Ws:      ws.NewHandler(hub, log, cfg.JWTSecret, nil),
	})

	srv := httptest.NewServer(router)
	defer srv.Close()

	api := client.New(srv.URL, "expired-token")
	f := form.New(api, api, &mockNotifier{})

	err := f.Load(context.Background())
	require.Error(t, err)
}
