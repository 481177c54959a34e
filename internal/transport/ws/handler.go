package ws

import (
	"net/http"
	"slices"

	"perfil/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub            *Hub
	log            logger.Logger
	jwtSecret      []byte
	allowedOrigins []string
}

func NewHandler(hub *Hub, log logger.Logger, jwtSecret string, allowedOrigins []string) *Handler {
	return &Handler{
		hub:            hub,
		log:            log,
		jwtSecret:      []byte(jwtSecret),
		allowedOrigins: allowedOrigins,
	}
}

func (h *Handler) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(h.allowedOrigins) == 0 {
				return true
			}
			return slices.Contains(h.allowedOrigins, r.Header.Get("Origin"))
		},
	}
}

func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		if cookie, err := r.Cookie("access_token"); err == nil {
			tokenString = cookie.Value
		}
	}

	if tokenString == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		return h.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	upgrader := h.upgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws: upgrade failed", "error", err)
		return
	}

	client := NewClient(h.hub, conn, h.log)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
