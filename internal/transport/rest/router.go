package rest

import (
	"net/http"

	"perfil/internal/config"
	"perfil/internal/transport/rest/middleware"
	"perfil/internal/transport/ws"
)

type RouterDeps struct {
	Auth    *AuthHandler
	Profile *ProfileHandler
	Ws      *ws.Handler
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg))

	userStack := middleware.New()
	userStack.Use(middleware.JWT(cfg))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /ws/notifications", deps.Ws.Serve)

	mux.HandleFunc("POST /auth/login", deps.Auth.Login)

	mux.Handle("GET /profile", userStack.Then(http.HandlerFunc(deps.Profile.Show)))
	mux.Handle("PUT /profile", userStack.Then(http.HandlerFunc(deps.Profile.Update)))
	mux.Handle("GET /profile/notifications", userStack.Then(http.HandlerFunc(deps.Profile.Notifications)))

	return globalMw.Apply(mux)
}

func NewServer(handler http.Handler, address string) *http.Server {
	return &http.Server{
		Addr:    address,
		Handler: handler,
	}
}
