package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/theorem-health/avatar-gateway/internal/api/v1/middleware"
	"github.com/theorem-health/avatar-gateway/internal/services"
)

// RegisterRoutes mounts the gateway's HTTP surface on router.
func RegisterRoutes(router *mux.Router, svcs *services.Services) {
	cfg := svcs.GetConfig()

	router.Use(middleware.RequestID)

	router.HandleFunc("/", HandleRoot).Methods("GET")
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		HandleHealth(cfg, w, r)
	}).Methods("GET")

	router.Handle("/chat", middleware.RateLimit(cfg.RateLimit, "chat", cfg.RateLimit.Chat)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleChat(svcs.GetChatService(), w, r)
	}))).Methods("POST")

	streamRouter := router.PathPrefix("/stream").Subrouter()
	streamRouter.Handle("/chat", middleware.RateLimit(cfg.RateLimit, "stream_chat", cfg.RateLimit.Stream)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleStreamChat(svcs.GetChatService(), w, r)
	}))).Methods("POST")

	sessionRouter := router.PathPrefix("/session").Subrouter()
	sessionRouter.Handle("/start", middleware.RateLimit(cfg.RateLimit, "session_start", cfg.RateLimit.Session)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleSessionStart(cfg, svcs.GetHeyGenService(), w, r)
	}))).Methods("POST")
	sessionRouter.Handle("/stop", middleware.RateLimit(cfg.RateLimit, "session_stop", cfg.RateLimit.Session)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		HandleSessionStop(svcs.GetHeyGenService(), w, r)
	}))).Methods("POST")
}
