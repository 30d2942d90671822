package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"

	"gatos/server/auth"
	"gatos/server/srv"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func wsHandler(h *srv.Hub, a *auth.Auth) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := ""
		if tok := r.URL.Query().Get("token"); tok != "" {
			user, err := a.ParseToken(tok)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			name = user
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade:", err)
			return
		}
		h.HandleWS(conn, name)
	}
}

func main() {
	cfg, err := srv.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	a, err := auth.New(cfg.DataDir)
	if err != nil {
		log.Fatal(err)
	}

	hub := srv.NewHub(cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", wsHandler(hub, a))
	mux.HandleFunc("/auth/register", a.HandleRegister)
	mux.HandleFunc("/auth/login", a.HandleLogin)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })

	s := &http.Server{
		Addr:        cfg.Addr,
		Handler:     mux,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		log.Println("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(ctx)
		hub.Shutdown()
	}()

	log.Println("server listening on", cfg.Addr)
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
