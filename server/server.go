package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"steamcycle/config"
	"steamcycle/model"
	"steamcycle/steam"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	resolver *steam.Resolver
	cfg      *config.Config
}

func NewServer(cfg *config.Config, resolver *steam.Resolver) *Server {
	return &Server{
		addr: cfg.Server.Addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.Server.ReadBufferSize,
			WriteBufferSize: cfg.Server.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		resolver: resolver,
		cfg:      cfg,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("upgrade")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	hub := NewHub(uuid.NewString(), conn, s.resolver, s.cfg)
	hub.logger.WithField("remote", r.RemoteAddr).Info("session opened")

	done := make(chan struct{})
	go hub.handleRequest(ctx)
	go hub.handleResponse(done)
	for {
		var msg model.Msg
		if err := conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				hub.logger.WithError(err).Warn("read request")
			}
			break
		}
		hub.msg <- msg
	}
	close(hub.msg)
	cancel()
	<-done
	hub.logger.Info("session closed")
}

// Handler returns the http handler exposing the websocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("listening")
	return http.ListenAndServe(s.addr, s.Handler())
}
