package server

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
	"pipecut/sampler"
)

var _ sampler.Session = (*Hub)(nil)

// Server waits for the simulation host to connect and drives one sampling
// run per connection.
type Server struct {
	addr     string
	upgrader websocket.Upgrader
	cfg      *sampler.Config

	mu sync.Mutex // 宿主中的命名对象只能被一个运行使用
}

func NewServer(addr string, upgrader websocket.Upgrader, cfg *sampler.Config) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		cfg:      cfg,
	}
}

// serveWs handles websocket requests from the host macro.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	s.mu.Lock()
	defer s.mu.Unlock()

	log.WithField("remote", r.RemoteAddr).Info("host connected")
	hub := NewHub(conn)
	summary, err := sampler.Run(hub, s.cfg)
	if err != nil {
		log.WithError(err).Error("sampling run failed")
	}
	if err := hub.finish(summary, err); err != nil {
		log.WithError(err).Warn("could not report run result to host")
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("waiting for host")
	return http.ListenAndServe(s.addr, s.Handler())
}
