// Package server seats players arriving over TCP or websocket and runs
// one authoritative game over their connections, optionally recording the
// public event log to sqlite.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/decred/slog"
	"github.com/gorilla/websocket"
	"github.com/vctt94/bisonbotkit/logging"

	"github.com/coupnet/coup/pkg/conn"
)

// Defaults for Config fields left zero.
const (
	DefaultHost    = "127.0.0.1"
	DefaultPort    = 7463
	DefaultPlayers = 2
	DefaultTimeout = 10 * time.Second
)

// Config parametrizes one server session: where to listen, how many
// players to seat, and how the game is set up.
type Config struct {
	Host    string
	Port    int    // 0 picks a free port
	WSAddr  string // websocket listen address; empty disables the endpoint
	Players int

	EachCardInDeck int
	StartMoney     int
	StartCards     int
	Tolerance      int
	Timeout        time.Duration // receive deadline for player answers
	Seed           int64         // deterministic games when nonzero

	DBPath string // sqlite event log; empty disables recording
}

// Server owns the listeners and the game database for one session. Build
// it with New, seat the table with AcceptPlayers, then play with RunGame.
type Server struct {
	log        slog.Logger
	logBackend *logging.LogBackend
	cfg        Config

	lis   net.Listener
	wsLis net.Listener
	wsSrv *http.Server
	connc chan *conn.Conn

	db Database
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// New binds the listeners and opens the database. The returned server is
// not yet accepting connections.
func New(cfg Config, logBackend *logging.LogBackend) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Players == 0 {
		cfg.Players = DefaultPlayers
	}
	if cfg.Players < 2 {
		return nil, fmt.Errorf("cannot run a game with %d players", cfg.Players)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	s := &Server{
		log:        logBackend.Logger("SRVR"),
		logBackend: logBackend,
		cfg:        cfg,
		connc:      make(chan *conn.Conn, cfg.Players),
	}

	if cfg.DBPath != "" {
		database, err := NewDatabase(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %v", err)
		}
		s.db = database
	}

	lis, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)))
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s:%d: %v", cfg.Host, cfg.Port, err)
	}
	s.lis = lis
	s.log.Infof("listening on %s", lis.Addr())

	if cfg.WSAddr != "" {
		wsLis, err := net.Listen("tcp", cfg.WSAddr)
		if err != nil {
			lis.Close()
			return nil, fmt.Errorf("failed to listen on %s: %v", cfg.WSAddr, err)
		}
		s.wsLis = wsLis
		mux := http.NewServeMux()
		mux.HandleFunc("/ws", s.handleWS)
		s.wsSrv = &http.Server{Handler: mux}
		s.log.Infof("websocket endpoint on ws://%s/ws", wsLis.Addr())
	}

	return s, nil
}

// Addr is the bound address of the TCP listener.
func (s *Server) Addr() string { return s.lis.Addr().String() }

// WSAddr is the bound address of the websocket listener, or empty when
// the endpoint is disabled.
func (s *Server) WSAddr() string {
	if s.wsLis == nil {
		return ""
	}
	return s.wsLis.Addr().String()
}

// AcceptPlayers seats exactly cfg.Players connections, in arrival order
// across both listeners, then stops accepting. Connection i becomes
// player number i.
func (s *Server) AcceptPlayers(ctx context.Context) ([]*conn.Conn, error) {
	go s.acceptLoop()
	if s.wsSrv != nil {
		go s.wsSrv.Serve(s.wsLis)
	}

	conns := make([]*conn.Conn, 0, s.cfg.Players)
	for len(conns) < s.cfg.Players {
		select {
		case c := <-s.connc:
			conns = append(conns, c)
			s.log.Infof("player %d of %d connected", len(conns), s.cfg.Players)
		case <-ctx.Done():
			for _, c := range conns {
				c.Close()
			}
			return nil, ctx.Err()
		}
	}

	s.stopAccepting()
	return conns, nil
}

func (s *Server) acceptLoop() {
	for {
		nc, err := s.lis.Accept()
		if err != nil {
			return
		}
		s.log.Debugf("connection from %s", nc.RemoteAddr())
		select {
		case s.connc <- conn.New(nc, s.cfg.Timeout):
		default:
			// Table is full.
			nc.Close()
		}
	}
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("websocket upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	s.log.Debugf("websocket connection from %s", r.RemoteAddr)
	select {
	case s.connc <- conn.NewWS(ws, s.cfg.Timeout):
	default:
		ws.Close()
	}
}

func (s *Server) stopAccepting() {
	s.lis.Close()
	if s.wsSrv != nil {
		s.wsSrv.Close()
	}
}

// Close stops accepting and closes the database. Player connections
// handed out by AcceptPlayers are owned by the game and closed when it
// shuts down.
func (s *Server) Close() error {
	s.stopAccepting()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
