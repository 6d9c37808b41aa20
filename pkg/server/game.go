package server

import (
	"context"
	"fmt"

	"github.com/coupnet/coup/pkg/conn"
	"github.com/coupnet/coup/pkg/coup"
	"github.com/coupnet/coup/pkg/engine"
)

// RunGame plays one game over the seated connections and returns the
// winner. When the server has a database the game and its public event
// log are recorded there. Canceling ctx drops every connection, which
// collapses the game through the engine's timeout handling.
func (s *Server) RunGame(ctx context.Context, conns []*conn.Conn) (*coup.Player, error) {
	cfg := engine.Config{
		EachCardInDeck: s.cfg.EachCardInDeck,
		StartMoney:     s.cfg.StartMoney,
		StartCards:     s.cfg.StartCards,
		Tolerance:      s.cfg.Tolerance,
		Seed:           s.cfg.Seed,
		Logger:         s.logBackend.Logger("GAME"),
	}

	var gameID int64
	if s.db != nil {
		id, err := s.db.BeginGame(len(conns))
		if err != nil {
			return nil, fmt.Errorf("failed to open game record: %v", err)
		}
		gameID = id
		cfg.Recorder = &eventLog{
			log:    s.logBackend.Logger("STOR"),
			db:     s.db,
			gameID: id,
		}
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.log.Warnf("session canceled, dropping all connections")
			for _, c := range conns {
				c.Close()
			}
		case <-done:
		}
	}()

	e := engine.New(conns, cfg)
	e.Setup()
	winner := e.Run()

	if s.db != nil {
		seat := -1
		if winner != nil {
			seat = winner.Number
		}
		if err := s.db.FinishGame(gameID, seat, e.Game().Violated()); err != nil {
			s.log.Errorf("failed to close game record %d: %v", gameID, err)
		}
	}

	if winner == nil {
		return nil, fmt.Errorf("game ended with no winner")
	}
	s.log.Infof("player %d (%s) wins", winner.Number, winner.Name)
	return winner, nil
}
