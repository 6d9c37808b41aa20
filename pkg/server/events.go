package server

import (
	"strings"

	"github.com/decred/slog"

	"github.com/coupnet/coup/pkg/engine"
	"github.com/coupnet/coup/pkg/wire"
)

// eventLog persists the engine's broadcasts, one events row per public
// record. Private traffic (prompts, hands, own coin deltas) never reaches
// the database.
type eventLog struct {
	log    slog.Logger
	db     Database
	gameID int64
	seq    int
}

func (l *eventLog) Record(player int, cmd wire.Command) {
	if player != engine.Everyone {
		return
	}
	l.seq++
	payload := strings.TrimSuffix(wire.Encode(cmd), wire.RecordEnd)
	if err := l.db.RecordEvent(l.gameID, l.seq, payload); err != nil {
		l.log.Errorf("failed to record event %d of game %d: %v", l.seq, l.gameID, err)
	}
}
