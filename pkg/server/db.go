package server

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/coupnet/coup/pkg/server/internal/db"
)

// Game is one row of the recorded games list.
type Game = db.Game

// Database is the game store written by the server and read back by the
// coupctl tool.
type Database interface {
	// BeginGame inserts a new game row and returns its id.
	BeginGame(players int) (int64, error)
	// RecordEvent appends one encoded wire record to a game's public log.
	RecordEvent(gameID int64, seq int, payload string) error
	// FinishGame marks a game as over.
	FinishGame(gameID int64, winner int, violation bool) error

	// Games returns every recorded game, oldest first.
	Games() ([]Game, error)
	// Events returns a game's public event log in broadcast order.
	Events(gameID int64) ([]string, error)

	// Close closes the database connection
	Close() error
}

// NewDatabase creates a new database connection
func NewDatabase(dbPath string) (Database, error) {
	// Ensure the directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %v", err)
	}

	return db.NewDB(dbPath)
}
