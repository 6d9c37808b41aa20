package db

import (
	"database/sql"
	"fmt"
)

// DB records finished and in-flight games together with their public
// event logs.
type DB struct {
	*sql.DB
}

// NewDB opens (or creates) the database at dbPath.
func NewDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary database tables
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			finished_at TIMESTAMP,
			players INTEGER NOT NULL,
			winner INTEGER,
			violation INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			game_id INTEGER NOT NULL,
			seq INTEGER NOT NULL,
			payload TEXT NOT NULL,
			PRIMARY KEY (game_id, seq),
			FOREIGN KEY (game_id) REFERENCES games(id)
		)
	`)
	if err != nil {
		return err
	}

	return nil
}

// Game is one row of the games table.
type Game struct {
	ID         int64
	StartedAt  string
	FinishedAt sql.NullString
	Players    int
	Winner     sql.NullInt64
	Violation  bool
}

// BeginGame inserts a new game row and returns its id.
func (db *DB) BeginGame(players int) (int64, error) {
	res, err := db.Exec("INSERT INTO games (players) VALUES (?)", players)
	if err != nil {
		return 0, fmt.Errorf("failed to insert game: %v", err)
	}
	return res.LastInsertId()
}

// RecordEvent appends one encoded wire record to a game's public log.
func (db *DB) RecordEvent(gameID int64, seq int, payload string) error {
	_, err := db.Exec(`
		INSERT INTO events (game_id, seq, payload)
		VALUES (?, ?, ?)
	`, gameID, seq, payload)
	if err != nil {
		return fmt.Errorf("failed to record event: %v", err)
	}
	return nil
}

// FinishGame marks a game as over, with its winning seat and whether any
// player was thrown out for a rules violation.
func (db *DB) FinishGame(gameID int64, winner int, violation bool) error {
	_, err := db.Exec(`
		UPDATE games
		SET finished_at = CURRENT_TIMESTAMP, winner = ?, violation = ?
		WHERE id = ?
	`, winner, violation, gameID)
	if err != nil {
		return fmt.Errorf("failed to finish game: %v", err)
	}
	return nil
}

// Games returns every recorded game, oldest first.
func (db *DB) Games() ([]Game, error) {
	rows, err := db.Query(`
		SELECT id, started_at, finished_at, players, winner, violation
		FROM games ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %v", err)
	}
	defer rows.Close()

	var games []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.StartedAt, &g.FinishedAt, &g.Players, &g.Winner, &g.Violation); err != nil {
			return nil, fmt.Errorf("failed to scan game: %v", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// Events returns a game's public event log in broadcast order.
func (db *DB) Events(gameID int64) ([]string, error) {
	rows, err := db.Query(`
		SELECT payload FROM events
		WHERE game_id = ? ORDER BY seq
	`, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %v", err)
	}
	defer rows.Close()

	var payloads []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan event: %v", err)
		}
		payloads = append(payloads, p)
	}
	return payloads, rows.Err()
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
