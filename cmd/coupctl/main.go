package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"github.com/coupnet/coup/pkg/server"
)

// Common flags
var (
	dbPath = flag.String("db", "", "Path to SQLite database file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -db FILE <command> [args]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  games            List recorded games")
		fmt.Fprintln(os.Stderr, "  log --game N     Replay a game's public event log")
		fmt.Fprintln(os.Stderr, "\nGlobal flags:")
		flag.PrintDefaults()
	}

	// Suppress default flag errors to avoid noisy usage on subcommands
	flag.CommandLine.SetOutput(io.Discard)
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *dbPath == "" {
		fatal("-db is required")
	}

	database, err := server.NewDatabase(*dbPath)
	if err != nil {
		fatalErr(err)
	}
	defer database.Close()

	switch flag.Arg(0) {
	case "games":
		if err := handleGames(database); err != nil {
			fatalErr(err)
		}

	case "log":
		if err := handleLog(database, flag.Args()[1:]); err != nil {
			fatalErr(err)
		}

	default:
		flag.Usage()
		os.Exit(2)
	}
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}

func fatalErr(err error) {
	fatal(err.Error())
}

func handleGames(database server.Database) error {
	games, err := database.Games()
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Println("no recorded games")
		return nil
	}
	for _, g := range games {
		status := "running"
		if g.FinishedAt.Valid {
			status = "finished " + g.FinishedAt.String
		}
		winner := "-"
		if g.Winner.Valid {
			winner = strconv.FormatInt(g.Winner.Int64, 10)
		}
		note := ""
		if g.Violation {
			note = " [rules violation]"
		}
		fmt.Printf("game %d: %d players, started %s, %s, winner %s%s\n",
			g.ID, g.Players, g.StartedAt, status, winner, note)
	}
	return nil
}

func handleLog(database server.Database, args []string) error {
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	gameID := fs.Int64("game", 0, "Game ID")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if *gameID == 0 {
		return errors.New("log: --game is required")
	}

	events, err := database.Events(*gameID)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return fmt.Errorf("game %d has no recorded events", *gameID)
	}
	for i, payload := range events {
		fmt.Printf("%4d  %s\n", i+1, payload)
	}
	return nil
}
