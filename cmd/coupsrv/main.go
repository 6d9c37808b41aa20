package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	_ "github.com/mattn/go-sqlite3"
	"github.com/vctt94/bisonbotkit/logging"

	"github.com/coupnet/coup/pkg/engine"
	"github.com/coupnet/coup/pkg/server"
	"github.com/coupnet/coup/pkg/utils"
)

// fileConfig mirrors the optional -config TOML file. Flags given on the
// command line win over file values.
type fileConfig struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	WSAddr         string `toml:"wsaddr"`
	Players        int    `toml:"players"`
	EachCard       int    `toml:"eachcard"`
	StartMoney     int    `toml:"startmoney"`
	StartCards     int    `toml:"startcards"`
	Tolerance      int    `toml:"tolerance"`
	TimeoutSeconds int    `toml:"timeoutseconds"`
	Seed           int64  `toml:"seed"`
	DBPath         string `toml:"dbpath"`
	DataDir        string `toml:"datadir"`
	DebugLevel     string `toml:"debuglevel"`
}

func main() {
	var (
		configPath string
		host       string
		port       int
		wsAddr     string
		portFile   string
		players    int
		eachCard   int
		startMoney int
		startCards int
		tolerance  int
		timeoutSec int
		seed       int64
		dbPath     string
		dataDir    string
		debugLevel string
	)
	flag.StringVar(&configPath, "config", "", "Path to TOML config file")
	flag.StringVar(&host, "host", server.DefaultHost, "Host to listen on")
	flag.IntVar(&port, "port", server.DefaultPort, "Port to listen on (0 for random free port)")
	flag.StringVar(&wsAddr, "wsaddr", "", "Websocket listen address (empty disables the endpoint)")
	flag.StringVar(&portFile, "portfile", "", "If set, write selected port to this file")
	flag.IntVar(&players, "players", server.DefaultPlayers, "Number of players to seat")
	flag.IntVar(&eachCard, "eachcard", engine.DefaultEachCardInDeck, "Copies of each card kind in the deck")
	flag.IntVar(&startMoney, "startmoney", engine.DefaultStartMoney, "Coins dealt to each player")
	flag.IntVar(&startCards, "startcards", engine.DefaultStartCards, "Cards dealt to each player")
	flag.IntVar(&tolerance, "tolerance", engine.DefaultTolerance, "Wrong answers a player may give per prompt")
	flag.IntVar(&timeoutSec, "timeoutseconds", 10, "Seconds to wait for a player's answer")
	flag.Int64Var(&seed, "seed", 0, "Deterministic RNG seed (0 = random)")
	flag.StringVar(&dbPath, "db", "", "Path to SQLite database file (created if missing)")
	flag.StringVar(&dataDir, "datadir", "", "Directory for log files (empty logs to stdout)")
	flag.StringVar(&debugLevel, "debuglevel", "info", "Logging level: trace, debug, info, warn, error")
	flag.Parse()

	if configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err != nil {
			fmt.Fprintf(os.Stderr, "failed to read config %s: %v\n", configPath, err)
			os.Exit(1)
		}
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["host"] && fc.Host != "" {
			host = fc.Host
		}
		if !set["port"] && fc.Port != 0 {
			port = fc.Port
		}
		if !set["wsaddr"] && fc.WSAddr != "" {
			wsAddr = fc.WSAddr
		}
		if !set["players"] && fc.Players != 0 {
			players = fc.Players
		}
		if !set["eachcard"] && fc.EachCard != 0 {
			eachCard = fc.EachCard
		}
		if !set["startmoney"] && fc.StartMoney != 0 {
			startMoney = fc.StartMoney
		}
		if !set["startcards"] && fc.StartCards != 0 {
			startCards = fc.StartCards
		}
		if !set["tolerance"] && fc.Tolerance != 0 {
			tolerance = fc.Tolerance
		}
		if !set["timeoutseconds"] && fc.TimeoutSeconds != 0 {
			timeoutSec = fc.TimeoutSeconds
		}
		if !set["seed"] && fc.Seed != 0 {
			seed = fc.Seed
		}
		if !set["db"] && fc.DBPath != "" {
			dbPath = fc.DBPath
		}
		if !set["datadir"] && fc.DataDir != "" {
			dataDir = fc.DataDir
		}
		if !set["debuglevel"] && fc.DebugLevel != "" {
			debugLevel = fc.DebugLevel
		}
	}

	logFile := ""
	if dataDir != "" {
		if err := utils.EnsureDataDirExists(dataDir); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create data dir: %v\n", err)
			os.Exit(1)
		}
		logFile = filepath.Join(dataDir, "logs", "coupsrv.log")
	}
	logBackend, err := logging.NewLogBackend(logging.LogConfig{
		LogFile:     logFile,
		DebugLevel:  debugLevel,
		MaxLogFiles: 5,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	srv, err := server.New(server.Config{
		Host:           host,
		Port:           port,
		WSAddr:         wsAddr,
		Players:        players,
		EachCardInDeck: eachCard,
		StartMoney:     startMoney,
		StartCards:     startCards,
		Tolerance:      tolerance,
		Timeout:        time.Duration(timeoutSec) * time.Second,
		Seed:           seed,
		DBPath:         dbPath,
	}, logBackend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		os.Exit(1)
	}
	defer srv.Close()

	// Optionally write chosen port
	if portFile != "" {
		_, p, _ := net.SplitHostPort(srv.Addr())
		_ = os.WriteFile(portFile, []byte(p), 0600)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(os.Stderr, "received %v, shutting down\n", sig)
		cancel()
	}()

	conns, err := srv.AcceptPlayers(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to seat players: %v\n", err)
		os.Exit(1)
	}

	winner, err := srv.RunGame(ctx, conns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "game failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("player %d (%s) wins\n", winner.Number, winner.Name)
}
