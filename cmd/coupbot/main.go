package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/coupnet/coup/pkg/bot"
	"github.com/coupnet/coup/pkg/client"
	"github.com/coupnet/coup/pkg/conn"
)

var (
	configPath   = flag.String("config", "", "Path to TOML config file")
	addr         = flag.String("addr", "", "Server address as host:port")
	wsURL        = flag.String("ws", "", "Websocket URL, overrides -addr when set")
	name         = flag.String("name", "", "Bot name")
	strategy     = flag.String("strategy", "", "Strategy: simple or random")
	seed         = flag.Int64("seed", 0, "Random strategy seed, 0 picks one from the clock")
	wrongChance  = flag.Float64("wrongchance", 0, "Chance per prompt of answering illegally")
	onlyOneWrong = flag.Bool("onlyonewrong", false, "Stop misbehaving after the first illegal answer")
	dataDir      = flag.String("datadir", "", "Data directory for bot logs")
	debugLevel   = flag.String("debuglevel", "", "Debug level")
)

func realMain() error {
	// Parse flags
	flag.Parse()

	// Load configuration
	cfg, err := bot.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("configuration error: %v", err)
	}

	// Override config with flags if provided
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *wsURL != "" {
		cfg.WSURL = *wsURL
	}
	if *name != "" {
		cfg.Name = *name
	}
	if *strategy != "" {
		cfg.Strategy = *strategy
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *wrongChance != 0 {
		cfg.WrongChance = *wrongChance
	}
	if *onlyOneWrong {
		cfg.OnlyOneWrong = true
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *debugLevel != "" {
		cfg.DebugLevel = *debugLevel
	}

	strat, err := cfg.Build()
	if err != nil {
		return err
	}

	logBackend, err := cfg.SetupLogging()
	if err != nil {
		return err
	}
	defer logBackend.Close()
	log := logBackend.Logger("BOT")

	// Connect over websocket when a URL is given, plain TCP otherwise.
	var c *conn.Conn
	if cfg.WSURL != "" {
		c, err = conn.DialWS(cfg.WSURL, 0)
	} else {
		c, err = conn.Dial(cfg.Addr, 0)
	}
	if err != nil {
		return fmt.Errorf("failed to connect: %v", err)
	}
	log.Infof("Connected as %s, waiting for the game to start", cfg.Name)

	cl := client.New(c, client.Config{
		Strategy: strat,
		Logger:   logBackend.Logger("CLNT"),
	})

	// Run the bot
	err = cl.Run()
	log.Infof("Bot exited: %v", err)
	return err
}

func main() {
	if err := realMain(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
