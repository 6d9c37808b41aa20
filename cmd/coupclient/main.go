package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/pterm/pterm"
	"github.com/vctt94/bisonbotkit/logging"

	"github.com/coupnet/coup/pkg/client"
	"github.com/coupnet/coup/pkg/conn"
	"github.com/coupnet/coup/pkg/server"
	"github.com/coupnet/coup/pkg/ui"
	"github.com/coupnet/coup/pkg/utils"
)

// fileConfig mirrors the optional -config TOML file. Flags given on the
// command line win over file values.
type fileConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Name       string `toml:"name"`
	DataDir    string `toml:"datadir"`
	DebugLevel string `toml:"debuglevel"`
}

func main() {
	var (
		configPath string
		host       string
		port       int
		wsURL      string
		name       string
		dataDir    string
		debugLevel string
	)
	flag.StringVar(&configPath, "config", "", "Path to TOML config file")
	flag.StringVar(&host, "host", server.DefaultHost, "Server host")
	flag.IntVar(&port, "port", server.DefaultPort, "Server port")
	flag.StringVar(&wsURL, "ws", "", "Websocket URL (overrides host/port, e.g. ws://127.0.0.1:7464/ws)")
	flag.StringVar(&name, "name", "", "Player name (asked interactively when empty)")
	flag.StringVar(&dataDir, "datadir", "", "Directory for log files (empty disables file logging)")
	flag.StringVar(&debugLevel, "debuglevel", "warn", "Logging level: trace, debug, info, warn, error")
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
		if !set["name"] && fc.Name != "" {
			name = fc.Name
		}
		if !set["datadir"] && fc.DataDir != "" {
			dataDir = fc.DataDir
		}
		if !set["debuglevel"] && fc.DebugLevel != "" {
			debugLevel = fc.DebugLevel
		}
	}

	// Keep log noise away from the interactive terminal unless a data
	// dir routes it to a file.
	logFile := ""
	if dataDir != "" {
		if err := utils.EnsureDataDirExists(dataDir); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create data dir: %v\n", err)
			os.Exit(1)
		}
		logFile = filepath.Join(dataDir, "logs", "coupclient.log")
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

	addr := fmt.Sprintf("%s:%d", host, port)
	var c *conn.Conn
	if wsURL != "" {
		addr = wsURL
		c, err = conn.DialWS(wsURL, 0)
	} else {
		c, err = conn.Dial(addr, 0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to %s: %v\n", addr, err)
		os.Exit(1)
	}
	pterm.Info.Printfln("Connected to %s, waiting for the game to start.", addr)

	console := ui.NewConsole(name)
	rt := client.New(c, client.Config{
		Strategy: console,
		Notifier: console,
		Logger:   logBackend.Logger("CLNT"),
	})
	if err := rt.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "connection ended: %v\n", err)
		os.Exit(1)
	}
}
