package bot

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/vctt94/bisonbotkit/logging"

	"github.com/coupnet/coup/pkg/client"
	"github.com/coupnet/coup/pkg/utils"
)

// Config collects everything a bot process needs to join a game.
type Config struct {
	Addr  string `toml:"addr"`  // server address as host:port
	WSURL string `toml:"wsurl"` // websocket URL, overrides Addr when set
	Name  string `toml:"name"`

	Strategy     string  `toml:"strategy"` // simple or random
	Seed         int64   `toml:"seed"`
	WrongChance  float64 `toml:"wrongchance"`
	OnlyOneWrong bool    `toml:"onlyonewrong"`

	DataDir    string `toml:"datadir"`
	DebugLevel string `toml:"debuglevel"`
}

// LoadConfig reads the TOML file at path over the defaults. An empty
// path returns just the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:       "127.0.0.1:7463",
		Name:       "bot",
		Strategy:   "simple",
		DebugLevel: "info",
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %v", err)
		}
	}
	return cfg, nil
}

// Build constructs the configured strategy.
func (cfg *Config) Build() (client.Strategy, error) {
	switch cfg.Strategy {
	case "simple":
		return NewSimple(cfg.Name), nil
	case "random":
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return NewRandom(cfg.Name, seed, cfg.WrongChance, cfg.OnlyOneWrong), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q (want simple or random)", cfg.Strategy)
	}
}

// SetupLogging sets up logging for bot processes. With a data dir the
// log goes to a rotated file under <datadir>/logs, otherwise to stdout.
func (cfg *Config) SetupLogging() (*logging.LogBackend, error) {
	logFile := ""
	if cfg.DataDir != "" {
		if err := utils.EnsureDataDirExists(cfg.DataDir); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %v", err)
		}
		logFile = filepath.Join(cfg.DataDir, "logs", "coupbot.log")
	}

	logBackend, err := logging.NewLogBackend(logging.LogConfig{
		LogFile:     logFile,
		DebugLevel:  cfg.DebugLevel,
		MaxLogFiles: 5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %v", err)
	}
	return logBackend, nil
}
