package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cosmossdk.io/log"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/strangelove-ventures/ata-devtool/types"
	"github.com/strangelove-ventures/ata-devtool/ui"
)

// AppState is the modifiable state of the application.
type AppState struct {
	Config     *types.Config
	ConfigPath string

	LogLevel string
	JSON     bool
	Logger   log.Logger

	// UI is the terminal used by the form, submit and tokens commands.
	UI ui.UI
}

func NewAppState() *AppState {
	return &AppState{}
}

// InitAppState loads .env, the config file and the logger.
func (a *AppState) InitAppState() error {
	a.InitLogger()
	if a.UI == nil {
		a.UI = ui.NewTerminalUI()
	}
	if a.Config != nil {
		return nil
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		a.Logger.Error("Unable to load .env file", "error", err)
	}

	cfg, err := ParseConfig(a.ConfigPath)
	if err != nil {
		return err
	}
	a.Config = cfg
	return nil
}

// InitLogger creates a logger at the configured level, defaulting to info.
func (a *AppState) InitLogger() {
	level := zerolog.InfoLevel
	switch a.LogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	opts := []log.Option{log.LevelOption(level)}
	if a.JSON {
		opts = append(opts, log.OutputJSONOption())
	}
	a.Logger = log.NewLogger(os.Stderr, opts...)
}

// ParseConfig reads the yaml config at path, applies the environment
// overrides and defaults, and validates the result. A missing file at the
// default path is not an error, so the tool can run from env alone.
func ParseConfig(path string) (*types.Config, error) {
	cfg := new(types.Config)

	if path == "" {
		path = defaultConfigPath
	}
	bz, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(bz, cfg); err != nil {
			return nil, fmt.Errorf("error unmarshalling config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath:
	default:
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}

	cfg.ApplyEnv()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
