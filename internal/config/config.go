// Package config resolves runtime settings from defaults, an optional TOML
// file, an optional .env file and ROUTINED_* environment variables, in that
// order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Runtime struct {
	DataDir              string `toml:"data_dir"`
	StorageDriver        string `toml:"storage_driver"`
	DBPath               string `toml:"db_path"`
	StateFile            string `toml:"state_file"`
	LogLevel             string `toml:"log_level"`
	LogFile              string `toml:"log_file"`
	SubscriberBuffer     int    `toml:"subscriber_buffer"`
	ImportFormat         string `toml:"import_format"`
	DesktopNotifications bool   `toml:"desktop_notifications"`
}

type Options struct {
	// ConfigPath overrides the TOML location. An explicit path must exist.
	ConfigPath string
	// EnvFile defaults to .env in the working directory; a missing file is ignored.
	EnvFile string
}

func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "routined")
	}
	return ".routined"
}

func Default() Runtime {
	return Runtime{
		DataDir:          DefaultDataDir(),
		StorageDriver:    DriverSQLite,
		LogLevel:         "info",
		SubscriberBuffer: 16,
		ImportFormat:     "json",
	}
}

func Load(opts Options) (Runtime, error) {
	// .env only fills unset variables, so loading it first lets it pick the
	// config file without outranking the real environment.
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Runtime{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := Default()
	if dir, ok := getEnvString("ROUTINED_DATA_DIR"); ok {
		cfg.DataDir = dir
	}

	path, explicit := opts.ConfigPath, opts.ConfigPath != ""
	if !explicit {
		if p, ok := getEnvString("ROUTINED_CONFIG"); ok {
			path, explicit = p, true
		} else {
			path = filepath.Join(cfg.DataDir, "config.toml")
		}
	}
	if err := overlayFile(&cfg, path, explicit); err != nil {
		return Runtime{}, err
	}

	cfg = FromEnv(cfg)
	cfg.resolvePaths()
	if err := cfg.Validate(); err != nil {
		return Runtime{}, err
	}
	return cfg, nil
}

func overlayFile(cfg *Runtime, path string, required bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return nil
}

// FromEnv overlays ROUTINED_* variables. Unparseable values are ignored.
func FromEnv(base Runtime) Runtime {
	cfg := base
	if v, ok := getEnvString("ROUTINED_DATA_DIR"); ok {
		cfg.DataDir = v
	}
	if v, ok := getEnvString("ROUTINED_STORAGE_DRIVER"); ok {
		cfg.StorageDriver = strings.ToLower(v)
	}
	if v, ok := getEnvString("ROUTINED_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("ROUTINED_STATE_FILE"); ok {
		cfg.StateFile = v
	}
	if v, ok := getEnvString("ROUTINED_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("ROUTINED_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvInt("ROUTINED_SUBSCRIBER_BUFFER"); ok && v > 0 {
		cfg.SubscriberBuffer = v
	}
	if v, ok := getEnvString("ROUTINED_IMPORT_FORMAT"); ok {
		cfg.ImportFormat = strings.ToLower(v)
	}
	if v, ok := getEnvBool("ROUTINED_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	return cfg
}

func (c *Runtime) resolvePaths() {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "routined.db")
	}
	if c.StateFile == "" {
		c.StateFile = filepath.Join(c.DataDir, "routined.json")
	}
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "routined.log")
	}
}

// StoragePath is the location used by the selected driver.
func (c Runtime) StoragePath() string {
	if c.StorageDriver == DriverFile {
		return c.StateFile
	}
	return c.DBPath
}

func (c Runtime) Validate() error {
	switch c.StorageDriver {
	case DriverSQLite, DriverFile:
	default:
		return fmt.Errorf("%w: storage_driver %q", ErrInvalidConfig, c.StorageDriver)
	}
	switch c.ImportFormat {
	case "json", "yaml", "yml":
	default:
		return fmt.Errorf("%w: import_format %q", ErrInvalidConfig, c.ImportFormat)
	}
	if c.SubscriberBuffer <= 0 {
		return fmt.Errorf("%w: subscriber_buffer must be positive", ErrInvalidConfig)
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
