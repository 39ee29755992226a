package kiosk

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	ServerURL string `toml:"server_url"`
	// RefreshInterval is how often the roster is reloaded.
	RefreshInterval Duration `toml:"refresh_interval"`
	// FlashDuration is how long a success message stays on screen.
	FlashDuration  Duration `toml:"flash_duration"`
	RequestTimeout Duration `toml:"request_timeout"`
}

// Duration decodes TOML strings such as "30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func DefaultConfig() *Config {
	return &Config{
		ServerURL:       "http://localhost:8080",
		RefreshInterval: Duration{30 * time.Second},
		FlashDuration:   Duration{3 * time.Second},
		RequestTimeout:  Duration{10 * time.Second},
	}
}

func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".timeclock"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kiosk.toml"), nil
}

// LoadConfig reads path, writing the defaults there first if it does not exist.
// An empty path means ~/.timeclock/kiosk.toml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		var err error
		if path, err = ConfigPath(); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := SaveConfig(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
