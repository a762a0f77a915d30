package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	ListenAddr      string `json:"listenAddr"`
	DatabasePath    string `json:"databasePath"`
	StaticDir       string `json:"staticDir"`
	SessionTTLHours int    `json:"sessionTTLHours"`
	OpenBrowser     bool   `json:"openBrowser"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./stockroom_config.json"

func defaults(c Config) Config {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "./stockroom.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "static"
	}
	if c.SessionTTLHours == 0 {
		c.SessionTTLHours = 12
	}
	return c
}

// LoadConfig reads the JSON config file, falling back to defaults when the
// file is missing. Environment variables override the file afterwards so a
// .env deployment needs no config file at all.
func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	loaded := Config{}
	file, err := os.ReadFile(configFilePath)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}
	if err == nil {
		if err := json.Unmarshal(file, &loaded); err != nil {
			return Config{}, err
		}
	}

	if addr := os.Getenv("STOCKROOM_ADDR"); addr != "" {
		loaded.ListenAddr = addr
	}
	if dbPath := os.Getenv("STOCKROOM_DB"); dbPath != "" {
		loaded.DatabasePath = dbPath
	}
	if staticDir := os.Getenv("STOCKROOM_STATIC_DIR"); staticDir != "" {
		loaded.StaticDir = staticDir
	}

	cfg = defaults(loaded)
	return cfg, nil
}

func SaveConfig(newCfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	newCfg = defaults(newCfg)
	file, err := json.MarshalIndent(newCfg, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(configFilePath, file, 0644); err != nil {
		return err
	}
	cfg = newCfg
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
