package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything plantpulse reads from the environment. Identity is
// a pre-issued principal from the external provider; plantpulse never talks
// to the provider itself.
type Config struct {
	APIBaseURL string
	APITimeout time.Duration

	UserEmail string
	UserName  string
	UserPhoto string
	Token     string

	DBPath  string
	LogPath string
}

const defaultBaseURL = "https://plant-pulse-server.vercel.app"

// Load reads .env (when present) and the environment.
func Load() Config {
	// Missing .env is fine; the environment alone is enough.
	_ = godotenv.Load()

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}

	timeout := 15 * time.Second
	if secs, err := strconv.Atoi(get("PLANTPULSE_TIMEOUT_SECS", "")); err == nil && secs > 0 {
		timeout = time.Duration(secs) * time.Second
	}

	return Config{
		APIBaseURL: get("PLANTPULSE_API_URL", defaultBaseURL),
		APITimeout: timeout,
		UserEmail:  get("PLANTPULSE_EMAIL", ""),
		UserName:   get("PLANTPULSE_NAME", ""),
		UserPhoto:  get("PLANTPULSE_PHOTO", ""),
		Token:      get("PLANTPULSE_TOKEN", ""),
		DBPath:     get("PLANTPULSE_DB", ""),
		LogPath:    get("PLANTPULSE_LOG", ""),
	}
}

// DefaultDBPath returns ~/.config/plantpulse/plantpulse.db
func DefaultDBPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "plantpulse", "plantpulse.db"), nil
}

// DefaultLogPath returns ~/.config/plantpulse/plantpulse.log
func DefaultLogPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "plantpulse", "plantpulse.log"), nil
}
