package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultAPIURL is the backend origin used when FACE_API_URL is not set.
const DefaultAPIURL = "https://facerec.gov.example"

type Config struct {
	API   APIConfig
	Draft DraftConfig
}

type APIConfig struct {
	URL     string        // face recognition backend origin
	Timeout time.Duration // per-request timeout
}

type DraftConfig struct {
	Dir string // directory for the draft recovery cache
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func Load() *Config {
	apiURL := os.Getenv("FACE_API_URL")
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}

	draftDir := os.Getenv("DRAFT_DIR")
	if draftDir == "" {
		draftDir = filepath.Join(os.TempDir(), "faceconsole-drafts")
	}

	return &Config{
		API: APIConfig{
			URL:     apiURL,
			Timeout: time.Duration(envInt("FACE_API_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Draft: DraftConfig{
			Dir: draftDir,
		},
	}
}
