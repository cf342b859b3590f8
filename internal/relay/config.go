package relay

import (
	"fmt"
	"os"
	"time"
)

// Config holds the relay's runtime settings, sourced from the environment.
//
// Variables:
//
//	ADDR              listen address, e.g. ":3001"
//	PYTHON_BIN        python interpreter used to run the generation script
//	GENERATE_SCRIPT   path to the generation script
//	UPLOAD_DIR        directory uploaded images are stored in
//	PUBLIC_BASE_URL   base URL uploaded images are served from
//	GENERATE_TIMEOUT  per-request script timeout, Go duration syntax
type Config struct {
	Addr            string
	PythonBin       string
	GenerateScript  string
	UploadDir       string
	PublicBaseURL   string
	GenerateTimeout time.Duration
}

// LoadConfig reads the relay configuration from the environment, applying
// defaults for everything except GENERATE_SCRIPT, which is required.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Addr:            envOr("ADDR", ":3001"),
		PythonBin:       envOr("PYTHON_BIN", "python3"),
		GenerateScript:  os.Getenv("GENERATE_SCRIPT"),
		UploadDir:       envOr("UPLOAD_DIR", "uploads"),
		PublicBaseURL:   envOr("PUBLIC_BASE_URL", "http://127.0.0.1:3001"),
		GenerateTimeout: 120 * time.Second,
	}

	if cfg.GenerateScript == "" {
		return nil, fmt.Errorf("GENERATE_SCRIPT must be set")
	}

	if v := os.Getenv("GENERATE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid GENERATE_TIMEOUT: %w", err)
		}
		cfg.GenerateTimeout = d
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
