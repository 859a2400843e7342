package params

import (
	"os"
	"path/filepath"

	"github.com/inovacc/nutrilog/internal/application"
)

// Environment variables read by nutrilog.
const (
	EnvAPIURL   = "NUTRILOG_API_URL"
	EnvToken    = "NUTRILOG_TOKEN"
	EnvTimezone = "NUTRILOG_TZ"
	EnvLogLevel = "NUTRILOG_LOG_LEVEL"
)

// File names inside the application directory.
const (
	ConfigFileName = "config.ini"
	BoltFileName   = "nutrilog.bolt"
	SQLiteFileName = "nutrilog.db"
	KeyFileName    = ".nutrilog_key"
	DotEnvFileName = ".env"
)

// AppdataDir returns the application directory, creating it when missing.
func AppdataDir() (string, error) {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}

	return dir, nil
}

// AppdataFile joins name onto the application directory.
func AppdataFile(name string) (string, error) {
	dir, err := AppdataDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, name), nil
}
