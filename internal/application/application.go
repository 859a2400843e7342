package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// AppName is the application name used for directories and identification
	AppName = "nutrilog"

	// AppExeName is the executable name (without extension)
	AppExeName = "nutrilog"

	// Version is reported by `nutrilog version` and sent as the User-Agent suffix
	Version = "0.3.0"

	// HomeEnvVar overrides the application directory
	HomeEnvVar = "NUTRILOG_HOME"
)

var (
	once   sync.Once
	appDir string
	errDir error
)

// GetApplicationDirectory returns the nutrilog configuration directory path.
// NUTRILOG_HOME wins when set.
// Linux: ~/.config/nutrilog (via os.UserConfigDir)
// Windows: C:\Users\{username}\AppData\Local\nutrilog (via os.UserCacheDir)
func GetApplicationDirectory() (string, error) {
	once.Do(lazyLoad)

	if errDir != nil {
		return "", errDir
	}

	return appDir, nil
}

func lazyLoad() {
	appDir, errDir = resolveDirectory(os.Getenv(HomeEnvVar), runtime.GOOS)
}

func resolveDirectory(override, goos string) (string, error) {
	if override != "" {
		return filepath.Clean(override), nil
	}

	var (
		baseDir string
		err     error
	)

	switch goos {
	case "windows":
		// Windows: use AppData\Local (via UserCacheDir)
		baseDir, err = os.UserCacheDir()
	default:
		// Linux/others: use ~/.config (via UserConfigDir)
		baseDir, err = os.UserConfigDir()
	}

	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(baseDir, AppName), nil
}
