package application

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// AppName names the binary, the config directory and the config file.
const AppName = "clientdb"

// HomeEnv overrides the application directory when set.
const HomeEnv = "CLIENTDB_HOME"

// Version is overridden at build time with -ldflags "-X ...application.Version=v1.2.3".
var Version = "0.1.0"

var dirOnce = sync.OnceValues(resolveDir)

// GetApplicationDirectory returns where clientdb keeps its config and data files.
//
//	$CLIENTDB_HOME when set
//	Windows: %LOCALAPPDATA%\clientdb
//	others:  $XDG_CONFIG_HOME/clientdb or ~/.config/clientdb
func GetApplicationDirectory() (string, error) {
	return dirOnce()
}

func resolveDir() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return filepath.Clean(home), nil
	}

	base, err := baseDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(base, AppName), nil
}

func baseDir() (string, error) {
	if runtime.GOOS == "windows" {
		return os.UserCacheDir()
	}

	return os.UserConfigDir()
}
