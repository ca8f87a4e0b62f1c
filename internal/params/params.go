package params

import (
	"path/filepath"

	"github.com/inovacc/clientdb/internal/application"
)

const (
	// ConfigFileName is the INI file read from the appdata directory.
	ConfigFileName = "clientdb.ini"

	// BoltFileName is the default bbolt slot file.
	BoltFileName = "clientdb.bolt"

	// SQLiteFileName is the default sqlite slot file.
	SQLiteFileName = "clientdb.db"
)

// DefaultConfigPath returns the location of the optional INI config file.
func DefaultConfigPath() string {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return ConfigFileName
	}

	return filepath.Join(dir, ConfigFileName)
}

// DefaultDataPath returns the default data file for a file based backend.
func DefaultDataPath(fileName string) string {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return fileName
	}

	return filepath.Join(dir, fileName)
}
