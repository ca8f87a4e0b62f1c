package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/inovacc/clientdb/internal/kv"
	"github.com/inovacc/clientdb/internal/params"
	"github.com/inovacc/clientdb/internal/store"
	"github.com/spf13/pflag"
	"gopkg.in/ini.v1"
)

// Config is the effective application configuration.
type Config struct {
	Storage  Storage
	S3       kv.S3Config
	Postgres Postgres
	Log      Log
}

// Storage selects the slot backend.
type Storage struct {
	Backend kv.Driver
	Path    string // data file for bolt/sqlite; empty means the appdata default
	Key     string
}

// Postgres holds the postgres backend settings.
type Postgres struct {
	DSN string
}

// Log configures the slog handler.
type Log struct {
	Level  string
	Format string
	File   string
}

// Default returns the configuration used when no file or flag says otherwise.
func Default() Config {
	return Config{
		Storage: Storage{
			Backend: kv.DriverBolt,
			Key:     store.DefaultKey,
		},
		S3:  kv.S3Config{Region: "us-east-1"},
		Log: Log{Level: "warn", Format: "text"},
	}
}

// Load reads an INI file over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("loading config %s: %w", path, err)
	}

	if err := cfg.apply(file); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) apply(file *ini.File) error {
	storage := file.Section("storage")
	if v := storage.Key("backend").String(); v != "" {
		if err := c.Storage.Backend.Set(v); err != nil {
			return err
		}
	}

	c.Storage.Path = storage.Key("path").MustString(c.Storage.Path)
	c.Storage.Key = storage.Key("key").MustString(c.Storage.Key)

	s3 := file.Section("s3")
	c.S3.Bucket = s3.Key("bucket").MustString(c.S3.Bucket)
	c.S3.Region = s3.Key("region").MustString(c.S3.Region)
	c.S3.Endpoint = s3.Key("endpoint").MustString(c.S3.Endpoint)
	c.S3.Prefix = s3.Key("prefix").MustString(c.S3.Prefix)
	c.S3.PathStyle = s3.Key("path_style").MustBool(c.S3.PathStyle)
	c.S3.AccessKeyID = s3.Key("access_key_id").MustString(c.S3.AccessKeyID)
	c.S3.SecretAccessKey = s3.Key("secret_access_key").MustString(c.S3.SecretAccessKey)

	c.Postgres.DSN = file.Section("postgres").Key("dsn").MustString(c.Postgres.DSN)

	log := file.Section("log")
	c.Log.Level = log.Key("level").MustString(c.Log.Level)
	c.Log.Format = log.Key("format").MustString(c.Log.Format)
	c.Log.File = log.Key("file").MustString(c.Log.File)

	return nil
}

// Flag names shared by the command tree.
const (
	FlagBackend   = "backend"
	FlagPath      = "path"
	FlagKey       = "key"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagLogFile   = "log-file"
)

// Overrides carries flag values that win over the file.
type Overrides struct {
	Backend   kv.Driver
	Path      string
	Key       string
	LogLevel  string
	LogFormat string
	LogFile   string
}

// Register binds the override flags onto fs.
func (o *Overrides) Register(fs *pflag.FlagSet) {
	fs.Var(&o.Backend, FlagBackend, "slot backend: bolt, sqlite, postgres, s3, memory")
	fs.StringVar(&o.Path, FlagPath, "", "data file for the bolt and sqlite backends")
	fs.StringVar(&o.Key, FlagKey, "", "slot key holding the client list")
	fs.StringVar(&o.LogLevel, FlagLogLevel, "", "log level: debug, info, warn, error")
	fs.StringVar(&o.LogFormat, FlagLogFormat, "", "log format: text, json")
	fs.StringVar(&o.LogFile, FlagLogFile, "", "write logs to this file")
}

// Apply copies every flag the user actually set onto cfg.
func (o *Overrides) Apply(cfg *Config, fs *pflag.FlagSet) {
	if fs.Changed(FlagBackend) {
		cfg.Storage.Backend = o.Backend
	}

	if fs.Changed(FlagPath) {
		cfg.Storage.Path = o.Path
	}

	if fs.Changed(FlagKey) {
		cfg.Storage.Key = o.Key
	}

	if fs.Changed(FlagLogLevel) {
		cfg.Log.Level = o.LogLevel
	}

	if fs.Changed(FlagLogFormat) {
		cfg.Log.Format = o.LogFormat
	}

	if fs.Changed(FlagLogFile) {
		cfg.Log.File = o.LogFile
	}
}

// BackendOptions resolves the kv options, filling in default file paths.
func (c Config) BackendOptions() kv.Options {
	path := c.Storage.Path

	if path == "" {
		switch c.Storage.Backend {
		case kv.DriverSQLite:
			path = params.DefaultDataPath(params.SQLiteFileName)
		default:
			path = params.DefaultDataPath(params.BoltFileName)
		}
	}

	return kv.Options{
		Driver: c.Storage.Backend,
		Path:   path,
		DSN:    c.Postgres.DSN,
		S3:     c.S3,
	}
}

// INI renders cfg as an INI document, masking secrets.
func (c Config) INI() (*ini.File, error) {
	file := ini.Empty()

	sections := []struct {
		name   string
		values [][2]string
	}{
		{"storage", [][2]string{
			{"backend", string(c.Storage.Backend)},
			{"path", c.BackendOptions().Path},
			{"key", c.Storage.Key},
		}},
		{"s3", [][2]string{
			{"bucket", c.S3.Bucket},
			{"region", c.S3.Region},
			{"endpoint", c.S3.Endpoint},
			{"prefix", c.S3.Prefix},
			{"path_style", fmt.Sprintf("%t", c.S3.PathStyle)},
			{"access_key_id", c.S3.AccessKeyID},
			{"secret_access_key", mask(c.S3.SecretAccessKey)},
		}},
		{"postgres", [][2]string{
			{"dsn", c.Postgres.DSN},
		}},
		{"log", [][2]string{
			{"level", c.Log.Level},
			{"format", c.Log.Format},
			{"file", c.Log.File},
		}},
	}

	for _, s := range sections {
		sec, err := file.NewSection(s.name)
		if err != nil {
			return nil, err
		}

		for _, kvp := range s.values {
			if _, err := sec.NewKey(kvp[0], kvp[1]); err != nil {
				return nil, err
			}
		}
	}

	return file, nil
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}

	return "****"
}
