package kv

import (
	"context"
	"fmt"
)

// Options selects and configures a Backend.
type Options struct {
	Driver Driver

	// Path is the data file for the bolt and sqlite drivers.
	Path string

	// DSN is the connection string for the postgres driver.
	DSN string

	S3 S3Config
}

// Open constructs the Backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverBolt, "":
		if opts.Path == "" {
			return nil, fmt.Errorf("bolt backend requires a path")
		}

		return NewBolt(opts.Path)
	case DriverSQLite:
		if opts.Path == "" {
			return nil, fmt.Errorf("sqlite backend requires a path")
		}

		return NewSQLite(ctx, opts.Path)
	case DriverPostgres:
		return NewPostgres(ctx, opts.DSN)
	case DriverS3:
		return NewS3(ctx, opts.S3)
	default:
		return nil, fmt.Errorf("unsupported backend: %s", opts.Driver)
	}
}
