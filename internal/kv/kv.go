package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when the slot has never been written.
var ErrNotFound = errors.New("kv: slot not found")

// Backend is a minimal key-value substrate holding named slots.
type Backend interface {
	// Get returns the raw slot payload or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the slot payload in a single write.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the slot. Deleting a missing slot is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Driver names a Backend implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverBolt     Driver = "bolt"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverS3       Driver = "s3"
)

// Drivers lists every supported driver in display order.
var Drivers = []Driver{DriverBolt, DriverSQLite, DriverPostgres, DriverS3, DriverMemory}

// ParseDriver resolves a driver name case-insensitively.
func ParseDriver(s string) (Driver, error) {
	name := Driver(strings.ToLower(strings.TrimSpace(s)))
	for _, d := range Drivers {
		if d == name {
			return d, nil
		}
	}

	return "", fmt.Errorf("unknown backend %q (want one of %s)", s, driverList())
}

// String implements pflag.Value.
func (d *Driver) String() string {
	return string(*d)
}

// Set implements pflag.Value.
func (d *Driver) Set(s string) error {
	parsed, err := ParseDriver(s)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// Type implements pflag.Value.
func (d *Driver) Type() string {
	return "backend"
}

func driverList() string {
	names := make([]string, len(Drivers))
	for i, d := range Drivers {
		names[i] = string(d)
	}

	return strings.Join(names, ", ")
}
