// Package kv provides the key-value substrate that holds the client slot.
//
// A slot is a named byte payload. The [Backend] interface offers whole-value
// Get and Put only; callers rewrite the entire payload on every change and
// rely on each driver making a single Put all-or-nothing.
//
// # Drivers
//
//   - memory: process-local map, used by tests and throwaway sessions
//   - bolt: a bbolt file with one "slots" bucket (default)
//   - sqlite: a "slots" table in a pure Go SQLite file
//   - postgres: a "slots" table reached through the pgx database/sql driver
//   - s3: one object per slot in an S3 or MinIO bucket
//
// Use [Open] to build a backend from [Options]:
//
//	backend, err := kv.Open(ctx, kv.Options{Driver: kv.DriverBolt, Path: path})
//	data, err := backend.Get(ctx, "db_client")
package kv
