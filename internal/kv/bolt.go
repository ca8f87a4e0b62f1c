package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

const boltBucketSlots = "slots" // key: slot name -> raw payload

// Bolt stores slots in a single bbolt bucket.
type Bolt struct {
	storage *bbolt.DB
}

// NewBolt opens (or creates) a bbolt file at path.
func NewBolt(path string) (*Bolt, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt database: %w", err)
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketSlots))
		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

func (b *Bolt) Get(_ context.Context, key string) ([]byte, error) {
	var data []byte

	err := b.storage.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketSlots)).Get([]byte(key))
		if v == nil {
			return ErrNotFound
		}

		// v is only valid inside the transaction
		data = append([]byte(nil), v...)

		return nil
	})

	return data, err
}

func (b *Bolt) Put(_ context.Context, key string, value []byte) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSlots)).Put([]byte(key), value)
	})
}

func (b *Bolt) Delete(_ context.Context, key string) error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSlots)).Delete([]byte(key))
	})
}

// Close closes the database.
func (b *Bolt) Close() error {
	return b.storage.Close()
}
