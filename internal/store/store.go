package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/inovacc/clientdb/internal/kv"
	"github.com/inovacc/clientdb/internal/model"
)

// DefaultKey is the slot the client list is stored under.
const DefaultKey = "db_client"

// Store defines the client list operations used by the app. Records are
// addressed by their position in the list.
type Store interface {
	Read(ctx context.Context) ([]model.Client, error)
	Create(ctx context.Context, client model.Client) (int, error)
	Update(ctx context.Context, index int, client model.Client) error
	Delete(ctx context.Context, index int) error
	Clear(ctx context.Context) error
}

var _ Store = (*SlotStore)(nil)

// SlotStore keeps the whole client list as one JSON array in a kv slot. It
// holds no copy of the list: every call reads the slot again and every
// mutation writes the full array back with a single Put.
type SlotStore struct {
	backend kv.Backend
	key     string
	logger  *slog.Logger
	newID   func() string
}

// Option configures a SlotStore.
type Option func(*SlotStore)

// WithKey overrides the slot key.
func WithKey(key string) Option {
	return func(s *SlotStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for recoverable conditions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *SlotStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator replaces the UUID generator (useful in tests).
func WithIDGenerator(fn func() string) Option {
	return func(s *SlotStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates a SlotStore over backend.
func New(backend kv.Backend, opts ...Option) *SlotStore {
	s := &SlotStore{
		backend: backend,
		key:     DefaultKey,
		logger:  slog.Default(),
		newID:   uuid.NewString,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Key returns the slot key in use.
func (s *SlotStore) Key() string {
	return s.key
}

// Read returns the persisted list. A missing, empty or malformed slot reads
// as an empty list; only backend failures are returned.
func (s *SlotStore) Read(ctx context.Context) ([]model.Client, error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []model.Client{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", s.key, err)
	}

	return s.decode(data), nil
}

// Raw returns the slot payload exactly as stored, or "[]" when absent.
func (s *SlotStore) Raw(ctx context.Context) ([]byte, error) {
	data, err := s.backend.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return []byte("[]"), nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading slot %q: %w", s.key, err)
	}

	return data, nil
}

// Create appends client and returns its index.
func (s *SlotStore) Create(ctx context.Context, client model.Client) (int, error) {
	clients, err := s.Read(ctx)
	if err != nil {
		return 0, err
	}

	if client.ID == "" {
		client.ID = s.newID()
	}

	clients = append(clients, client)

	if err := s.write(ctx, clients); err != nil {
		return 0, err
	}

	return len(clients) - 1, nil
}

// Update replaces the record at index.
func (s *SlotStore) Update(ctx context.Context, index int, client model.Client) error {
	clients, err := s.Read(ctx)
	if err != nil {
		return err
	}

	if err := checkIndex(index, len(clients)); err != nil {
		return err
	}

	// an edit keeps the record's handle unless the caller supplies one
	if client.ID == "" {
		client.ID = clients[index].ID
	}

	clients[index] = client

	return s.write(ctx, clients)
}

// Delete removes the record at index, shifting later records down by one.
func (s *SlotStore) Delete(ctx context.Context, index int) error {
	clients, err := s.Read(ctx)
	if err != nil {
		return err
	}

	if err := checkIndex(index, len(clients)); err != nil {
		return err
	}

	clients = append(clients[:index], clients[index+1:]...)

	return s.write(ctx, clients)
}

// Clear resets the slot to an empty list.
func (s *SlotStore) Clear(ctx context.Context) error {
	return s.write(ctx, []model.Client{})
}

// Purge removes the slot itself. Reads then see an empty list again.
func (s *SlotStore) Purge(ctx context.Context) error {
	if err := s.backend.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("deleting slot %q: %w", s.key, err)
	}

	return nil
}

// Replace overwrites the whole list.
func (s *SlotStore) Replace(ctx context.Context, clients []model.Client) error {
	if clients == nil {
		clients = []model.Client{}
	}

	return s.write(ctx, clients)
}

func (s *SlotStore) decode(data []byte) []model.Client {
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Client{}
	}

	var clients []model.Client
	if err := json.Unmarshal(data, &clients); err != nil {
		s.logger.Debug("ignoring malformed client slot", "key", s.key, "error", err)
		return []model.Client{}
	}

	// "null" decodes without error into a nil slice
	if clients == nil {
		return []model.Client{}
	}

	return clients
}

func (s *SlotStore) write(ctx context.Context, clients []model.Client) error {
	data, err := json.Marshal(clients)
	if err != nil {
		return fmt.Errorf("encoding clients: %w", err)
	}

	if err := s.backend.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("writing slot %q: %w", s.key, err)
	}

	return nil
}
