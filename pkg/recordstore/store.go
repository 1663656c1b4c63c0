// Package recordstore persists named collections of records as whole JSON
// documents. Every write replaces the full collection atomically, and all
// read-modify-write cycles on one collection are serialized through a Locker.
package recordstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/northbeam-studio/studio-admin/pkg/logger"
	"github.com/northbeam-studio/studio-admin/pkg/metrics"
	"go.uber.org/multierr"
)

const (
	opLoad    = "load"
	opReplace = "replace"
	opLock    = "lock"
	opDecode  = "decode"
	opEncode  = "encode"
)

var collectionNameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)

// Backend is the durable medium behind the store.
type Backend interface {
	// Load returns the stored JSON array, or nil when the collection has
	// never been written.
	Load(ctx context.Context, collection string) ([]byte, error)
	// Replace swaps the whole collection. Readers see either the old or the
	// new document, never a mix.
	Replace(ctx context.Context, collection string, data []byte) error
	Close() error
}

// Pinger is implemented by backends that can report readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configure a Store.
type Options struct {
	Backend   Backend
	Locker    Locker
	IOTimeout time.Duration
	Metrics   *metrics.StoreMetrics
	Logger    *logger.Logger
	// Closers are released after the backend on Close, e.g. shared clients.
	Closers []io.Closer
}

// Store is the process-wide handle on the record collections. Create one per
// process and pass it to the repositories.
type Store struct {
	backend   Backend
	locker    Locker
	ioTimeout time.Duration
	metrics   *metrics.StoreMetrics
	logg      *logger.Logger
	closers   []io.Closer
}

// New builds a Store. A nil Locker defaults to an in-process LocalLocker.
func New(opts Options) (*Store, error) {
	if opts.Backend == nil {
		return nil, errors.New("record store backend is required")
	}
	locker := opts.Locker
	if locker == nil {
		locker = NewLocalLocker()
	}
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{
		backend:   opts.Backend,
		locker:    locker,
		ioTimeout: opts.IOTimeout,
		metrics:   opts.Metrics,
		logg:      logg,
		closers:   opts.Closers,
	}, nil
}

// NewMemory returns a Store over a fresh MemoryBackend.
func NewMemory() *Store {
	store, _ := New(Options{Backend: NewMemoryBackend()})
	return store
}

// Load returns the raw JSON array for collection (nil when uninitialized).
func (s *Store) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := validateName(collection); err != nil {
		return nil, err
	}
	return s.load(ctx, collection)
}

// Replace overwrites collection under its lock.
func (s *Store) Replace(ctx context.Context, collection string, data []byte) error {
	return s.Update(ctx, collection, func([]byte) ([]byte, error) {
		return data, nil
	})
}

// Update runs one read-modify-write cycle on collection while holding its
// lock. fn receives the current document and returns the next one; returning
// ErrNoChange skips the write. Errors from fn are returned unchanged.
func (s *Store) Update(ctx context.Context, collection string, fn func(current []byte) ([]byte, error)) error {
	if err := validateName(collection); err != nil {
		return err
	}

	waitStart := time.Now()
	unlock, err := s.locker.Lock(ctx, collection)
	if err != nil {
		s.metrics.IncFailure(collection, opLock)
		return unavailable(opLock, collection, err)
	}
	defer unlock()
	s.metrics.ObserveLockWait(collection, time.Since(waitStart))

	current, err := s.load(ctx, collection)
	if err != nil {
		return err
	}

	next, err := fn(current)
	if errors.Is(err, ErrNoChange) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.replace(ctx, collection, next)
}

// Ping reports whether the backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if pinger, ok := s.backend.(Pinger); ok {
		ctx, cancel := s.withTimeout(ctx)
		defer cancel()
		if err := pinger.Ping(ctx); err != nil {
			return unavailable("ping", "", err)
		}
	}
	return nil
}

// Close releases the backend and any shared clients.
func (s *Store) Close() error {
	err := s.backend.Close()
	for _, closer := range s.closers {
		err = multierr.Append(err, closer.Close())
	}
	return err
}

func (s *Store) load(ctx context.Context, collection string) ([]byte, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	data, err := s.backend.Load(ctx, collection)
	s.metrics.ObserveDuration(collection, opLoad, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(collection, opLoad)
		return nil, unavailable(opLoad, collection, err)
	}
	return data, nil
}

func (s *Store) replace(ctx context.Context, collection string, data []byte) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	start := time.Now()
	err := s.backend.Replace(ctx, collection, data)
	s.metrics.ObserveDuration(collection, opReplace, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(collection, opReplace)
		s.logg.Error(s.logg.WithCollection(ctx, collection), "record store replace failed", err)
		return unavailable(opReplace, collection, err)
	}
	return nil
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.ioTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.ioTimeout)
}

func validateName(collection string) error {
	if !collectionNameRe.MatchString(collection) {
		return fmt.Errorf("invalid collection name %q", collection)
	}
	return nil
}
