package store

import (
	"slices"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/wippyai/nbt/compress"
	"github.com/wippyai/nbt/errors"
	"github.com/wippyai/nbt/tag"
)

var documentBucket = []byte("documents")

// Store keeps compressed documents in a bbolt database, keyed by name.
// It is safe for concurrent use.
type Store struct {
	db   *bolt.DB
	comp compress.Compressor
	cfg  config
}

// Option configures a Store.
type Option func(*config)

type config struct {
	format   compress.Format
	compOpts []compress.Option
	tagOpts  []tag.Option
	timeout  time.Duration
	readOnly bool
	log      *zap.Logger
}

// WithCompression selects the envelope documents are stored in.
// The default is gzip.
func WithCompression(format compress.Format, opts ...compress.Option) Option {
	return func(c *config) {
		c.format = format
		c.compOpts = opts
	}
}

// WithTagOptions passes options to the tag encoder and decoder.
func WithTagOptions(opts ...tag.Option) Option {
	return func(c *config) {
		c.tagOpts = append(c.tagOpts, opts...)
	}
}

// WithTimeout bounds how long Open waits for the database file lock.
func WithTimeout(d time.Duration) Option {
	if d < 0 {
		panic("timeout can't be < 0")
	}
	return func(c *config) {
		c.timeout = d
	}
}

// WithReadOnly opens the database read-only, so several processes can
// share it.
func WithReadOnly() Option {
	return func(c *config) {
		c.readOnly = true
	}
}

// WithLogger sets the logger for store events.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		c.log = l
	}
}

// Open opens or creates the database at path.
func Open(path string, opts ...Option) (*Store, error) {
	cfg := config{
		format:  compress.Gzip,
		timeout: time.Second,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	comp, err := compress.New(cfg.format, cfg.compOpts...)
	if err != nil {
		return nil, err
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: cfg.timeout, ReadOnly: cfg.readOnly})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "open "+path)
	}

	if !cfg.readOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(documentBucket)
			return err
		})
		if err != nil {
			db.Close()
			return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "create bucket")
		}
	}

	cfg.log.Debug("opened document store",
		zap.String("path", path),
		zap.Stringer("compression", cfg.format),
		zap.Bool("read_only", cfg.readOnly))
	return &Store{db: db, comp: comp, cfg: cfg}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put encodes root and stores it under key, replacing any previous
// document.
func (s *Store) Put(key string, root *tag.Compound) error {
	if key == "" {
		return errors.InvalidInput(errors.PhaseStore, "empty key")
	}

	raw, err := tag.Marshal(root, s.cfg.tagOpts...)
	if err != nil {
		return err
	}
	data, err := s.comp.Compress(raw)
	if err != nil {
		return err
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(documentBucket).Put([]byte(key), data)
	})
	if err != nil {
		return errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "put "+key)
	}

	s.cfg.log.Debug("stored document",
		zap.String("key", key),
		zap.Int("raw", len(raw)),
		zap.Int("stored", len(data)))
	return nil
}

// Get decodes the document stored under key. A missing key yields a
// not_found error.
func (s *Store) Get(key string) (*tag.Compound, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(documentBucket)
		if b == nil {
			return nil
		}
		// The value is only valid inside the transaction.
		if v := b.Get([]byte(key)); v != nil {
			data = slices.Clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "get "+key)
	}
	if data == nil {
		return nil, errors.NotFound(errors.PhaseStore, "document "+key)
	}

	// Documents are decoded by envelope sniffing, so a store reopened with
	// another compression still reads its older entries.
	raw, _, err := compress.Decompress(data, s.cfg.compOpts...)
	if err != nil {
		return nil, err
	}
	return tag.Unmarshal(raw, s.cfg.tagOpts...)
}

// Delete removes the document stored under key. Deleting a missing key
// yields a not_found error.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(documentBucket)
		if b == nil || b.Get([]byte(key)) == nil {
			return errors.NotFound(errors.PhaseStore, "document "+key)
		}
		return b.Delete([]byte(key))
	})
	if err != nil && errors.KindOf(err) != errors.KindNotFound {
		return errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "delete "+key)
	}
	return err
}

// Keys returns the stored keys in ascending byte order.
func (s *Store) Keys() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(documentBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseStore, errors.KindInvalidInput, err, "list keys")
	}
	return keys, nil
}
