package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketForms = []byte("forms")

// Option customises a BoltStore.
type Option func(*BoltStore)

// WithTimeout bounds how long Open waits for the file lock.
func WithTimeout(timeout time.Duration) Option {
	return func(s *BoltStore) {
		s.timeout = timeout
	}
}

// WithClock overrides the time source stamped on records.
func WithClock(now func() time.Time) Option {
	return func(s *BoltStore) {
		if now != nil {
			s.now = now
		}
	}
}

// BoltStore implements Store on a bbolt file, one JSON record per form.
type BoltStore struct {
	db      *bolt.DB
	timeout time.Duration
	now     func() time.Time
}

var _ Store = (*BoltStore)(nil)

// Open opens or creates the database at path.
func Open(path string, options ...Option) (*BoltStore, error) {
	s := &BoltStore{
		timeout: 5 * time.Second,
		now:     time.Now,
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: s.timeout})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketForms)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create bucket: %w", err)
	}

	s.db = db
	return s, nil
}

func (s *BoltStore) Get(ctx context.Context, formID string) (Record, error) {
	key, err := formKey(ctx, formID)
	if err != nil {
		return Record{}, err
	}
	var record Record
	err = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketForms).Get(key)
		if data == nil {
			return fmt.Errorf("form %s: %w", formID, ErrNotFound)
		}
		return decodeRecord(data, &record)
	})
	return record, err
}

func (s *BoltStore) Put(ctx context.Context, formID string, values map[string]any, revision uint64) (Record, error) {
	key, err := formKey(ctx, formID)
	if err != nil {
		return Record{}, err
	}
	var record Record
	err = s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketForms)
		if data := bucket.Get(key); data != nil {
			if err := decodeRecord(data, &record); err != nil {
				return err
			}
		}
		if revision != 0 && revision != record.Revision {
			return fmt.Errorf("form %s at revision %d, got %d: %w", formID, record.Revision, revision, ErrConflict)
		}

		record.FormID = formID
		record.Revision++
		record.Values = Merge(record.Values, values)
		record.UpdatedAt = s.now().UTC()

		data, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("store: encode %s: %w", formID, err)
		}
		return bucket.Put(key, data)
	})
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

func (s *BoltStore) List(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var records []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketForms)
		records = make([]Record, 0, bucket.Stats().KeyN)
		return bucket.ForEach(func(_, v []byte) error {
			var record Record
			if err := decodeRecord(v, &record); err != nil {
				return err
			}
			records = append(records, record)
			return nil
		})
	})
	return records, err
}

func (s *BoltStore) Delete(ctx context.Context, formID string) error {
	key, err := formKey(ctx, formID)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketForms).Delete(key)
	})
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func formKey(ctx context.Context, formID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(formID)
	if trimmed == "" {
		return nil, fmt.Errorf("store: form id is required")
	}
	return []byte(trimmed), nil
}

// decodeRecord keeps numbers as json.Number so register values survive the
// round trip without float conversion.
func decodeRecord(data []byte, record *Record) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(record); err != nil {
		return fmt.Errorf("store: decode record: %w", err)
	}
	return nil
}
