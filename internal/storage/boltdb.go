package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/berrythewa/clippaste/internal/types"
)

const (
	historyBucket    = "pastes"
	defaultKeepItems = 100
)

// ErrEmptyHistory is returned by GetLatest when nothing has been pasted yet.
var ErrEmptyHistory = errors.New("paste history is empty")

// HistoryStore records successful pastes.
type HistoryStore interface {
	SaveRecord(record *types.PasteRecord) error
	GetHistory(limit int) ([]*types.PasteRecord, error)
	GetLatest() (*types.PasteRecord, error)
	Count() (int, error)
	Flush() error
	Close() error
}

// BoltStorage implements HistoryStore on top of a bbolt database. Records
// are keyed by the bucket sequence so cursor order is insertion order.
type BoltStorage struct {
	db        *bbolt.DB
	logger    *zap.Logger
	keepItems int
}

// StorageConfig holds configuration for BoltStorage initialization
type StorageConfig struct {
	DBPath    string
	KeepItems int
	Logger    *zap.Logger
	// Timeout bounds waiting for the file lock held by another invocation.
	Timeout time.Duration
}

// NewBoltStorage opens (creating if needed) the history database.
func NewBoltStorage(config StorageConfig) (*BoltStorage, error) {
	keepItems := config.KeepItems
	if keepItems <= 0 {
		keepItems = defaultKeepItems
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bbolt.Open(config.DBPath, 0600, &bbolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(historyBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	logger.Debug("BoltStorage initialized",
		zap.String("db_path", config.DBPath),
		zap.Int("keep_items", keepItems))

	return &BoltStorage{
		db:        db,
		logger:    logger,
		keepItems: keepItems,
	}, nil
}

func sequenceKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

// SaveRecord appends record to the history, filling in ID and Created when
// unset, and trims the oldest entries beyond the keep limit.
func (s *BoltStorage) SaveRecord(record *types.PasteRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Created.IsZero() {
		record.Created = time.Now()
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(historyBucket))
		seq, err := b.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate sequence: %w", err)
		}
		if err := b.Put(sequenceKey(seq), encoded); err != nil {
			return fmt.Errorf("failed to save record: %w", err)
		}

		s.logger.Debug("Saved paste record",
			zap.String("id", record.ID),
			zap.Int("paths", len(record.Paths)))

		return s.trim(b)
	})
}

// trim deletes the oldest records so at most keepItems remain.
func (s *BoltStorage) trim(b *bbolt.Bucket) error {
	excess := countKeys(b) - s.keepItems
	if excess <= 0 {
		return nil
	}

	var stale [][]byte
	c := b.Cursor()
	for k, _ := c.First(); k != nil && len(stale) < excess; k, _ = c.Next() {
		stale = append(stale, append([]byte(nil), k...))
	}
	for _, k := range stale {
		if err := b.Delete(k); err != nil {
			return fmt.Errorf("failed to trim history: %w", err)
		}
	}

	s.logger.Debug("Trimmed paste history", zap.Int("removed", len(stale)))
	return nil
}

// countKeys walks the bucket; unlike Bucket.Stats it sees writes made
// earlier in the same transaction.
func countKeys(b *bbolt.Bucket) int {
	n := 0
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		n++
	}
	return n
}

// GetHistory returns up to limit records, newest first. limit <= 0 returns all.
func (s *BoltStorage) GetHistory(limit int) ([]*types.PasteRecord, error) {
	var records []*types.PasteRecord

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(historyBucket)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(records) >= limit {
				break
			}
			var record types.PasteRecord
			if err := json.Unmarshal(v, &record); err != nil {
				s.logger.Warn("Failed to unmarshal record", zap.Error(err), zap.Binary("key", k))
				continue // skip invalid entries
			}
			records = append(records, &record)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	return records, nil
}

// GetLatest returns the most recent record.
func (s *BoltStorage) GetLatest() (*types.PasteRecord, error) {
	records, err := s.GetHistory(1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyHistory
	}
	return records[0], nil
}

// Count returns the number of stored records.
func (s *BoltStorage) Count() (int, error) {
	var n int
	err := s.db.View(func(tx *bbolt.Tx) error {
		n = countKeys(tx.Bucket([]byte(historyBucket)))
		return nil
	})
	return n, err
}

// Flush removes every record.
func (s *BoltStorage) Flush() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket([]byte(historyBucket)); err != nil {
			return fmt.Errorf("failed to delete bucket: %w", err)
		}
		_, err := tx.CreateBucket([]byte(historyBucket))
		return err
	})
}

// Close closes the database.
func (s *BoltStorage) Close() error {
	return s.db.Close()
}
