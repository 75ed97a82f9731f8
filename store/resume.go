package store

import (
	"encoding/binary"
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// resumeBucket holds one big-endian uint64 counter per table name, the last row count
// successfully committed to that table. It exists purely so a restarted process can report
// how much history it already holds without a COUNT(*) scan over a potentially large
// SQLite file; it is advisory bookkeeping, not a source of truth for the data itself.
var resumeBucket = []byte("resume")

type resumeLedger struct {
	db *bolt.DB
}

func openResumeLedger(path string) (*resumeLedger, error) {
	if path == "" {
		return nil, nil
	}
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("store: open resume ledger: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(resumeBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init resume ledger: %w", err)
	}
	return &resumeLedger{db: db}, nil
}

// advance adds delta to the counter stored under table.
func (l *resumeLedger) advance(table string, delta uint64) error {
	if l == nil || delta == 0 {
		return nil
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(resumeBucket)
		var cur uint64
		if v := b.Get([]byte(table)); v != nil {
			cur = binary.BigEndian.Uint64(v)
		}
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, cur+delta)
		return b.Put([]byte(table), buf)
	})
}

// count returns the last recorded counter for table, 0 if unknown.
func (l *resumeLedger) count(table string) uint64 {
	if l == nil {
		return 0
	}
	var out uint64
	_ = l.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(resumeBucket)
		if v := b.Get([]byte(table)); v != nil {
			out = binary.BigEndian.Uint64(v)
		}
		return nil
	})
	return out
}

func (l *resumeLedger) Close() error {
	if l == nil {
		return nil
	}
	return l.db.Close()
}
