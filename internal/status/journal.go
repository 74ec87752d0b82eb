// Package status exposes the receiver's state over HTTP: a JSON
// snapshot, a journalled event history and a websocket feed of live
// changes.
package status

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"IrCar/internal/model"
)

var eventsBucket = []byte("events")

// Journal persists controller edge events to a BoltDB file so obstacle
// encounters and mode flips survive for post-drive inspection.
type Journal struct {
	db *bbolt.DB
}

// OpenJournal opens (or creates) the journal database at path.
func OpenJournal(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("journal dir: %w", err)
		}
	}
	db, err := bbolt.Open(path, 0o666, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(eventsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init journal bucket: %w", err)
	}
	return &Journal{db: db}, nil
}

// Append stores one event keyed by its timestamp so a cursor walk
// yields chronological order.
func (j *Journal) Append(e model.Event) error {
	val, err := json.Marshal(e)
	if err != nil {
		return err
	}
	key := []byte(fmt.Sprintf("%020d", e.Time.UnixNano()))
	return j.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(eventsBucket).Put(key, val)
	})
}

// Recent returns up to n most recent events, newest first.
func (j *Journal) Recent(n int) ([]model.Event, error) {
	if n <= 0 {
		n = 50
	}
	var out []model.Event
	err := j.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(eventsBucket).Cursor()
		for k, v := c.Last(); k != nil && len(out) < n; k, v = c.Prev() {
			var e model.Event
			if err := json.Unmarshal(v, &e); err != nil {
				continue
			}
			out = append(out, e)
		}
		return nil
	})
	return out, err
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}
