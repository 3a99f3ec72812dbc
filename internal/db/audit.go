package db

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/boltdb/bolt"
)

var runsBucket = []byte("Runs")

// Removal is one superseded file as recorded in the journal: its path and
// the blake3 digest of its content at the time of the sweep.
type Removal struct {
	Path   string `json:"path"`
	Digest string `json:"digest,omitempty"`
}

// Run is the journal record of a single sweep.
type Run struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Root      string    `json:"root"`
	Kept      int       `json:"kept"`
	Removed   []Removal `json:"removed"`
	DryRun    bool      `json:"dry_run,omitempty"`
}

// Connect opens (creating if needed) the journal database at path.
func Connect(path string) (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	return bolt.Open(path, 0600, nil)
}

// Record appends one run to the journal.
func Record(db *bolt.DB, run Run) error {
	return db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(runsBucket)
		if err != nil {
			return err
		}

		marshalled, err := json.Marshal(&run)
		if err != nil {
			return err
		}

		return bucket.Put([]byte(run.ID), marshalled)
	})
}

// Runs returns every journaled run, in bucket key order.
func Runs(db *bolt.DB) ([]Run, error) {
	var runs []Run

	err := db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(runsBucket)
		if bucket == nil {
			return nil
		}

		return bucket.ForEach(func(k, v []byte) error {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				return err
			}

			runs = append(runs, run)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return runs, nil
}
