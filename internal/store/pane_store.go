package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/tasuku43/opencommit/internal/domain/workspace"
)

var (
	bucketPanes = []byte("panes")
	keyLayout   = []byte("layout")
)

// PaneStore keeps the workspace pane layout in a bbolt database.
type PaneStore struct {
	db *bolt.DB
}

func OpenPaneStore(path string) (*PaneStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("pane store path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPanes)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &PaneStore{db: db}, nil
}

func (s *PaneStore) LoadPanes() ([]workspace.PaneState, error) {
	var states []workspace.PaneState
	err := s.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketPanes)
		if bucket == nil {
			return nil
		}
		data := bucket.Get(keyLayout)
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, &states)
	})
	if err != nil {
		return nil, err
	}
	return states, nil
}

func (s *PaneStore) SavePanes(states []workspace.PaneState) error {
	data, err := json.Marshal(states)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketPanes)
		if err != nil {
			return err
		}
		return bucket.Put(keyLayout, data)
	})
}

func (s *PaneStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
