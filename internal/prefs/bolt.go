package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"go.etcd.io/bbolt"
)

var prefsBucket = []byte("prefs")

// Bolt is a Store backed by a bbolt file.
type Bolt struct {
	db *bbolt.DB
}

// OpenBolt opens (or creates) the bbolt file at path.
// An empty path uses the XDG data directory.
func OpenBolt(path string) (*Bolt, error) {
	if path == "" {
		p, err := xdg.DataFile(filepath.Join(appName, boltFileName))
		if err != nil {
			return nil, err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("could not open bbolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(prefsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create prefs bucket: %w", err)
	}

	return &Bolt{db: db}, nil
}

func (b *Bolt) GetString(key, def string) string {
	value := def
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(prefsBucket)
		if bucket == nil {
			return nil
		}
		if v := bucket.Get([]byte(key)); v != nil {
			// v is only valid inside the transaction
			value = string(v)
		}
		return nil
	})
	if err != nil {
		log.Warn("could not read preference", "key", key, "err", err)
		return def
	}
	return value
}

func (b *Bolt) PutString(key, value string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(prefsBucket).Put([]byte(key), []byte(value))
	})
}

func (b *Bolt) Close() error {
	return b.db.Close()
}

var _ Store = (*Bolt)(nil)
