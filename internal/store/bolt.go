//go:build bolt

package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/params"
	"go.etcd.io/bbolt"
)

const defaultFileName = params.BoltFileName

const (
	boltBucketSession = "session" // key: "current" -> Session JSON
	boltKeyCurrent    = "current"
)

type Bolt struct {
	storage *bbolt.DB
}

// Open creates or opens a Bolt database at path.
func Open(path string) (Store, error) {
	return NewBolt(path)
}

// NewBolt creates a new Bolt database at the specified path.
func NewBolt(path string) (*Bolt, error) {
	instance, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	if err := instance.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucketSession))
		return err
	}); err != nil {
		_ = instance.Close()

		return nil, err
	}

	return &Bolt{storage: instance}, nil
}

func (b *Bolt) Ping() error {
	return b.storage.View(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(boltBucketSession)) == nil {
			return errors.New("session bucket missing")
		}

		return nil
	})
}

func (b *Bolt) Close() error {
	return b.storage.Close()
}

func (b *Bolt) GetSession() (*model.Session, error) {
	var session *model.Session

	err := b.storage.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(boltBucketSession)).Get([]byte(boltKeyCurrent))
		if v == nil {
			return ErrNoSession
		}

		var s model.Session
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}

		session = &s

		return nil
	})

	return session, err
}

func (b *Bolt) SaveSession(session *model.Session) error {
	if session == nil {
		return errors.New("session is required")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSession)).Put([]byte(boltKeyCurrent), data)
	})
}

func (b *Bolt) DeleteSession() error {
	return b.storage.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(boltBucketSession)).Delete([]byte(boltKeyCurrent))
	})
}
