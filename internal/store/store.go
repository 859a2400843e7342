package store

import (
	"errors"

	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/params"
)

// ErrNoSession is returned by GetSession when nobody is logged in.
var ErrNoSession = errors.New("no session stored")

// Store persists the local login. Collections are never written here.
type Store interface {
	Ping() error
	Close() error

	GetSession() (*model.Session, error)
	SaveSession(session *model.Session) error
	DeleteSession() error
}

// OpenDefault opens the store inside the application directory.
func OpenDefault() (Store, error) {
	path, err := params.AppdataFile(defaultFileName)
	if err != nil {
		return nil, err
	}

	return Open(path)
}
