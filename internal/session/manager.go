package session

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/inovacc/nutrilog/internal/auth"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/store"
)

var (
	// ErrNoSession means nobody is logged in
	ErrNoSession = store.ErrNoSession

	// ErrServerMismatch means the stored login belongs to another API URL
	ErrServerMismatch = errors.New("stored session belongs to a different server")
)

// Options configures a Manager.
type Options struct {
	Store   store.Store
	KeyPath string
	APIURL  string
	Storage model.TokenStorage
	Logger  *slog.Logger
	Now     func() time.Time
}

// Manager saves, loads and clears the local session.
type Manager struct {
	store   store.Store
	keyPath string
	apiURL  string
	storage model.TokenStorage
	logger  *slog.Logger
	now     func() time.Time
}

// NewManager returns a Manager. Storage defaults to encrypted.
func NewManager(opts Options) *Manager {
	m := &Manager{
		store:   opts.Store,
		keyPath: opts.KeyPath,
		apiURL:  opts.APIURL,
		storage: opts.Storage,
		logger:  opts.Logger,
		now:     opts.Now,
	}

	if !m.storage.Valid() {
		m.storage = model.TokenStorageEncrypted
	}

	if m.logger == nil {
		m.logger = slog.New(slog.DiscardHandler)
	}

	if m.now == nil {
		m.now = time.Now
	}

	return m
}

// Save stores token for user, replacing any previous session.
func (m *Manager) Save(token string, user model.User) (*model.Session, error) {
	if token == "" {
		return nil, errors.New("token is required")
	}

	claims := auth.ParseClaims(token)

	session := &model.Session{
		User:         user,
		APIURL:       m.apiURL,
		TokenStorage: m.storage,
		ExpiresAt:    claims.ExpiresAt,
		CreatedAt:    m.now(),
	}

	switch m.storage {
	case model.TokenStoragePlain:
		session.Token = token
	default:
		masterKey, err := getOrCreateKey(m.keyPath)
		if err != nil {
			return nil, err
		}

		sealed, err := seal(masterKey, token, m.apiURL, user.ID)
		if err != nil {
			return nil, err
		}

		session.SealedToken = sealed
	}

	if err := m.store.SaveSession(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	m.logger.Debug("session saved", "user", user.Name, "storage", string(m.storage), "api_url", m.apiURL)

	out := *session
	out.Token = token

	return &out, nil
}

// Load returns the stored session with Token filled in.
func (m *Manager) Load() (*model.Session, error) {
	session, err := m.store.GetSession()
	if err != nil {
		return nil, err
	}

	if m.apiURL != "" && session.APIURL != m.apiURL {
		return nil, fmt.Errorf("%w: logged in to %s", ErrServerMismatch, session.APIURL)
	}

	if session.TokenStorage == model.TokenStorageEncrypted {
		masterKey, err := getOrCreateKey(m.keyPath)
		if err != nil {
			return nil, err
		}

		token, err := unseal(masterKey, session.SealedToken, session.APIURL, session.User.ID)
		if err != nil {
			return nil, err
		}

		session.Token = token
	}

	return session, nil
}

// Clear removes the stored session. Clearing an empty store is not an error.
func (m *Manager) Clear() error {
	if err := m.store.DeleteSession(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	m.logger.Debug("session cleared")

	return nil
}

// TokenProvider adapts the manager to an auth.Resolver source.
func (m *Manager) TokenProvider() auth.TokenProvider {
	return func() (string, string, error) {
		session, err := m.Load()
		if errors.Is(err, ErrNoSession) {
			return "", "", nil
		}

		if err != nil {
			return "", "", err
		}

		return session.Token, "session:" + session.User.Name, nil
	}
}
