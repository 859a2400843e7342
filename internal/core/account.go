package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inovacc/nutrilog/internal/auth"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/store"
)

// Login authenticates against the API and stores the session. A failed or
// unreachable login is an error; there is no offline fallback.
func (s *Service) Login(ctx context.Context, user, password string) (*model.Session, error) {
	if err := ValidateCredentials(user, password); err != nil {
		return nil, err
	}

	user = strings.TrimSpace(user)

	res, err := s.api.Login(ctx, user, password)
	if err != nil {
		return nil, remote("login", err)
	}

	if res.AccessToken == "" {
		return nil, &RemoteError{Operation: "login", Err: errors.New("server returned no access token")}
	}

	account := model.User{Name: user}
	if res.User != nil {
		account = res.User.ToModel(s.serverLocation)
	} else if claims := auth.ParseClaims(res.AccessToken); claims.Subject != "" {
		account.ID = claims.Subject
	}

	if s.sessions == nil {
		return &model.Session{User: account, Token: res.AccessToken}, nil
	}

	session, err := s.sessions.Save(res.AccessToken, account)
	if err != nil {
		return nil, err
	}

	s.logger.Info("logged in", "user", account.Name)

	return session, nil
}

// Register creates an account. It does not log in.
func (s *Service) Register(ctx context.Context, user, password string) (model.User, error) {
	if err := ValidateCredentials(user, password); err != nil {
		return model.User{}, err
	}

	created, err := s.api.Register(ctx, strings.TrimSpace(user), password)
	if err != nil {
		return model.User{}, remote("register", err)
	}

	return created.ToModel(s.serverLocation), nil
}

// Logout forgets the stored session and empties the state.
func (s *Service) Logout() error {
	s.state.Reset()

	if s.sessions == nil {
		return nil
	}

	return s.sessions.Clear()
}

// WhoAmI asks the API for the account behind the current token.
func (s *Service) WhoAmI(ctx context.Context) (model.User, error) {
	u, err := s.api.Me(ctx)
	if err != nil {
		return model.User{}, remote("whoami", err)
	}

	return u.ToModel(s.serverLocation), nil
}

// CurrentSession returns the stored session without contacting the API.
func (s *Service) CurrentSession() (*model.Session, error) {
	if s.sessions == nil {
		return nil, ErrNotLoggedIn
	}

	session, err := s.sessions.Load()
	if errors.Is(err, store.ErrNoSession) {
		return nil, ErrNotLoggedIn
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	return session, nil
}
