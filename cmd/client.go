package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/inovacc/nutrilog/internal/api"
	"github.com/inovacc/nutrilog/internal/auth"
	"github.com/inovacc/nutrilog/internal/config"
	"github.com/inovacc/nutrilog/internal/core"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/params"
	"github.com/inovacc/nutrilog/internal/session"
	"github.com/inovacc/nutrilog/internal/store"
	"github.com/spf13/cobra"
)

// runtime is everything a command needs to talk to the API.
type runtime struct {
	cfg      model.Config
	logger   *slog.Logger
	store    store.Store
	sessions *session.Manager
	client   *api.Client
	svc      *core.Service

	// token is where the bearer token came from, nil when anonymous
	token *auth.Result
}

func (r *runtime) Close() error {
	if r.store == nil {
		return nil
	}

	return r.store.Close()
}

// runtimeFactory builds the runtime of a command. requireToken rejects
// anonymous and expired tokens before any request is sent.
// It can be overridden in tests.
var runtimeFactory = newRuntime

func getRuntime(cmd *cobra.Command, requireToken bool) (*runtime, error) {
	return runtimeFactory(cmd, requireToken)
}

// loadConfig reads the layered configuration and applies --api-url.
func loadConfig() (model.Config, error) {
	cfg, err := config.Load(config.Options{})
	if err != nil {
		return cfg, err
	}

	if flagAPIURL != "" {
		if err := config.Set(&cfg, config.KeyAPIURL, flagAPIURL); err != nil {
			return cfg, fmt.Errorf("--api-url: %w", err)
		}
	}

	return cfg, nil
}

func newRuntime(_ *cobra.Command, requireToken bool) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger := newLogger(os.Stderr, cfg.LogLevel, flagVerbose, flagJSON)

	loc, err := config.Location(cfg)
	if err != nil {
		return nil, err
	}

	serverLoc, err := config.ServerLocation(cfg)
	if err != nil {
		return nil, err
	}

	st, err := store.OpenDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	keyPath, err := params.AppdataFile(params.KeyFileName)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	sessions := session.NewManager(session.Options{
		Store:   st,
		KeyPath: keyPath,
		APIURL:  cfg.APIURL,
		Storage: model.TokenStorage(cfg.TokenStorage),
		Logger:  logger,
	})

	rt := &runtime{cfg: cfg, logger: logger, store: st, sessions: sessions}

	resolved, err := auth.NewResolver().
		WithFlagValue(flagToken).
		WithEnv(params.EnvToken).
		WithProvider(sessions.TokenProvider()).
		WithHelpMessage("Log in with: nutrilog login").
		Resolve()

	switch {
	case err == nil:
		if _, err := auth.Inspect(resolved.Token, time.Now()); err != nil && requireToken {
			_ = rt.Close()
			return nil, err
		}

		rt.token = resolved
	case errors.Is(err, auth.ErrNoToken) && !requireToken:
	case errors.Is(err, session.ErrServerMismatch) && !requireToken:
		logger.Warn("stored session belongs to another server", "error", err)
	default:
		_ = rt.Close()
		return nil, err
	}

	token := ""
	if rt.token != nil {
		token = rt.token.Token
		logger.Debug("using token", "source", rt.token.Name)
	}

	rt.client = api.NewClient(cfg.APIURL, api.ClientOptions{
		Token:   token,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})

	rt.svc = core.NewService(core.Options{
		API:            rt.client,
		Sessions:       sessions,
		Location:       loc,
		ServerLocation: serverLoc,
		Logger:         logger,
	})

	return rt, nil
}
