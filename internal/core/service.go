package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/inovacc/nutrilog/internal/api"
	"github.com/inovacc/nutrilog/internal/model"
	"github.com/inovacc/nutrilog/internal/state"
)

// API is the subset of the remote API the service uses. *api.Client
// implements it.
type API interface {
	Health(ctx context.Context) (string, error)
	Register(ctx context.Context, user, password string) (*api.User, error)
	Login(ctx context.Context, user, password string) (*api.LoginResult, error)
	Me(ctx context.Context) (*api.User, error)

	ListFoods(ctx context.Context) ([]api.Food, error)
	SearchFoods(ctx context.Context, name string) ([]api.Food, error)
	GetFood(ctx context.Context, id string) (*api.Food, error)
	FoodByBarcode(ctx context.Context, code string) (*api.Food, error)
	CreateFood(ctx context.Context, in api.FoodInput) (*api.Food, error)
	UpdateFood(ctx context.Context, id string, in api.FoodInput) (*api.Food, error)
	DeleteFood(ctx context.Context, id string) (*api.FoodDeleted, error)

	CreateMeal(ctx context.Context, foodID string, grams float64) (*api.Meal, error)
	MealsInRange(ctx context.Context, start, end string) ([]api.Meal, error)
	DeleteMeal(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (*api.Settings, error)
	CreateSettings(ctx context.Context, in api.SettingsInput) (*api.Settings, error)
	UpdateSettings(ctx context.Context, in api.SettingsInput) (*api.Settings, error)

	DashboardToday(ctx context.Context) (*api.Day, error)
	DashboardRange(ctx context.Context, start, end string) ([]api.Day, error)
}

// Sessions stores the local login. *session.Manager implements it.
type Sessions interface {
	Save(token string, user model.User) (*model.Session, error)
	Load() (*model.Session, error)
	Clear() error
}

// Options configures a Service.
type Options struct {
	API      API
	State    *state.State
	Sessions Sessions

	// Location groups meals into calendar days (default time.Local)
	Location *time.Location

	// ServerLocation reads API timestamps that carry no offset (default UTC)
	ServerLocation *time.Location

	Logger *slog.Logger

	// Now defaults to time.Now
	Now func() time.Time
}

// Service is the application layer shared by commands and the TUI.
type Service struct {
	api            API
	state          *state.State
	sessions       Sessions
	location       *time.Location
	serverLocation *time.Location
	logger         *slog.Logger
	now            func() time.Time
}

// NewService builds a Service. A nil State starts empty.
func NewService(opts Options) *Service {
	s := &Service{
		api:            opts.API,
		state:          opts.State,
		sessions:       opts.Sessions,
		location:       opts.Location,
		serverLocation: opts.ServerLocation,
		logger:         opts.Logger,
		now:            opts.Now,
	}

	if s.state == nil {
		s.state = state.New()
	}

	if s.location == nil {
		s.location = time.Local
	}

	if s.serverLocation == nil {
		s.serverLocation = time.UTC
	}

	if s.now == nil {
		s.now = time.Now
	}

	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	return s
}

// State exposes the session store for read access by the UI.
func (s *Service) State() *state.State {
	return s.state
}

// Snapshot returns the current state.
func (s *Service) Snapshot() state.Snapshot {
	return s.state.Snapshot()
}

// Location returns the zone days are computed in.
func (s *Service) Location() *time.Location {
	return s.location
}

// Health checks that the API answers.
func (s *Service) Health(ctx context.Context) (string, error) {
	msg, err := s.api.Health(ctx)
	if err != nil {
		return "", remote("health check", err)
	}

	return msg, nil
}
