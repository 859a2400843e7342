package core

import (
	"context"

	"github.com/inovacc/nutrilog/internal/api"
	"github.com/inovacc/nutrilog/internal/model"
)

// LoadSettings fetches the user's settings. A user without settings gets
// them created from the current in-memory values. Targets the server has
// never set keep their prior values.
func (s *Service) LoadSettings(ctx context.Context) (model.UserSettings, error) {
	current := s.state.Settings()

	remoteSettings, err := s.api.GetSettings(ctx)
	if api.IsNotFound(err) {
		remoteSettings, err = s.api.CreateSettings(ctx, api.SettingsInputFrom(current))
		if err != nil {
			return current, remote("create settings", err)
		}

		s.logger.Info("created settings", "basal_metabolism", current.BasalMetabolism)
	} else if err != nil {
		return current, remote("load settings", err)
	}

	settings := remoteSettings.Apply(current)
	s.state.SetSettings(settings)

	return settings, nil
}

// SaveSettings validates and stores new settings, replacing them wholesale.
func (s *Service) SaveSettings(ctx context.Context, settings model.UserSettings) (model.UserSettings, error) {
	if err := ValidateSettings(settings); err != nil {
		return s.state.Settings(), err
	}

	in := api.SettingsInputFrom(settings)

	saved, err := s.api.UpdateSettings(ctx, in)
	if api.IsNotFound(err) {
		saved, err = s.api.CreateSettings(ctx, in)
	}

	if err != nil {
		return s.state.Settings(), remote("save settings", err)
	}

	out := saved.Apply(settings)
	s.state.SetSettings(out)

	return out, nil
}
