package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/inovacc/nutrilog/internal/model"
)

const (
	KeyAPIURL         = "api_url"
	KeyTimezone       = "timezone"
	KeyServerTimezone = "server_timezone"
	KeyHistoryDays    = "history_days"
	KeyTokenStorage   = "token_storage"
	KeyLogLevel       = "log_level"
	KeyRequestTimeout = "request_timeout"
)

// MaxHistoryDays bounds history_days.
const MaxHistoryDays = 365

var logLevels = []string{"debug", "info", "warn", "error"}

// KeyError reports an unknown key or an invalid value.
type KeyError struct {
	Key    string
	Value  string
	Reason string
}

func (e *KeyError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
	}

	return fmt.Sprintf("config %s=%q: %s", e.Key, e.Value, e.Reason)
}

// Keys returns all config keys in file order.
func Keys() []string {
	return []string{
		KeyAPIURL,
		KeyTimezone,
		KeyServerTimezone,
		KeyHistoryDays,
		KeyTokenStorage,
		KeyLogLevel,
		KeyRequestTimeout,
	}
}

// Get returns the string form of key.
func Get(cfg model.Config, key string) (string, error) {
	switch key {
	case KeyAPIURL:
		return cfg.APIURL, nil
	case KeyTimezone:
		return cfg.Timezone, nil
	case KeyServerTimezone:
		return cfg.ServerTimezone, nil
	case KeyHistoryDays:
		return strconv.Itoa(cfg.HistoryDays), nil
	case KeyTokenStorage:
		return cfg.TokenStorage, nil
	case KeyLogLevel:
		return cfg.LogLevel, nil
	case KeyRequestTimeout:
		return cfg.RequestTimeout.String(), nil
	default:
		return "", &KeyError{Key: key, Reason: "unknown key"}
	}
}

// Set validates value and assigns it to key.
func Set(cfg *model.Config, key, value string) error {
	value = strings.TrimSpace(value)
	invalid := func(reason string) error {
		return &KeyError{Key: key, Value: value, Reason: reason}
	}

	switch key {
	case KeyAPIURL:
		u, err := url.Parse(value)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("must be an http or https URL")
		}

		cfg.APIURL = strings.TrimRight(value, "/")
	case KeyTimezone, KeyServerTimezone:
		if _, err := loadLocation(value); err != nil {
			return invalid("unknown time zone")
		}

		if key == KeyTimezone {
			cfg.Timezone = value
		} else {
			cfg.ServerTimezone = value
		}
	case KeyHistoryDays:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > MaxHistoryDays {
			return invalid(fmt.Sprintf("must be a number between 1 and %d", MaxHistoryDays))
		}

		cfg.HistoryDays = n
	case KeyTokenStorage:
		if !model.TokenStorage(value).Valid() {
			return invalid("must be encrypted or plain")
		}

		cfg.TokenStorage = value
	case KeyLogLevel:
		level := strings.ToLower(value)
		if !slices.Contains(logLevels, level) {
			return invalid("must be one of " + strings.Join(logLevels, ", "))
		}

		cfg.LogLevel = level
	case KeyRequestTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return invalid("must be a positive duration such as 30s")
		}

		cfg.RequestTimeout = d
	default:
		return &KeyError{Key: key, Reason: "unknown key"}
	}

	return nil
}

// Location returns the zone used to group meals by day.
func Location(cfg model.Config) (*time.Location, error) {
	return loadLocation(cfg.Timezone)
}

// ServerLocation returns the zone applied to naive API timestamps.
func ServerLocation(cfg model.Config) (*time.Location, error) {
	if cfg.ServerTimezone == "" {
		return time.UTC, nil
	}

	return loadLocation(cfg.ServerTimezone)
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}

	return time.LoadLocation(name)
}
