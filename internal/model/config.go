package model

import "time"

// Config holds the application configuration
type Config struct {
	// APIURL is the base URL of the nutrition API
	APIURL string `ini:"api_url" json:"api_url"`

	// Timezone is the IANA zone used to group meals by calendar day ("Local" for the machine zone)
	Timezone string `ini:"timezone" json:"timezone"`

	// ServerTimezone is applied to timestamps the API sends without an offset
	ServerTimezone string `ini:"server_timezone" json:"server_timezone"`

	// HistoryDays is how many days the history view covers
	HistoryDays int `ini:"history_days" json:"history_days"`

	// TokenStorage is how the session token is kept on disk
	TokenStorage string `ini:"token_storage" json:"token_storage"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `ini:"log_level" json:"log_level"`

	// RequestTimeout bounds each HTTP request
	RequestTimeout time.Duration `ini:"request_timeout" json:"request_timeout"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		APIURL:         "http://localhost:8000",
		Timezone:       "Local",
		ServerTimezone: "UTC",
		HistoryDays:    14,
		TokenStorage:   string(TokenStorageEncrypted),
		LogLevel:       "warn",
		RequestTimeout: 30 * time.Second,
	}
}
