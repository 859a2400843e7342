// Package config loads and saves the nutrilog configuration file.
//
// Values are layered, later sources winning:
//
//	defaults -> config.ini -> .env (working directory) -> environment -> flags
//
// Flags are applied by the caller. The config file is an INI file with all
// keys in the default section:
//
//	api_url = http://localhost:8000
//	timezone = Local
//	server_timezone = UTC
//	history_days = 14
//	token_storage = encrypted
//	log_level = warn
//	request_timeout = 30s
package config
