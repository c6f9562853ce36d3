// Package config loads runtime configuration for the command-line client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config (or $CONFIG).
//  3. Environment variables RESOURCES_SERVER_URL, RESOURCES_TOKEN_DIR and
//     RESOURCES_TIMEOUT.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string     base URL of the server API
//	-t string     directory holding the saved session token
//	-r duration   per-request timeout
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or
// integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:8080",
//	  "token_dir": ".resources",
//	  "request_timeout": "10s"
//	}
package config
