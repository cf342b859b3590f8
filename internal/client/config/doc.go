// Package config loads runtime configuration for the dressup client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   storage backend kind: embedded or remote
//	-d string   path to the local SQLite database file
//	-a string   base URL of the generation relay
//	-t int      generation timeout (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "60s" or integer nanoseconds:
//
//	{
//	  "backend": "embedded",
//	  "database_path": "/home/me/.dressup/dressup.db",
//	  "relay_base_url": "http://127.0.0.1:3001",
//	  "generation_timeout": "60s",
//	  "backend_latency": "100ms"
//	}
//
// Primary API
//
//   - type Config                     — runtime settings for the client
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
