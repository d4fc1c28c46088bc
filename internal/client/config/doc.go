// Package config loads runtime configuration for the softhub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the softhub server
//	-k string   upload token
//	-w int      request timeout (seconds)
//	-o string   download directory
//
// # JSON schema
//
// Every key is optional. Timeouts use timex.Duration, so values can be
// strings like "30s" or integer nanoseconds:
//
//	{
//	  "server_url": "http://127.0.0.1:3001",
//	  "upload_token": "...",
//	  "request_timeout": "60s",
//	  "download_dir": "./downloads"
//	}
package config
