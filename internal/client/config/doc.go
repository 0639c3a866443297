// Package config loads runtime configuration for the gophauth CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-s string     base URL of the server (e.g. "http://localhost:5000")
//	-f string     path of the file holding the session token
//	-t duration   request timeout (e.g. "10s")
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:5000",
//	  "token_file": "/home/ann/.gophauth/token",
//	  "request_timeout": "10s"
//	}
package config
