// Package common contains shared constants, sentinel errors and small helpers
// used by both the server and the CLI client.
package common

// AuthorizationHeader carries the bearer credential on authenticated requests.
const AuthorizationHeader = "Authorization"

// BearerScheme is the scheme prefix expected in AuthorizationHeader.
const BearerScheme = "Bearer"
