// Package client is the HTTP client for the gophauth account API. It speaks
// the JSON envelope used by the server and turns error responses into
// *APIError values.
package client
