// Package cli implements the gophauth command-line client.
//
// Each invocation runs one command against the server:
//
//	register   create an account and store its session token
//	login      log in and store the session token
//	logout     revoke the stored token and delete it
//	whoami     verify the stored token and print its user
//	profile    print the profile of the logged in user
//	update     change name and/or email
//	ping       check that the server is reachable
//
// Passwords are read from the terminal without echo. The session token is
// kept in a file readable only by the current user.
package cli
