// Package event defines messages exchanged between modules through the
// message broker together with their destinations.
package event

import "time"

const (
	AuthRegisteredDestination  string = "auth_registered"
	AuthLoggedInDestination    string = "auth_logged_in"
	AuthLoginFailedDestination string = "auth_login_failed"
)

// AuthRegisteredMessage is published when a new account is created and
// waiting for its enrollment to be verified.
type AuthRegisteredMessage struct {
	UserID   uint64    `json:"user_id"`
	Username string    `json:"username"`
	At       time.Time `json:"at"`
}

// AuthLoggedInMessage is published after a fully verified sign in.
type AuthLoggedInMessage struct {
	UserID   uint64    `json:"user_id"`
	Username string    `json:"username"`
	At       time.Time `json:"at"`
}

// AuthLoginFailedMessage is published on rejected sign in attempts. It
// carries only the submitted username so consumers can watch for abuse.
type AuthLoginFailedMessage struct {
	Username string    `json:"username"`
	At       time.Time `json:"at"`
}
