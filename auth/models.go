// Package auth is responsible for authentication and authorization: turning
// a submitted credential into a verified, server-tracked identity, and gating
// protected routes on that identity. It contains the credential hasher, the
// session manager, the authentication service, and the session middleware.
package auth

import "time"

// AuthMethodLocal tags accounts created with a username and password.
// Provider-based methods are out of scope.
const AuthMethodLocal = "local"

// User represents an account as stored in the database. The credential
// fields carry json:"-" so they can never leak into a response payload.
type User struct {
	ID           int64     `json:"id"`
	FullName     string    `json:"fullName"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	AuthMethod   string    `json:"authMethod"`
	TradeIDs     []int64   `json:"userTrades"`
	Profile      Profile   `json:"profile"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Profile is the optional profile sub-record; all fields default to the
// empty string at signup.
type Profile struct {
	InitialBalance  string `json:"initialBalance"`
	BrokerName      string `json:"brokerName"`
	ProfileImageURL string `json:"profileImageUrl"`
}
