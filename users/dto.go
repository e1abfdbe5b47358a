// Package users covers user profile management: reading the profile fields
// the dashboard shows and overwriting them on save. It performs no
// computation beyond forwarding data between the HTTP boundary and the
// store.
package users

// ProfileFields is the subset of a user record exposed to the profile page.
// The login handle is surfaced as "email", matching what the client expects.
type ProfileFields struct {
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	InitialBalance  string `json:"initialBalance"`
	BrokerName      string `json:"brokerName"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// ProfileResponse wraps the profile fields in the envelope the client
// expects.
type ProfileResponse struct {
	ProfileFields ProfileFields `json:"profileFields"`
}

// UpdateProfileRequest overwrites the profile fields of a user. This is a
// full overwrite, not a partial patch: every field is written as submitted.
type UpdateProfileRequest struct {
	UserID          int64  `json:"userID" validate:"required"`
	FullName        string `json:"fullName"`
	Email           string `json:"email"`
	InitialBalance  string `json:"initialBalance"`
	BrokerName      string `json:"brokerName"`
	ProfileImageURL string `json:"profileImageUrl"`
}
