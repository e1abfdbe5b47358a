package auth

// SignupRequest is the registration request payload.
type SignupRequest struct {
	FullName string `json:"fullName" validate:"required" example:"Jane Trader"`
	Username string `json:"username" validate:"required" example:"jane@example.com"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// SigninRequest is the login request payload.
type SigninRequest struct {
	Username string `json:"username" validate:"required" example:"jane@example.com"`
	Password string `json:"password" validate:"required" example:"strongpassword123"`
}

// IdentityResponse is returned on successful signup or signin. The session
// itself travels in the cookie, not in the body.
type IdentityResponse struct {
	UserID int64 `json:"userID" example:"42"`
}

// StatusResponse is returned by the session status endpoint.
type StatusResponse struct {
	User int64 `json:"user" example:"42"`
}

// LogoutResponse is returned after a logout.
type LogoutResponse struct {
	Success bool `json:"success" example:"true"`
}
