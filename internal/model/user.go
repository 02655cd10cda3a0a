package model

import "time"

// User represents a user in the database.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CredentialsRequest is the body of both sign-up and sign-in requests.
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SignInResponse carries the session token issued on sign-in.
type SignInResponse struct {
	AccessToken string `json:"accessToken"`
}

// SignUpResponse merges the issued token with the created user's public fields.
type SignUpResponse struct {
	AccessToken string `json:"accessToken"`
	UserResponse
}

// UserResponse represents user data safe for API responses (no sensitive fields).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse strips sensitive fields from u.
func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
