package models

// User is the authenticated identity.
type User struct {
	ID    string `json:"id" msgpack:"id"`
	Email string `json:"email" msgpack:"email"`
}

// Credentials are submitted on login.
type Credentials struct {
	Email    string
	Password string
}

// SignupCredentials are submitted on registration.
type SignupCredentials struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthResponse is what the backend (or the fallback) returns for login,
// signup and me.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}
