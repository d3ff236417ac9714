package client

import "github.com/dmitrijs2005/wealthwise/internal/client/models"

// Fixed identity used by the simulated backend and by the auth fallback.
const (
	DemoEmail     = "demo@wealthwise.com"
	DemoPassword  = "demo123"
	DemoUserID    = "mock-user-123"
	DemoToken     = "mock-jwt-token-123"
	DemoTokenType = "Bearer"

	minSignupPassword = 6
)

func DemoUser() models.User {
	return models.User{ID: DemoUserID, Email: DemoEmail}
}

func DemoAuthResponse() models.AuthResponse {
	return models.AuthResponse{AccessToken: DemoToken, TokenType: DemoTokenType, User: DemoUser()}
}

// demoSignupResponse is the demo identity carrying the registering email.
func demoSignupResponse(email string) models.AuthResponse {
	r := DemoAuthResponse()
	if email != "" {
		r.User.Email = email
	}
	return r
}
