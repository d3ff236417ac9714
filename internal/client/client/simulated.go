package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"golang.org/x/crypto/bcrypt"
)

// Simulated serves authentication locally against the demo account. It
// never touches the network.
type Simulated struct {
	email string
	hash  []byte
}

func NewSimulated() (*Simulated, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	return &Simulated{email: DemoEmail, hash: hash}, nil
}

func (s *Simulated) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	if err := ctx.Err(); err != nil {
		return models.AuthResponse{}, err
	}
	if !strings.EqualFold(creds.Email, s.email) ||
		bcrypt.CompareHashAndPassword(s.hash, []byte(creds.Password)) != nil {
		return models.AuthResponse{}, &ApplicationError{Op: OpLogin, Status: http.StatusUnauthorized, Detail: "Invalid email or password"}
	}
	return DemoAuthResponse(), nil
}

// Signup accepts any non-empty email with a password of at least six
// characters.
func (s *Simulated) Signup(ctx context.Context, creds models.SignupCredentials) (models.AuthResponse, error) {
	if err := ctx.Err(); err != nil {
		return models.AuthResponse{}, err
	}
	if strings.TrimSpace(creds.Email) == "" || len(creds.Password) < minSignupPassword {
		return models.AuthResponse{}, &ApplicationError{Op: OpSignup, Status: http.StatusBadRequest, Detail: "Invalid signup data"}
	}
	return demoSignupResponse(creds.Email), nil
}

func (s *Simulated) Me(ctx context.Context) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	return DemoUser(), nil
}
