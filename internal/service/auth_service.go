package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shushovitJR/Yeti-Repair-backend/internal/apperror"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/models"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/repository"
	"github.com/shushovitJR/Yeti-Repair-backend/internal/utils"
)

const invalidCredentials = "Invalid credentials"

// LoginResult is the body returned by POST /auth/login.
type LoginResult struct {
	Token string `json:"token"`
	User  string `json:"user"`
	Role  string `json:"role"`
}

type AuthService struct {
	users    repository.UserRepository
	verifier CredentialVerifier
	secret   string
	ttl      time.Duration
	log      zerolog.Logger
}

func NewAuthService(log zerolog.Logger, users repository.UserRepository, verifier CredentialVerifier, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, verifier: verifier, secret: secret, ttl: ttl, log: log}
}

// Login checks username and password and issues a bearer token. A
// matching plaintext credential is rehashed on the way through.
func (a *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = trim(username)
	if username == "" || password == "" {
		return nil, apperror.Unauthorized(invalidCredentials)
	}
	u, cred, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, wrap("get user", err)
	}
	if u == nil {
		return nil, apperror.Unauthorized(invalidCredentials)
	}
	ok, upgrade := a.verifier.Verify(*cred, password)
	if !ok {
		return nil, apperror.Unauthorized(invalidCredentials)
	}
	if upgrade {
		a.upgrade(ctx, u.ID, password)
	}

	tok, err := utils.SignJWT(a.secret, u.ID, u.Role, a.ttl)
	if err != nil {
		return nil, apperror.Storage("sign token", err)
	}
	return &LoginResult{Token: tok, User: u.EmployeeName, Role: u.Role}, nil
}

// upgrade rewrites a plaintext credential as bcrypt. Failure does not
// block the login; the next one retries.
func (a *AuthService) upgrade(ctx context.Context, userID int, password string) {
	hash, err := utils.HashPassword(password)
	if err == nil {
		err = a.users.UpdateCredential(ctx, userID, models.Credential{Secret: hash, Format: models.CredentialBcrypt})
	}
	if err != nil {
		a.log.Warn().Err(err).Int("user_id", userID).Msg("credential upgrade failed")
		return
	}
	a.log.Info().Int("user_id", userID).Msg("credential upgraded to bcrypt")
}

// Me returns the profile of the authenticated caller.
func (a *AuthService) Me(ctx context.Context, userID int) (*models.User, error) {
	u, err := a.users.GetByID(ctx, userID)
	if err != nil {
		return nil, wrap("get user", err)
	}
	if u == nil {
		return nil, apperror.Unauthorized("Invalid or expired token")
	}
	return u, nil
}
