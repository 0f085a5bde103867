// Package session issues and checks the bearer tokens that name the acting
// collaboration user.
package session

import (
	"context"
	"log/slog"
	"time"

	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/pkg/jwt"
	"rsv-catalog/internal/usecase/collaboration"
)

var ErrTokenGeneration = errs.New("token generation failed")

type Token struct {
	AccessToken string              `json:"access_token"`
	ExpiresAt   time.Time           `json:"expires_at"`
	User        *collaboration.User `json:"user"`
}

//go:generate mockgen -source=session.go -destination=../../../tests/mock/session/session.go -package=sessionmock
// Service is also the token validator used by the actor middleware.
type Service interface {
	Issue(ctx context.Context, userID string) (*Token, error)
	ValidateToken(tokenString string) (userID string, role collaboration.Role, err error)
}

type serviceImpl struct {
	jwt    *jwt.Service
	users  collaboration.Manager
	logger *slog.Logger
}

func NewService(jwtService *jwt.Service, users collaboration.Manager, logger *slog.Logger) Service {
	return &serviceImpl{jwt: jwtService, users: users, logger: logger}
}

func (s *serviceImpl) Issue(ctx context.Context, userID string) (*Token, error) {
	u, ok := s.users.User(ctx, userID)
	if !ok {
		return nil, errs.Wrap(errs.ErrUserNotFound, userID)
	}

	token, expiresAt, err := s.jwt.GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "sign token"), ErrTokenGeneration)
	}

	if err := s.users.Touch(ctx, u.ID); err != nil {
		// lastActive is informational; the token is still valid
		s.logger.WarnContext(ctx, "failed to update last activity", "user_id", u.ID, "error", err)
	}

	return &Token{AccessToken: token, ExpiresAt: expiresAt, User: u}, nil
}

func (s *serviceImpl) ValidateToken(tokenString string) (string, collaboration.Role, error) {
	claims, err := s.jwt.ValidateToken(tokenString)
	if err != nil {
		return "", "", err
	}

	role := collaboration.Role(claims.Role)
	if !role.IsValid() {
		return "", "", jwt.ErrInvalidToken
	}
	return claims.UserID, role, nil
}
