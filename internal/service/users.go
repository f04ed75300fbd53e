package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

// Register creates a new user with hashed password
func (s *Service) Register(ctx context.Context, name, email, password, role, cooperativeID string) (*models.User, error) {
	switch role {
	case models.RoleSuperadmin, models.RoleManager, models.RoleMember:
	default:
		return nil, apperrors.NewValidation("unknown role %q", role)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:          name,
		Email:         email,
		PasswordHash:  string(hashedPassword),
		Role:          role,
		CooperativeID: cooperativeID,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s (%s)", user.Email, user.Role)
	return user, nil
}

// Login authenticates a user and returns a JWT token carrying the resolved
// (userID, cooperativeID, role) the middleware injects into every request.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.FindUserByEmail(ctx, email)
	if err != nil {
		return "", apperrors.NewValidation("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.NewValidation("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"coop": user.CooperativeID,
		"role": user.Role,
		"exp":  jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}
