package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/pageza/bangladiet/backend/internal/apperrors"
	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/repository"
	"github.com/pageza/bangladiet/backend/internal/types"
)

// RegisterInput is the data collected at signup.
type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	Age              int
	HeightCm         float64
	WeightKg         float64
	Gender           string
	MedicalCondition string
	Timezone         string
}

// AuthService handles signup, signin and session tokens.
type AuthService struct {
	users     repository.UserRepository
	estimator *TargetEstimator
	blacklist TokenBlacklist
	jwtSecret []byte
	tokenTTL  time.Duration
	clock     Clock
}

// NewAuthService creates an AuthService. blacklist may be nil, in which case
// logout only succeeds client-side.
func NewAuthService(users repository.UserRepository, estimator *TargetEstimator, blacklist TokenBlacklist, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		estimator: estimator,
		blacklist: blacklist,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		clock:     SystemClock(),
	}
}

// Register creates a user and persists targets estimated from the profile.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, TargetSource, error) {
	email := normalizeEmail(in.Email)
	if strings.TrimSpace(in.Name) == "" || email == "" || in.Password == "" ||
		in.Age <= 0 || in.HeightCm <= 0 || in.WeightKg <= 0 || strings.TrimSpace(in.Gender) == "" {
		return nil, "", apperrors.Validation("All required fields must be provided")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", apperrors.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Age:          in.Age,
		HeightCm:     in.HeightCm,
		WeightKg:     in.WeightKg,
		Gender:       strings.TrimSpace(in.Gender),
		Timezone:     in.Timezone,
	}
	if cond := strings.TrimSpace(in.MedicalCondition); cond != "" {
		user.MedicalCondition = &cond
	}

	targets, source := s.estimator.Estimate(ctx, user.Profile())
	user.SetTargets(targets)

	// The unique index still guards against a concurrent signup.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	log.Printf("[AuthService] Registered user %s (targets from %s)", user.ID, source)
	return user, source, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *types.TokenClaims, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same bcrypt work as a wrong password.
			_ = bcrypt.CompareHashAndPassword(unknownUserHash(), []byte(password))
			return "", nil, nil, apperrors.ErrInvalidCredentials
		}
		return "", nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, nil, apperrors.ErrInvalidCredentials
	}

	token, claims, err := s.GenerateToken(user)
	if err != nil {
		return "", nil, nil, err
	}
	return token, claims, user, nil
}

// GenerateToken signs a token for user with a fresh token id.
func (s *AuthService) GenerateToken(user *models.User) (string, *types.TokenClaims, error) {
	now := s.clock.Now()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID: user.ID,
		Email:  user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// ValidateToken checks the signature, expiry and revocation of tokenString.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	claims := &types.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	}, jwt.WithTimeFunc(s.clock.Now))
	if err != nil || !token.Valid {
		return nil, apperrors.ErrUnauthorized
	}
	if claims.UserID == uuid.Nil || claims.ID == "" {
		return nil, apperrors.ErrUnauthorized
	}

	if s.blacklist != nil {
		revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
		if err != nil {
			log.Printf("[AuthService] Revocation check failed: %v", err)
		} else if revoked {
			return nil, apperrors.ErrUnauthorized
		}
	}

	return claims, nil
}

// Logout revokes the token described by claims for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	if s.blacklist == nil || claims == nil || claims.ExpiresAt == nil {
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Sub(s.clock.Now()))
}

const passwordCost = bcrypt.DefaultCost

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// unknownUserHash is compared against when the email matches no user.
func unknownUserHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-user"), passwordCost)
	})
	return dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
