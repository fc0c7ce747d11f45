package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/pageza/bangladiet/backend/internal/apperrors"
	"github.com/pageza/bangladiet/backend/internal/models"
	"github.com/pageza/bangladiet/backend/internal/repository"
	"github.com/pageza/bangladiet/backend/internal/types"
)

// ProfileService reads and updates a user's profile.
type ProfileService struct {
	users     repository.UserRepository
	estimator *TargetEstimator
}

// NewProfileService creates a new ProfileService.
func NewProfileService(users repository.UserRepository, estimator *TargetEstimator) *ProfileService {
	return &ProfileService{users: users, estimator: estimator}
}

// GetProfile loads the user behind a session.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// UpdateProfile applies req. When a biometric field or the medical
// condition changes, targets are estimated again.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.User, bool, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	reestimate := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, false, apperrors.Validation("name must not be empty")
		}
		user.Name = name
	}
	if req.Age != nil && *req.Age != user.Age {
		user.Age = *req.Age
		reestimate = true
	}
	if req.Height != nil && *req.Height != user.HeightCm {
		user.HeightCm = *req.Height
		reestimate = true
	}
	if req.Weight != nil && *req.Weight != user.WeightKg {
		user.WeightKg = *req.Weight
		reestimate = true
	}
	if req.Gender != nil && strings.TrimSpace(*req.Gender) != user.Gender {
		user.Gender = strings.TrimSpace(*req.Gender)
		reestimate = true
	}
	if req.MedicalCondition != nil {
		cond := strings.TrimSpace(*req.MedicalCondition)
		current := ""
		if user.MedicalCondition != nil {
			current = *user.MedicalCondition
		}
		if cond != current {
			if cond == "" {
				user.MedicalCondition = nil
			} else {
				user.MedicalCondition = &cond
			}
			reestimate = true
		}
	}
	if req.Timezone != nil {
		user.Timezone = strings.TrimSpace(*req.Timezone)
	}

	if !user.HasBiometrics() {
		return nil, false, apperrors.Validation("age, height, weight and gender are required")
	}
	// Users created before targets existed get them on their first update.
	if !user.HasTargets() {
		reestimate = true
	}

	if reestimate {
		targets, source := s.estimator.Estimate(ctx, user.Profile())
		user.SetTargets(targets)
		log.Printf("[ProfileService] Re-estimated targets for %s (from %s)", user.ID, source)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, false, fmt.Errorf("failed to update user: %w", err)
	}
	return user, reestimate, nil
}
