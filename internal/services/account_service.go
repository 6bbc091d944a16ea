package services

import (
	"context"
	"errors"
	"fmt"

	"deployhub_backend/internal/logger"
	"deployhub_backend/internal/models"
	"deployhub_backend/internal/repositories"
)

// PlanChangeResult carries the outcome of a plan transition. Business-rule
// failures (unknown user, already at the target plan) are data, not errors;
// the error return is reserved for store failures.
type PlanChangeResult struct {
	User    *models.User
	Success bool
	Message string
}

type AccountService struct {
	userRepo repositories.UserRepository
}

func NewAccountService(userRepo repositories.UserRepository) *AccountService {
	return &AccountService{userRepo: userRepo}
}

// Upgrade moves a user from HOBBY to PRO.
//
// The read and the write are two statements with no lock in between, so two
// concurrent transitions on the same user are last-write-wins.
func (s *AccountService) Upgrade(ctx context.Context, userID string) (*PlanChangeResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return &PlanChangeResult{
				Success: false,
				Message: fmt.Sprintf("User with id %s not found", userID),
			}, nil
		}
		return nil, err
	}

	if user.Plan == models.PlanPro {
		return &PlanChangeResult{
			User:    user,
			Success: false,
			Message: "User is already on Pro plan",
		}, nil
	}

	updated, err := s.userRepo.UpdatePlan(ctx, userID, models.PlanPro)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "account upgraded", "user_id", userID, "plan", updated.Plan)
	return &PlanChangeResult{
		User:    updated,
		Success: true,
		Message: "Account upgraded to Pro successfully",
	}, nil
}

// Downgrade moves a user from PRO to HOBBY, symmetric to Upgrade.
func (s *AccountService) Downgrade(ctx context.Context, userID string) (*PlanChangeResult, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return &PlanChangeResult{
				Success: false,
				Message: fmt.Sprintf("User with id %s not found", userID),
			}, nil
		}
		return nil, err
	}

	if user.Plan == models.PlanHobby {
		return &PlanChangeResult{
			User:    user,
			Success: false,
			Message: "User is already on Hobby plan",
		}, nil
	}

	updated, err := s.userRepo.UpdatePlan(ctx, userID, models.PlanHobby)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "account downgraded", "user_id", userID, "plan", updated.Plan)
	return &PlanChangeResult{
		User:    updated,
		Success: true,
		Message: "Account downgraded to Hobby successfully",
	}, nil
}
