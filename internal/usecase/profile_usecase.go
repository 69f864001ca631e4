package usecase

import (
	"context"

	"handly/internal/domain/entity"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, subject string) (*entity.Credential, error)
}
