package service

import (
	"context"

	"impactolocal-backend/internal/domain"
	"impactolocal-backend/internal/repository"
)

type profileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{profileRepo: profileRepo}
}

func (s *profileService) Get(ctx context.Context, userID int32) (*domain.Profile, error) {
	return s.profileRepo.GetByID(ctx, userID)
}

func (s *profileService) Update(ctx context.Context, userID int32, profile *domain.Profile) error {
	current, err := s.profileRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	current.Name = profile.Name
	current.Phone = profile.Phone
	current.AvatarURL = profile.AvatarURL
	current.Bio = profile.Bio
	if current.Role == domain.RoleOrganization {
		current.Mission = profile.Mission
		current.Vision = profile.Vision
		current.History = profile.History
	}
	return s.profileRepo.Update(ctx, current)
}
