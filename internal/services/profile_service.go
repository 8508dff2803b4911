package services

import (
	"context"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/repository"
)

type ProfileReader interface {
	GetByUID(ctx context.Context, uid string) (*models.Profile, error)
}

type PreferencesUpdater interface {
	UpdatePreferences(ctx context.Context, uid string, input repository.UpdatePreferencesInput) (*models.Profile, error)
}

type ProfileStore interface {
	ProfileReader
	PreferencesUpdater
}

type LiftRecordLister interface {
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.LiftRecord, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}

type ProfileService struct {
	profileRepo ProfileStore
	liftRepo    LiftRecordLister
}

func NewProfileService(profileRepo ProfileStore, liftRepo LiftRecordLister) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, liftRepo: liftRepo}
}

func (s *ProfileService) GetProfile(ctx context.Context, uid string) (*models.Profile, error) {
	return s.profileRepo.GetByUID(ctx, uid)
}

func (s *ProfileService) UpdatePreferences(ctx context.Context, uid string, input repository.UpdatePreferencesInput) (*models.Profile, error) {
	return s.profileRepo.UpdatePreferences(ctx, uid, input)
}

func (s *ProfileService) ListLiftRecords(ctx context.Context, uid string, page, limit int) ([]models.LiftRecord, int, error) {
	records, err := s.liftRepo.ListByUser(ctx, uid, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.liftRepo.CountByUser(ctx, uid)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
