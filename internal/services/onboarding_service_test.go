package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/onboarding"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/repository"
)

type stubOnboardingProfileRepo struct {
	lastUID   string
	lastInput repository.OnboardingInput
	err       error
}

func (s *stubOnboardingProfileRepo) CompleteOnboarding(_ context.Context, uid string, input repository.OnboardingInput) (*models.Profile, error) {
	s.lastUID = uid
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	gender := input.Gender
	return &models.Profile{
		UID:                 uid,
		Gender:              &gender,
		Bodyweight:          input.Bodyweight,
		Experience:          input.Experience,
		OnboardingCompleted: true,
		ProgramSettings: &models.ProgramSettings{
			ProgramType:           input.ProgramType,
			DaysPerWeek:           input.ProgramDaysPerWeek,
			DurationWeeks:         input.ProgramDurationWeeks,
			PriorityLift:          input.ProgramPriorityLift,
			TrainingMaxPercentage: input.ProgramTrainingMaxPct,
		},
	}, nil
}

type stubLiftRepo struct {
	appends []repository.AppendLiftRecordInput
	failOn  string
}

func (s *stubLiftRepo) Append(_ context.Context, input repository.AppendLiftRecordInput) (*models.LiftRecord, error) {
	if s.failOn == input.Exercise {
		return nil, errors.New("append failed")
	}
	s.appends = append(s.appends, input)
	return &models.LiftRecord{
		ID:           "rec-" + input.Exercise,
		UserID:       input.UserID,
		Exercise:     input.Exercise,
		Weight:       input.Weight,
		Reps:         input.Reps,
		EstimatedMax: input.EstimatedMax,
		Notes:        input.Notes,
	}, nil
}

func validResult() onboarding.Result {
	priority := models.ExerciseSquat
	return onboarding.Result{
		Gender:                models.GenderFemale,
		Bodyweight:            65,
		Experience:            models.ExperienceIntermediate,
		ProgramType:           models.ProgramType531,
		DaysPerWeek:           4,
		DurationWeeks:         4,
		PriorityLift:          &priority,
		TrainingMaxPercentage: 90,
		Squat:                 100,
		Bench:                 50,
		Deadlift:              120,
	}
}

func TestCompleteWritesProfileThenSeedsAllLifts(t *testing.T) {
	profileRepo := &stubOnboardingProfileRepo{}
	liftRepo := &stubLiftRepo{}
	service := NewOnboardingService(profileRepo, liftRepo, nil)

	profile, err := service.Complete(context.Background(), "u1", validResult())
	require.NoError(t, err)
	require.True(t, profile.OnboardingCompleted)
	require.Equal(t, "u1", profileRepo.lastUID)
	require.Equal(t, 4, profileRepo.lastInput.ProgramDaysPerWeek)

	require.Len(t, liftRepo.appends, 3)
	for i, exercise := range models.Lifts {
		got := liftRepo.appends[i]
		require.Equal(t, exercise, got.Exercise)
		require.Equal(t, 1, got.Reps)
		require.Equal(t, got.Weight, got.EstimatedMax)
		require.Equal(t, SeedNote, got.Notes)
	}
}

func TestCompleteSkipsZeroValueLifts(t *testing.T) {
	profileRepo := &stubOnboardingProfileRepo{}
	liftRepo := &stubLiftRepo{}
	service := NewOnboardingService(profileRepo, liftRepo, nil)

	result := validResult()
	result.Bench = 0

	_, err := service.Complete(context.Background(), "u1", result)
	require.NoError(t, err)
	require.Len(t, liftRepo.appends, 2)
	for _, got := range liftRepo.appends {
		require.NotEqual(t, models.ExerciseBench, got.Exercise)
	}
}

func TestCompleteProfileFailureAbortsBeforeSeeding(t *testing.T) {
	profileRepo := &stubOnboardingProfileRepo{err: errors.New("store unavailable")}
	liftRepo := &stubLiftRepo{}
	service := NewOnboardingService(profileRepo, liftRepo, nil)

	_, err := service.Complete(context.Background(), "u1", validResult())
	require.Error(t, err)
	require.Empty(t, liftRepo.appends, "no lift may be seeded when the profile merge fails")
}

func TestCompletePartialSeedFailureIsAccepted(t *testing.T) {
	profileRepo := &stubOnboardingProfileRepo{}
	liftRepo := &stubLiftRepo{failOn: models.ExerciseBench}
	service := NewOnboardingService(profileRepo, liftRepo, nil)

	profile, err := service.Complete(context.Background(), "u1", validResult())
	require.NoError(t, err, "a partial seed failure is the accepted inconsistency, not an error")
	require.True(t, profile.OnboardingCompleted)
	require.Len(t, liftRepo.appends, 2, "the successfully written subset remains")
}
