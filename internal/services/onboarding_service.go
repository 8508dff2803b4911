package services

import (
	"context"
	"log"
	"time"

	"github.com/Noaaaaa59/powerlifting-app-v2/internal/events"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/models"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/observability"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/onboarding"
	"github.com/Noaaaaa59/powerlifting-app-v2/internal/repository"
)

// SeedNote marks lift records created by the onboarding flow.
const SeedNote = "PR initial (onboarding)"

type profileOnboardingStore interface {
	CompleteOnboarding(ctx context.Context, uid string, input repository.OnboardingInput) (*models.Profile, error)
}

type liftRecordAppender interface {
	Append(ctx context.Context, input repository.AppendLiftRecordInput) (*models.LiftRecord, error)
}

// OnboardingService commits a validated wizard result as a two-step saga:
// the profile merge first, then one lift-record append per entered PR. The
// steps are deliberately not a single transaction; a partial append failure
// leaves the profile completed and the written subset in place.
type OnboardingService struct {
	profileRepo profileOnboardingStore
	liftRepo    liftRecordAppender
	publisher   events.Publisher
}

func NewOnboardingService(profileRepo profileOnboardingStore, liftRepo liftRecordAppender, publisher events.Publisher) *OnboardingService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &OnboardingService{
		profileRepo: profileRepo,
		liftRepo:    liftRepo,
		publisher:   publisher,
	}
}

// Complete performs the composite write. A profile-merge failure aborts the
// whole operation and is retryable. Append failures after the merge are the
// accepted inconsistency window: they are logged and counted, never
// propagated, since retrying the whole commit would duplicate the records
// already written.
func (s *OnboardingService) Complete(ctx context.Context, uid string, result onboarding.Result) (*models.Profile, error) {
	profile, err := s.profileRepo.CompleteOnboarding(ctx, uid, repository.OnboardingInput{
		Gender:                result.Gender,
		Bodyweight:            result.Bodyweight,
		Experience:            result.Experience,
		ProgramType:           result.ProgramType,
		ProgramDaysPerWeek:    result.DaysPerWeek,
		ProgramDurationWeeks:  result.DurationWeeks,
		ProgramPriorityLift:   result.PriorityLift,
		ProgramTrainingMaxPct: result.TrainingMaxPercentage,
	})
	if err != nil {
		return nil, err
	}
	observability.RecordOnboardingCompleted()
	events.LogOnError(ctx, s.publisher, events.TopicOnboardingCompleted, uid, events.OnboardingCompleted{
		UserID:        uid,
		Gender:        result.Gender,
		Experience:    result.Experience,
		ProgramType:   result.ProgramType,
		DaysPerWeek:   result.DaysPerWeek,
		DurationWeeks: result.DurationWeeks,
		CompletedAt:   time.Now().UTC(),
	})

	s.seedInitialPRs(ctx, uid, result)
	return profile, nil
}

// seedInitialPRs appends one record per lift with a positive value. A lift
// entered as 0 is skipped entirely.
func (s *OnboardingService) seedInitialPRs(ctx context.Context, uid string, result onboarding.Result) {
	prs := []struct {
		exercise string
		weight   float64
	}{
		{models.ExerciseSquat, result.Squat},
		{models.ExerciseBench, result.Bench},
		{models.ExerciseDeadlift, result.Deadlift},
	}
	for _, pr := range prs {
		if pr.weight <= 0 {
			continue
		}
		record, err := s.liftRepo.Append(ctx, repository.AppendLiftRecordInput{
			UserID:       uid,
			Exercise:     pr.exercise,
			Weight:       pr.weight,
			Reps:         1,
			EstimatedMax: pr.weight,
			Notes:        SeedNote,
		})
		if err != nil {
			observability.RecordOnboardingPartialWrite()
			log.Printf("onboarding: seed %s PR for %s: %v", pr.exercise, uid, err)
			continue
		}
		observability.RecordLiftRecordSeeded()
		events.LogOnError(ctx, s.publisher, events.TopicLiftRecordCreated, uid, events.LiftRecordCreated{
			RecordID:     record.ID,
			UserID:       record.UserID,
			Exercise:     record.Exercise,
			Weight:       record.Weight,
			Reps:         record.Reps,
			EstimatedMax: record.EstimatedMax,
			Date:         record.Date,
		})
	}
}
