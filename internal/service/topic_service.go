package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"matelog-backend/internal/db"
	"matelog-backend/internal/model"
	"matelog-backend/internal/repository"
	"matelog-backend/utilities"
)

// EventTopicCompleted is published after a passing finalize commits.
const EventTopicCompleted = "topic_completed"

// TopicCompletedEvent is the payload of EventTopicCompleted.
type TopicCompletedEvent struct {
	UserID  uint
	TopicID uint
}

// ValidateAnswerInput is one answer submission.
type ValidateAnswerInput struct {
	ExerciseID          uint   `json:"ejercicio_id" binding:"required"`
	Answer              string `json:"respuesta" binding:"required"`
	UsedHint            bool   `json:"uso_ayuda"`
	ResponseTimeSeconds *int   `json:"tiempo_respuesta_segundos"`
}

type TopicService interface {
	GetTopicDetail(userID, topicID uint) (*TopicDetail, error)
	ValidateAnswer(userID uint, input ValidateAnswerInput) (*ValidationResult, error)
	FinalizeTopic(userID, topicID uint) (*FinalizeResult, error)
	RetryTopic(userID, topicID uint) error
	ReturnToTopic(topicID uint) error
	GetAttemptHistory(userID, topicID uint, page, pageSize int) (*AttemptHistory, error)
}

type topicService struct {
	lessonRepo   repository.LessonRepository
	progressRepo repository.ProgressRepository
	passPercent  float64
}

// NewTopicService builds the scoring engine. passPercent is the accuracy
// threshold (inclusive) at which a finalize passes.
func NewTopicService(lessonRepo repository.LessonRepository, progressRepo repository.ProgressRepository, passPercent float64) TopicService {
	return &topicService{
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		passPercent:  passPercent,
	}
}

// round2 keeps percentages at two decimal places, the precision they are
// stored and reported with.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GetTopicDetail returns the topic's contents and exercises plus the user's
// in-attempt state: which exercises are already answered and where to resume.
func (s *topicService) GetTopicDetail(userID, topicID uint) (*TopicDetail, error) {
	topic, err := s.lessonRepo.GetTopicByID(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	progress, _, err := s.progressRepo.GetOrCreateTopicProgress(userID, topic.ID, model.TopicProgress{})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve topic progress: %w", err)
	}

	if !progress.Unlocked && topic.Order != 1 {
		return nil, ErrTopicLocked
	}

	if progress.State == model.TopicNotStarted {
		now := time.Now()
		progress.State = model.TopicStarted
		progress.StartedAt = &now
		if err := s.progressRepo.SaveTopicProgress(progress); err != nil {
			return nil, err
		}
	}

	responses, err := s.progressRepo.GetResponses(progress.ID)
	if err != nil {
		return nil, err
	}
	answered := make(map[uint]AnsweredExercise, len(responses))
	for _, r := range responses {
		answered[r.ExerciseID] = AnsweredExercise{
			UserAnswer: r.UserAnswer,
			IsCorrect:  r.IsCorrect,
			UsedHint:   r.UsedHint,
		}
	}

	contents := make([]ContentView, 0, len(topic.Contents))
	for _, c := range topic.Contents {
		contents = append(contents, newContentView(c))
	}
	exercises := make([]ExerciseView, 0, len(topic.Exercises))
	for _, e := range topic.Exercises {
		exercises = append(exercises, newExerciseView(e))
	}

	// Resume at the first unanswered exercise. When every exercise is
	// answered the index intentionally falls back to 0, matching the
	// behavior the frontend was built against.
	nextIndex := 0
	for idx, e := range topic.Exercises {
		if _, ok := answered[e.ID]; !ok {
			nextIndex = idx
			break
		}
	}
	if len(answered) == len(topic.Exercises) {
		nextIndex = 0
	}

	return &TopicDetail{
		ID:                topic.ID,
		Title:             topic.Title,
		Description:       topic.Description,
		Order:             topic.Order,
		Contents:          contents,
		Exercises:         exercises,
		Answered:          answered,
		NextExerciseIndex: nextIndex,
		AnsweredCount:     len(answered),
	}, nil
}

// ValidateAnswer grades one submission and records it. Submission is
// idempotent per attempt cycle: a second answer to the same exercise returns
// the previously recorded outcome untouched.
func (s *topicService) ValidateAnswer(userID uint, input ValidateAnswerInput) (*ValidationResult, error) {
	exercise, err := s.lessonRepo.GetExerciseByID(input.ExerciseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	topic, err := s.lessonRepo.GetTopicByID(exercise.TopicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var result *ValidationResult
	err = db.GetDB().Transaction(func(tx *gorm.DB) error {
		repo := s.progressRepo.WithTx(tx)

		now := time.Now()
		progress, created, err := repo.GetOrCreateTopicProgress(userID, topic.ID, model.TopicProgress{
			State:     model.TopicStarted,
			StartedAt: &now,
		})
		if err != nil {
			return fmt.Errorf("failed to resolve topic progress: %w", err)
		}

		if !progress.Unlocked && topic.Order != 1 {
			return ErrTopicLocked
		}

		if !created && progress.StartedAt == nil {
			progress.StartedAt = &now
			progress.State = model.TopicStarted
			if err := repo.SaveTopicProgress(progress); err != nil {
				return err
			}
		}

		// First answer wins for the rest of the attempt cycle.
		existing, err := repo.GetResponse(userID, exercise.ID, progress.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = &ValidationResult{
				IsCorrect: existing.IsCorrect,
				Feedback:  exercise.Feedback(existing.IsCorrect),
			}
			return nil
		}

		correct := exercise.ValidateAnswer(input.Answer)

		responseTime := 0
		if input.ResponseTimeSeconds != nil {
			responseTime = *input.ResponseTimeSeconds
		}
		if err := repo.CreateResponse(&model.ExerciseResponse{
			UserID:              userID,
			ExerciseID:          exercise.ID,
			TopicProgressID:     progress.ID,
			UserAnswer:          input.Answer,
			IsCorrect:           correct,
			UsedHint:            input.UsedHint,
			ResponseTimeSeconds: responseTime,
		}); err != nil {
			return fmt.Errorf("failed to record response: %w", err)
		}

		result = &ValidationResult{
			IsCorrect: correct,
			Feedback:  exercise.Feedback(correct),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FinalizeTopic closes the current attempt cycle: it aggregates the cycle's
// responses into an immutable TopicAttempt, updates the topic progress, and
// on a pass runs the unlock cascade. The whole step is one transaction so a
// failure cannot leave attempts_made bumped without its attempt record.
func (s *topicService) FinalizeTopic(userID, topicID uint) (*FinalizeResult, error) {
	topic, err := s.lessonRepo.GetTopicByID(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var result *FinalizeResult
	err = db.GetDB().Transaction(func(tx *gorm.DB) error {
		repo := s.progressRepo.WithTx(tx)
		lessons := s.lessonRepo.WithTx(tx)

		now := time.Now()
		progress, _, err := repo.GetOrCreateTopicProgress(userID, topic.ID, model.TopicProgress{
			Unlocked:  true,
			State:     model.TopicStarted,
			StartedAt: &now,
		})
		if err != nil {
			return fmt.Errorf("failed to resolve topic progress: %w", err)
		}

		responses, err := repo.GetResponses(progress.ID)
		if err != nil {
			return err
		}

		// Unanswered exercises still count toward the total.
		total := uint(len(topic.Exercises))
		var correct, incorrect, withHint uint
		timeTotal := 0
		for _, r := range responses {
			if r.IsCorrect {
				correct++
			} else {
				incorrect++
			}
			if r.UsedHint {
				withHint++
			}
			timeTotal += r.ResponseTimeSeconds
		}

		accuracy := 0.0
		timeAvg := 0
		if total > 0 {
			accuracy = round2(100 * float64(correct) / float64(total))
			timeAvg = timeTotal / int(total)
		}
		passed := accuracy >= s.passPercent

		progress.AttemptsMade++
		attemptNumber := progress.AttemptsMade

		improvement := 0.0
		if attemptNumber > 1 {
			previous, err := repo.GetAttempt(userID, topic.ID, attemptNumber-1)
			if err != nil {
				return err
			}
			if previous != nil {
				improvement = round2(accuracy - previous.AccuracyPercent)
			}
		}

		startedAt := now
		if progress.StartedAt != nil {
			startedAt = *progress.StartedAt
		}
		attempt := &model.TopicAttempt{
			UserID:             userID,
			TopicID:            topic.ID,
			TopicProgressID:    progress.ID,
			AttemptNumber:      attemptNumber,
			CorrectCount:       correct,
			IncorrectCount:     incorrect,
			TotalCount:         total,
			AccuracyPercent:    accuracy,
			WithHintCount:      withHint,
			TimeTotalSeconds:   timeTotal,
			TimeAvgSeconds:     timeAvg,
			Passed:             passed,
			ImprovementPercent: improvement,
			StartedAt:          startedAt,
			FinishedAt:         now,
		}
		if err := repo.CreateAttempt(attempt); err != nil {
			return fmt.Errorf("failed to record attempt: %w", err)
		}

		progress.AccuracyPercent = accuracy

		var nextTopicID *uint
		if passed {
			progress.State = model.TopicCompleted
			progress.CompletedAt = &now

			next, err := lessons.GetNextActiveTopic(topic.LessonID, topic.Order)
			if err != nil {
				return err
			}
			if next != nil {
				nextProgress, _, err := repo.GetOrCreateTopicProgress(userID, next.ID, model.TopicProgress{
					Unlocked: true,
				})
				if err != nil {
					return err
				}
				if !nextProgress.Unlocked {
					nextProgress.Unlocked = true
					if err := repo.SaveTopicProgress(nextProgress); err != nil {
						return err
					}
				}
				id := next.ID
				nextTopicID = &id
			}

			if err := s.rollUpLessonProgress(repo, lessons, userID, topic.LessonID, now); err != nil {
				return err
			}
		}

		if err := repo.SaveTopicProgress(progress); err != nil {
			return err
		}

		result = &FinalizeResult{
			Passed:          passed,
			AccuracyPercent: accuracy,
			CorrectCount:    correct,
			TotalCount:      total,
			LessonID:        topic.LessonID,
			TopicID:         topic.ID,
			NextTopicID:     nextTopicID,
			AttemptNumber:   attemptNumber,
		}
		if improvement != 0 {
			result.ImprovementPercent = &improvement
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Passed {
		utilities.GlobalEventBus.Publish(EventTopicCompleted, TopicCompletedEvent{UserID: userID, TopicID: topic.ID})
	}
	return result, nil
}

// rollUpLessonProgress recomputes the lesson completion percentage from the
// user's completed topics. A lesson with no active topics keeps its prior
// percentage and state.
func (s *topicService) rollUpLessonProgress(repo repository.ProgressRepository, lessons repository.LessonRepository, userID, lessonID uint, now time.Time) error {
	lessonProgress, _, err := repo.GetOrCreateLessonProgress(userID, lessonID, model.LessonProgress{})
	if err != nil {
		return err
	}

	activeTopics, err := lessons.CountActiveTopics(lessonID)
	if err != nil {
		return err
	}
	completedTopics, err := repo.CountCompletedTopics(userID, lessonID)
	if err != nil {
		return err
	}

	if activeTopics > 0 {
		lessonProgress.CompletionPercent = round2(100 * float64(completedTopics) / float64(activeTopics))
		if completedTopics == activeTopics {
			lessonProgress.State = model.LessonCompleted
			lessonProgress.CompletedAt = &now
		}
	}

	return repo.SaveLessonProgress(lessonProgress)
}

// RetryTopic wipes the current attempt cycle's responses and rewinds the
// progress to INICIADO with a fresh start time. attempts_made is untouched;
// it only moves at finalize time.
func (s *topicService) RetryTopic(userID, topicID uint) error {
	topic, err := s.lessonRepo.GetTopicByID(topicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return db.GetDB().Transaction(func(tx *gorm.DB) error {
		repo := s.progressRepo.WithTx(tx)

		progress, err := repo.GetTopicProgress(userID, topic.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := repo.DeleteResponses(progress.ID); err != nil {
			return fmt.Errorf("failed to clear responses: %w", err)
		}

		now := time.Now()
		progress.State = model.TopicStarted
		progress.StartedAt = &now
		return repo.SaveTopicProgress(progress)
	})
}

// ReturnToTopic acknowledges navigation from the exercises back to the topic
// content. It mutates nothing; it only confirms the topic exists.
func (s *topicService) ReturnToTopic(topicID uint) error {
	if _, err := s.lessonRepo.GetTopicByID(topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// GetAttemptHistory pages through the topic's attempt records, newest first.
func (s *topicService) GetAttemptHistory(userID, topicID uint, page, pageSize int) (*AttemptHistory, error) {
	if _, err := s.lessonRepo.GetTopicByID(topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	attempts, total, err := s.progressRepo.GetAttempts(userID, topicID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return &AttemptHistory{
		Attempts: attempts,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
