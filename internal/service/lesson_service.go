package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"matelog-backend/internal/model"
	"matelog-backend/internal/repository"
)

type LessonService interface {
	GetLessons(userID uint) ([]LessonSummary, error)
	GetLessonDetail(userID, lessonID uint) (*LessonDetail, error)
}

type lessonService struct {
	lessonRepo   repository.LessonRepository
	progressRepo repository.ProgressRepository
}

func NewLessonService(lessonRepo repository.LessonRepository, progressRepo repository.ProgressRepository) LessonService {
	return &lessonService{lessonRepo: lessonRepo, progressRepo: progressRepo}
}

// GetLessons lists active lessons annotated with the user's progress
// snapshot. Lessons never visited report SIN_INICIAR without creating rows.
func (s *lessonService) GetLessons(userID uint) ([]LessonSummary, error) {
	lessons, err := s.lessonRepo.GetActiveLessons()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lessons: %w", err)
	}

	summaries := make([]LessonSummary, 0, len(lessons))
	for _, lesson := range lessons {
		topicCount, err := s.lessonRepo.CountActiveTopics(lesson.ID)
		if err != nil {
			return nil, err
		}

		snapshot := ProgressSnapshot{State: model.LessonNotStarted}
		progress, err := s.progressRepo.GetLessonProgress(userID, lesson.ID)
		if err != nil {
			return nil, err
		}
		if progress != nil {
			snapshot = ProgressSnapshot{
				State:             progress.State,
				CompletionPercent: progress.CompletionPercent,
			}
		}

		summaries = append(summaries, LessonSummary{
			ID:          lesson.ID,
			Title:       lesson.Title,
			Description: lesson.Description,
			Order:       lesson.Order,
			TopicCount:  topicCount,
			Progress:    snapshot,
		})
	}
	return summaries, nil
}

// GetLessonDetail returns the lesson with its active topics, each annotated
// with the user's topic progress. First visit lazily creates the
// LessonProgress and moves it to EN_PROGRESO; the order-1 topic is unlocked
// on sight.
func (s *lessonService) GetLessonDetail(userID, lessonID uint) (*LessonDetail, error) {
	lesson, err := s.lessonRepo.GetLessonByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	progress, created, err := s.progressRepo.GetOrCreateLessonProgress(userID, lesson.ID, model.LessonProgress{
		State:     model.LessonInProgress,
		StartedAt: &now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve lesson progress: %w", err)
	}
	if !created && progress.State == model.LessonNotStarted {
		progress.State = model.LessonInProgress
		if progress.StartedAt == nil {
			progress.StartedAt = &now
		}
		if err := s.progressRepo.SaveLessonProgress(progress); err != nil {
			return nil, err
		}
	}

	topics, err := s.lessonRepo.GetActiveTopics(lesson.ID)
	if err != nil {
		return nil, err
	}

	summaries := make([]TopicSummary, 0, len(topics))
	for _, topic := range topics {
		topicProgress, _, err := s.progressRepo.GetOrCreateTopicProgress(userID, topic.ID, model.TopicProgress{})
		if err != nil {
			return nil, err
		}

		// The first topic of a lesson is always open.
		if topic.Order == 1 && !topicProgress.Unlocked {
			topicProgress.Unlocked = true
			if err := s.progressRepo.SaveTopicProgress(topicProgress); err != nil {
				return nil, err
			}
		}

		contentCount, err := s.lessonRepo.CountContents(topic.ID)
		if err != nil {
			return nil, err
		}
		exerciseCount, err := s.lessonRepo.CountExercises(topic.ID)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, TopicSummary{
			ID:            topic.ID,
			Title:         topic.Title,
			Description:   topic.Description,
			Order:         topic.Order,
			ContentCount:  contentCount,
			ExerciseCount: exerciseCount,
			Progress: TopicProgressSnapshot{
				State:           topicProgress.State,
				Unlocked:        topicProgress.Unlocked,
				AccuracyPercent: topicProgress.AccuracyPercent,
				AttemptsMade:    topicProgress.AttemptsMade,
			},
		})
	}

	return &LessonDetail{
		ID:          lesson.ID,
		Title:       lesson.Title,
		Description: lesson.Description,
		Order:       lesson.Order,
		Topics:      summaries,
		Progress: ProgressSnapshot{
			State:             progress.State,
			CompletionPercent: progress.CompletionPercent,
		},
	}, nil
}
