package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"matelog-backend/internal/model"
	"matelog-backend/internal/repository"
)

// StartActivityInput opens a screen-time measurement. The user may be
// anonymous on the login/register screens.
type StartActivityInput struct {
	Screen   model.ScreenKind `json:"tipo_pantalla"`
	LessonID *uint            `json:"leccion_id"`
	TopicID  *uint            `json:"tema_id"`
}

type TrackingService interface {
	StartSession(userID uint) (*model.StudySession, error)
	EndSession(userID, sessionID uint) (*model.StudySession, error)
	StartActivity(userID *uint, input StartActivityInput) (*model.ScreenActivity, error)
	EndActivity(activityID uint) (*model.ScreenActivity, error)
	RegisterReturnToContent(activityID uint) (*model.ScreenActivity, error)
}

type trackingService struct {
	trackingRepo repository.TrackingRepository
}

func NewTrackingService(trackingRepo repository.TrackingRepository) TrackingService {
	return &trackingService{trackingRepo: trackingRepo}
}

func (s *trackingService) StartSession(userID uint) (*model.StudySession, error) {
	session := &model.StudySession{
		UserID: userID,
		Token:  uuid.New().String(),
	}
	if err := s.trackingRepo.CreateSession(session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}
	return session, nil
}

func (s *trackingService) EndSession(userID, sessionID uint) (*model.StudySession, error) {
	session, err := s.trackingRepo.GetSession(sessionID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	session.EndedAt = &now
	session.DurationMinutes = int(now.Sub(session.StartedAt).Minutes())
	if err := s.trackingRepo.SaveSession(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *trackingService) StartActivity(userID *uint, input StartActivityInput) (*model.ScreenActivity, error) {
	screen := input.Screen
	if !screen.Valid() {
		screen = model.ScreenOther
	}
	activity := &model.ScreenActivity{
		UserID:   userID,
		Screen:   screen,
		LessonID: input.LessonID,
		TopicID:  input.TopicID,
	}
	if err := s.trackingRepo.CreateActivity(activity); err != nil {
		return nil, fmt.Errorf("failed to start activity: %w", err)
	}
	return activity, nil
}

func (s *trackingService) EndActivity(activityID uint) (*model.ScreenActivity, error) {
	activity, err := s.trackingRepo.GetActivity(activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := time.Now()
	activity.EndedAt = &now
	activity.Seconds = int(now.Sub(activity.StartedAt).Seconds())
	if err := s.trackingRepo.SaveActivity(activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// RegisterReturnToContent counts one press of the "volver" button on the
// topic content screen.
func (s *trackingService) RegisterReturnToContent(activityID uint) (*model.ScreenActivity, error) {
	activity, err := s.trackingRepo.GetActivity(activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	activity.ReturnsToContent++
	if err := s.trackingRepo.SaveActivity(activity); err != nil {
		return nil, err
	}
	return activity, nil
}
