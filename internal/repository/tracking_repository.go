package repository

import (
	"gorm.io/gorm"

	"matelog-backend/internal/db"
	"matelog-backend/internal/model"
)

type TrackingRepository interface {
	CreateSession(session *model.StudySession) error
	GetSession(id, userID uint) (*model.StudySession, error)
	SaveSession(session *model.StudySession) error

	CreateActivity(activity *model.ScreenActivity) error
	GetActivity(id uint) (*model.ScreenActivity, error)
	SaveActivity(activity *model.ScreenActivity) error
}

type trackingRepository struct {
	conn *gorm.DB
}

func NewTrackingRepository() TrackingRepository {
	return &trackingRepository{}
}

func (r *trackingRepository) db() *gorm.DB {
	if r.conn != nil {
		return r.conn
	}
	return db.GetDB()
}

func (r *trackingRepository) CreateSession(session *model.StudySession) error {
	return r.db().Create(session).Error
}

func (r *trackingRepository) GetSession(id, userID uint) (*model.StudySession, error) {
	var session model.StudySession
	err := r.db().Where("id = ? AND user_id = ?", id, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *trackingRepository) SaveSession(session *model.StudySession) error {
	return r.db().Save(session).Error
}

func (r *trackingRepository) CreateActivity(activity *model.ScreenActivity) error {
	return r.db().Create(activity).Error
}

func (r *trackingRepository) GetActivity(id uint) (*model.ScreenActivity, error) {
	var activity model.ScreenActivity
	err := r.db().First(&activity, id).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *trackingRepository) SaveActivity(activity *model.ScreenActivity) error {
	return r.db().Save(activity).Error
}
