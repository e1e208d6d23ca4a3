package repository

import (
	"errors"

	"gorm.io/gorm"

	"matelog-backend/internal/db"
	"matelog-backend/internal/model"
)

type ProgressRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *gorm.DB) ProgressRepository

	GetOrCreateLessonProgress(userID, lessonID uint, defaults model.LessonProgress) (*model.LessonProgress, bool, error)
	SaveLessonProgress(p *model.LessonProgress) error
	GetLessonProgress(userID, lessonID uint) (*model.LessonProgress, error)

	GetOrCreateTopicProgress(userID, topicID uint, defaults model.TopicProgress) (*model.TopicProgress, bool, error)
	SaveTopicProgress(p *model.TopicProgress) error
	GetTopicProgress(userID, topicID uint) (*model.TopicProgress, error)
	CountCompletedTopics(userID, lessonID uint) (int64, error)

	GetResponses(topicProgressID uint) ([]model.ExerciseResponse, error)
	GetResponse(userID, exerciseID, topicProgressID uint) (*model.ExerciseResponse, error)
	CreateResponse(resp *model.ExerciseResponse) error
	DeleteResponses(topicProgressID uint) error

	CreateAttempt(attempt *model.TopicAttempt) error
	GetAttempt(userID, topicID, number uint) (*model.TopicAttempt, error)
	GetAttempts(userID, topicID uint, limit, offset int) ([]model.TopicAttempt, int64, error)
}

type progressRepository struct {
	conn *gorm.DB
}

func NewProgressRepository() ProgressRepository {
	return &progressRepository{}
}

func (r *progressRepository) WithTx(tx *gorm.DB) ProgressRepository {
	return &progressRepository{conn: tx}
}

func (r *progressRepository) db() *gorm.DB {
	if r.conn != nil {
		return r.conn
	}
	return db.GetDB()
}

func (r *progressRepository) GetOrCreateLessonProgress(userID, lessonID uint, defaults model.LessonProgress) (*model.LessonProgress, bool, error) {
	defaults.UserID = userID
	defaults.LessonID = lessonID
	var progress model.LessonProgress
	res := r.db().
		Where(&model.LessonProgress{UserID: userID, LessonID: lessonID}).
		Attrs(defaults).
		FirstOrCreate(&progress)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &progress, res.RowsAffected > 0, nil
}

func (r *progressRepository) SaveLessonProgress(p *model.LessonProgress) error {
	return r.db().Save(p).Error
}

func (r *progressRepository) GetLessonProgress(userID, lessonID uint) (*model.LessonProgress, error) {
	var progress model.LessonProgress
	err := r.db().Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) GetOrCreateTopicProgress(userID, topicID uint, defaults model.TopicProgress) (*model.TopicProgress, bool, error) {
	defaults.UserID = userID
	defaults.TopicID = topicID
	var progress model.TopicProgress
	res := r.db().
		Where(&model.TopicProgress{UserID: userID, TopicID: topicID}).
		Attrs(defaults).
		FirstOrCreate(&progress)
	if res.Error != nil {
		return nil, false, res.Error
	}
	return &progress, res.RowsAffected > 0, nil
}

func (r *progressRepository) SaveTopicProgress(p *model.TopicProgress) error {
	return r.db().Save(p).Error
}

func (r *progressRepository) GetTopicProgress(userID, topicID uint) (*model.TopicProgress, error) {
	var progress model.TopicProgress
	err := r.db().Where("user_id = ? AND topic_id = ?", userID, topicID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// CountCompletedTopics counts the user's COMPLETADO topic progresses across
// the whole lesson.
func (r *progressRepository) CountCompletedTopics(userID, lessonID uint) (int64, error) {
	var count int64
	err := r.db().Model(&model.TopicProgress{}).
		Joins("JOIN topics ON topics.id = topic_progresses.topic_id").
		Where("topic_progresses.user_id = ? AND topics.lesson_id = ? AND topic_progresses.state = ?",
			userID, lessonID, model.TopicCompleted).
		Count(&count).Error
	return count, err
}

func (r *progressRepository) GetResponses(topicProgressID uint) ([]model.ExerciseResponse, error) {
	var responses []model.ExerciseResponse
	err := r.db().Where("topic_progress_id = ?", topicProgressID).Find(&responses).Error
	return responses, err
}

func (r *progressRepository) GetResponse(userID, exerciseID, topicProgressID uint) (*model.ExerciseResponse, error) {
	var resp model.ExerciseResponse
	err := r.db().
		Where("user_id = ? AND exercise_id = ? AND topic_progress_id = ?", userID, exerciseID, topicProgressID).
		First(&resp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *progressRepository) CreateResponse(resp *model.ExerciseResponse) error {
	return r.db().Create(resp).Error
}

func (r *progressRepository) DeleteResponses(topicProgressID uint) error {
	return r.db().Where("topic_progress_id = ?", topicProgressID).Delete(&model.ExerciseResponse{}).Error
}

func (r *progressRepository) CreateAttempt(attempt *model.TopicAttempt) error {
	return r.db().Create(attempt).Error
}

func (r *progressRepository) GetAttempt(userID, topicID, number uint) (*model.TopicAttempt, error) {
	var attempt model.TopicAttempt
	err := r.db().
		Where("user_id = ? AND topic_id = ? AND attempt_number = ?", userID, topicID, number).
		First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *progressRepository) GetAttempts(userID, topicID uint, limit, offset int) ([]model.TopicAttempt, int64, error) {
	var total int64
	q := r.db().Model(&model.TopicAttempt{}).Where("user_id = ? AND topic_id = ?", userID, topicID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var attempts []model.TopicAttempt
	err := q.Order("attempt_number DESC").Limit(limit).Offset(offset).Find(&attempts).Error
	return attempts, total, err
}
