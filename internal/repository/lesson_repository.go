package repository

import (
	"errors"

	"gorm.io/gorm"

	"matelog-backend/internal/db"
	"matelog-backend/internal/model"
)

type LessonRepository interface {
	// WithTx returns a copy of the repository bound to the given transaction.
	WithTx(tx *gorm.DB) LessonRepository

	GetActiveLessons() ([]model.Lesson, error)
	GetLessonByID(id uint) (*model.Lesson, error)
	GetActiveTopics(lessonID uint) ([]model.Topic, error)
	CountActiveTopics(lessonID uint) (int64, error)
	GetTopicByID(id uint) (*model.Topic, error)
	GetNextActiveTopic(lessonID uint, afterOrder uint) (*model.Topic, error)
	CountContents(topicID uint) (int64, error)
	CountExercises(topicID uint) (int64, error)
	GetExerciseByID(id uint) (*model.Exercise, error)
}

type lessonRepository struct {
	conn *gorm.DB
}

func NewLessonRepository() LessonRepository {
	return &lessonRepository{}
}

func (r *lessonRepository) WithTx(tx *gorm.DB) LessonRepository {
	return &lessonRepository{conn: tx}
}

func (r *lessonRepository) db() *gorm.DB {
	if r.conn != nil {
		return r.conn
	}
	return db.GetDB()
}

func (r *lessonRepository) GetActiveLessons() ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.db().Where("is_active = ?", true).Order("\"order\"").Find(&lessons).Error
	return lessons, err
}

func (r *lessonRepository) GetLessonByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.db().Where("id = ? AND is_active = ?", id, true).First(&lesson).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *lessonRepository) GetActiveTopics(lessonID uint) ([]model.Topic, error) {
	var topics []model.Topic
	err := r.db().
		Where("lesson_id = ? AND is_active = ?", lessonID, true).
		Order("\"order\"").
		Find(&topics).Error
	return topics, err
}

func (r *lessonRepository) CountActiveTopics(lessonID uint) (int64, error) {
	var count int64
	err := r.db().Model(&model.Topic{}).
		Where("lesson_id = ? AND is_active = ?", lessonID, true).
		Count(&count).Error
	return count, err
}

func (r *lessonRepository) GetTopicByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.db().
		Preload("Contents", func(tx *gorm.DB) *gorm.DB { return tx.Order("\"order\"") }).
		Preload("Exercises", func(tx *gorm.DB) *gorm.DB { return tx.Order("\"order\"") }).
		Preload("Exercises.Options", func(tx *gorm.DB) *gorm.DB { return tx.Order("letter") }).
		Where("id = ? AND is_active = ?", id, true).
		First(&topic).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

// GetNextActiveTopic returns the active topic directly after the given order
// in the lesson, or nil when the lesson has no such topic.
func (r *lessonRepository) GetNextActiveTopic(lessonID uint, afterOrder uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.db().
		Where("lesson_id = ? AND \"order\" = ? AND is_active = ?", lessonID, afterOrder+1, true).
		First(&topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *lessonRepository) CountContents(topicID uint) (int64, error) {
	var count int64
	err := r.db().Model(&model.TopicContent{}).Where("topic_id = ?", topicID).Count(&count).Error
	return count, err
}

func (r *lessonRepository) CountExercises(topicID uint) (int64, error) {
	var count int64
	err := r.db().Model(&model.Exercise{}).Where("topic_id = ?", topicID).Count(&count).Error
	return count, err
}

func (r *lessonRepository) GetExerciseByID(id uint) (*model.Exercise, error) {
	var exercise model.Exercise
	err := r.db().
		Preload("Options", func(tx *gorm.DB) *gorm.DB { return tx.Order("letter") }).
		First(&exercise, id).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}
