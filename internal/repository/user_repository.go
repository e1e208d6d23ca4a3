package repository

import (
	"gorm.io/gorm"

	"matelog-backend/internal/db"
	"matelog-backend/internal/model"
)

type UserRepository interface {
	CreateUser(user *model.User) error
	GetUserByUsername(username string) (*model.User, error)
	GetUserByID(id uint) (*model.User, error)
}

type userRepository struct {
	conn *gorm.DB
}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) db() *gorm.DB {
	if r.conn != nil {
		return r.conn
	}
	return db.GetDB()
}

func (r *userRepository) CreateUser(user *model.User) error {
	return r.db().Create(user).Error
}

func (r *userRepository) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	if err := r.db().Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db().First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
