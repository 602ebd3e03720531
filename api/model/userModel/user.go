package userModel

import (
	"errors"
	"log/slog"

	"github.com/sunthewhat/certgen-api/type/shared/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	user := new(model.User)
	queryErr := r.db.Where("email = ?", email).First(user).Error

	if queryErr != nil {
		if errors.Is(queryErr, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.Error("User GetByEmail", "error", queryErr, "email", email)
		return nil, queryErr
	}

	return user, nil
}

func (r *UserRepository) CreateNewUser(name string, email string, passwordHash string, role string) (*model.User, error) {
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}

	if createErr := r.db.Create(user).Error; createErr != nil {
		slog.Error("User CreateNewUser", "error", createErr, "email", email)
		return nil, createErr
	}

	return user, nil
}
