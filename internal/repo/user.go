package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/itineraire-app/auth-service/internal/models"
)

func (r *GormRepo) CreateUser(ctx context.Context, u *models.User) error {
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicateUser
		}
		return err
	}
	return nil
}

func (r *GormRepo) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormRepo) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateCredentials applies the username and password changes in one
// transaction so a duplicate username cannot leave a half-applied update.
func (r *GormRepo) UpdateCredentials(ctx context.Context, userID uint, username, passwordHash string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if username != "" {
			err := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("username", username).Error
			if err != nil {
				if isDuplicateErr(err) {
					return ErrDuplicateUser
				}
				return err
			}
		}
		if passwordHash != "" {
			err := tx.Model(&models.User{}).Where("id = ?", userID).
				Update("password_hash", passwordHash).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
