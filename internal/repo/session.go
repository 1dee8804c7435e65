package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/itineraire-app/auth-service/internal/models"
)

func (r *GormRepo) CreateSession(ctx context.Context, s *models.Session) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) FindSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	if err := r.DB.WithContext(ctx).Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// DeleteSessionByToken removes the session row, revoking the token. A token
// that was already logged out reports ErrNotFound on the second attempt.
func (r *GormRepo) DeleteSessionByToken(ctx context.Context, token string) error {
	result := r.DB.WithContext(ctx).Where("token = ?", token).Delete(&models.Session{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
