package repositories

import (
	"errors"
	"time"

	"github.com/pulsefeed/backend/internal/models"
	"gorm.io/gorm"
)

// RefreshTokenRepository defines the interface for refresh token operations
type RefreshTokenRepository interface {
	CreateToken(token *models.RefreshToken) error
	GetValidToken(token string) (*models.RefreshToken, error)
	DeleteToken(token string) error
	DeleteTokensForUser(userID uint) error
}

type postgresRefreshTokenRepository struct {
	db *gorm.DB
}

func NewPostgresRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &postgresRefreshTokenRepository{db: db}
}

func (r *postgresRefreshTokenRepository) CreateToken(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// GetValidToken looks up an unexpired refresh token
func (r *postgresRefreshTokenRepository) GetValidToken(token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := r.db.Where("token = ? AND expires_at > ?", token, time.Now()).First(&rt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (r *postgresRefreshTokenRepository) DeleteToken(token string) error {
	res := r.db.Where("token = ?", token).Delete(&models.RefreshToken{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresRefreshTokenRepository) DeleteTokensForUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}
