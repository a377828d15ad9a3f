package repository

import (
	"mentora_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type RefreshTokenRepository struct {
	DB *gorm.DB
}

func NewRefreshTokenRepository(db *gorm.DB) *RefreshTokenRepository {
	return &RefreshTokenRepository{DB: db}
}

func (r *RefreshTokenRepository) Create(token *model.RefreshToken) error {
	return r.DB.Create(token).Error
}

func (r *RefreshTokenRepository) FindValid(token string) (*model.RefreshToken, error) {
	var t model.RefreshToken
	err := r.DB.Where("token = ? AND revoked_at IS NULL AND expires_at > ?", token, time.Now()).
		First(&t).Error
	return &t, err
}

func (r *RefreshTokenRepository) Revoke(token string) error {
	now := time.Now()
	return r.DB.Model(&model.RefreshToken{}).
		Where("token = ?", token).
		Update("revoked_at", &now).Error
}

// DeleteExpired 后台清扫任务的入口，物理删除过期/已吊销记录
func (r *RefreshTokenRepository) DeleteExpired() (int64, error) {
	res := r.DB.Unscoped().
		Where("expires_at < ? OR revoked_at IS NOT NULL", time.Now()).
		Delete(&model.RefreshToken{})
	return res.RowsAffected, res.Error
}
