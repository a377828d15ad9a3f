package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"mentora_backend/internal/config"
	"mentora_backend/internal/model"
	"mentora_backend/internal/repository"
	"mentora_backend/internal/util"
	"mentora_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo  *repository.UserRepository
	TokenRepo *repository.RefreshTokenRepository
	Cfg       *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, tokenRepo *repository.RefreshTokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:  userRepo,
		TokenRepo: tokenRepo,
		Cfg:       cfg,
	}
}

func (s *AuthService) Register(user *model.User) error {
	_, err := s.UserRepo.FindByEmail(user.Email)
	if err == nil {
		return util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.UserRepo.Create(user)
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	user, err := s.UserRepo.FindByEmail(email)
	if err != nil {
		return nil, util.ErrInvalidCredential
	}
	if user.Disabled {
		return nil, util.ErrPermissionDenied
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredential
	}

	access, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}

	refresh, err := s.issueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	_ = s.UserRepo.UpdateLastLogin(user.ID)

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh 旧刷新令牌换新，旧令牌同时吊销
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	stored, err := s.TokenRepo.FindValid(refreshToken)
	if err != nil {
		return nil, util.ErrInvalidCredential
	}

	user, err := s.UserRepo.FindByID(stored.UserID)
	if err != nil || user.Disabled {
		return nil, util.ErrInvalidCredential
	}

	access, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.issueRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}
	_ = s.TokenRepo.Revoke(refreshToken)

	return &TokenPair{AccessToken: access, RefreshToken: newRefresh}, nil
}

func (s *AuthService) Logout(refreshToken string) error {
	return s.TokenRepo.Revoke(refreshToken)
}

func (s *AuthService) issueRefreshToken(userID uint) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	rec := &model.RefreshToken{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(s.Cfg.JWT.RefreshExpireTime),
	}
	if err := s.TokenRepo.Create(rec); err != nil {
		return "", err
	}
	return token, nil
}

// CleanupExpiredTokens 后台清扫任务，每 24 小时执行一次
func (s *AuthService) CleanupExpiredTokens() {
	n, err := s.TokenRepo.DeleteExpired()
	if err != nil {
		logger.Log.Error("refresh token cleanup failed", zap.Error(err))
		return
	}
	if n > 0 {
		logger.Log.Info("expired refresh tokens removed", zap.Int64("count", n))
	}
}
