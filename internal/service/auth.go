package service

import (
	"context"
	"fmt"

	"ascend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct{ db *gorm.DB }

func NewAuthService(db *gorm.DB) *AuthService { return &AuthService{db: db} }

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.Member, error) {
	var m model.Member
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&m).Error; err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(m.Password), []byte(password)) != nil {
		return nil, fmt.Errorf("wrong password")
	}
	return &m, nil
}

func (s *AuthService) Register(ctx context.Context, username, password, name string) (*model.Member, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	m := model.Member{Username: username, Password: string(hash), Name: name, Role: "member"}
	if err := s.db.WithContext(ctx).Create(&m).Error; err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return &m, nil
}
