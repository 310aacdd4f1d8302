package service

import (
	"context"
	"fmt"

	"ascend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeedService struct{ db *gorm.DB }

func NewFeedService(db *gorm.DB) *FeedService { return &FeedService{db: db} }

func (s *FeedService) CreatePost(ctx context.Context, memberID int, author, pillar, content string) (*model.Post, error) {
	p := model.Post{
		ID:       uuid.NewString(),
		MemberID: memberID,
		Author:   author,
		Pillar:   pillar,
		Content:  content,
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &p, nil
}

func (s *FeedService) ListPosts(ctx context.Context, limit int) ([]model.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var posts []model.Post
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	return posts, nil
}

func (s *FeedService) LikePost(ctx context.Context, postID string) error {
	tx := s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).
		Update("like_count", gorm.Expr("like_count + 1"))
	if tx.Error != nil {
		return fmt.Errorf("like post: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
