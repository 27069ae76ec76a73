package service

import (
	"context"
	"errors"

	"github.com/d60-Lab/postline/internal/model"
	"github.com/d60-Lab/postline/internal/repository"
)

var (
	ErrFollowSelf = errors.New("cannot follow self")
)

// RelationshipService 关系链服务
type RelationshipService interface {
	// Follow 建立 viewer→username 的关注边，幂等；目标不存在时透传 NotFound
	Follow(ctx context.Context, viewerID, username string) (*model.User, error)
	// Unfollow 删除关注边，边不存在时不报错
	Unfollow(ctx context.Context, viewerID, username string) (*model.User, error)
	IsFollowing(ctx context.Context, viewerID, authorID string) (bool, error)
}

type relationshipService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewRelationshipService(followRepo repository.FollowRepository, userRepo repository.UserRepository) RelationshipService {
	return &relationshipService{followRepo: followRepo, userRepo: userRepo}
}

func (s *relationshipService) Follow(ctx context.Context, viewerID, username string) (*model.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author.ID == viewerID {
		// 不建立自关注边；调用方照常跳转
		return author, ErrFollowSelf
	}
	if err := s.followRepo.Create(ctx, viewerID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, viewerID, username string) (*model.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.followRepo.Delete(ctx, viewerID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *relationshipService) IsFollowing(ctx context.Context, viewerID, authorID string) (bool, error) {
	if viewerID == "" {
		return false, nil
	}
	return s.followRepo.Exists(ctx, viewerID, authorID)
}
