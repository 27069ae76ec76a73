package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/d60-Lab/postline/internal/model"
	"github.com/d60-Lab/postline/internal/repository"
)

// CommentService 评论用例
type CommentService interface {
	// Add 为帖子追加一条当前用户的评论；帖子不存在时透传 NotFound
	Add(ctx context.Context, postID, authorID, text string) (*model.Comment, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) CommentService {
	return &commentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *commentService) Add(ctx context.Context, postID, authorID, text string) (*model.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	comment := &model.Comment{
		ID:       uuid.New().String(),
		PostID:   postID,
		AuthorID: authorID,
		Text:     text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}
