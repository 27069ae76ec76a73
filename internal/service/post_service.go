package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/postline/internal/model"
	"github.com/d60-Lab/postline/internal/repository"
	"github.com/d60-Lab/postline/pkg/pagination"
)

var (
	ErrEmptyText    = errors.New("text must not be empty")
	ErrNotAuthor    = errors.New("viewer is not the post author")
	ErrUnknownGroup = errors.New("unknown group reference")
)

// PostService 帖子读写用例
type PostService interface {
	Index(ctx context.Context, page int) (*pagination.Page[model.Post], error)
	GroupPosts(ctx context.Context, slug string, page int) (*model.Group, *pagination.Page[model.Post], error)
	Profile(ctx context.Context, username string, page int) (*model.User, *pagination.Page[model.Post], error)
	Detail(ctx context.Context, id string) (*model.Post, []*model.Comment, error)
	Create(ctx context.Context, authorID, text string, groupID *string, image string) (*model.Post, error)
	// Edit 仅作者本人可改；pub_date 不变，原地更新
	Edit(ctx context.Context, postID, viewerID, text string, groupID *string, image string) (*model.Post, error)
	Feed(ctx context.Context, viewerID string, page int) (*pagination.Page[model.Post], error)
}

type postService struct {
	db          *gorm.DB
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	userRepo    repository.UserRepository
	commentRepo repository.CommentRepository
	pageSize    int
}

func NewPostService(
	db *gorm.DB,
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	commentRepo repository.CommentRepository,
	pageSize int,
) PostService {
	if pageSize < 1 {
		pageSize = 10
	}
	return &postService{
		db:          db,
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		pageSize:    pageSize,
	}
}

func (s *postService) Index(ctx context.Context, page int) (*pagination.Page[model.Post], error) {
	return s.postRepo.ListAll(ctx, page, s.pageSize)
}

func (s *postService) GroupPosts(ctx context.Context, slug string, page int) (*model.Group, *pagination.Page[model.Post], error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, page, s.pageSize)
	if err != nil {
		return nil, nil, err
	}
	return group, posts, nil
}

func (s *postService) Profile(ctx context.Context, username string, page int) (*model.User, *pagination.Page[model.Post], error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, page, s.pageSize)
	if err != nil {
		return nil, nil, err
	}
	return author, posts, nil
}

func (s *postService) Detail(ctx context.Context, id string) (*model.Post, []*model.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.commentRepo.ListByPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return post, comments, nil
}

func (s *postService) Create(ctx context.Context, authorID, text string, groupID *string, image string) (*model.Post, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if err := s.resolveGroup(ctx, groupID); err != nil {
		return nil, err
	}

	post := &model.Post{
		ID:       uuid.New().String(),
		Text:     text,
		PubDate:  time.Now(),
		AuthorID: authorID,
		GroupID:  groupID,
		Image:    image,
	}
	// 单事务落库
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(post).Error
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Edit(ctx context.Context, postID, viewerID, text string, groupID *string, image string) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != viewerID {
		return post, ErrNotAuthor
	}
	if strings.TrimSpace(text) == "" {
		return post, ErrEmptyText
	}
	if err := s.resolveGroup(ctx, groupID); err != nil {
		return post, err
	}

	post.Text = text
	post.GroupID = groupID
	if image != "" {
		post.Image = image
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Feed(ctx context.Context, viewerID string, page int) (*pagination.Page[model.Post], error) {
	return s.postRepo.ListByFollowed(ctx, viewerID, page, s.pageSize)
}

func (s *postService) resolveGroup(ctx context.Context, groupID *string) error {
	if groupID == nil {
		return nil
	}
	if _, err := s.groupRepo.GetByID(ctx, *groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownGroup
		}
		return err
	}
	return nil
}
