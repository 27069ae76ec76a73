package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/postline/internal/model"
	"github.com/d60-Lab/postline/pkg/pagination"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// Update 只更新 text/group_id/image，pub_date 保持创建时的值
	Update(ctx context.Context, post *model.Post) error
	ListAll(ctx context.Context, page, size int) (*pagination.Page[model.Post], error)
	ListByGroup(ctx context.Context, groupID string, page, size int) (*pagination.Page[model.Post], error)
	ListByAuthor(ctx context.Context, authorID string, page, size int) (*pagination.Page[model.Post], error)
	// ListByFollowed 关注流：仅返回 followerID 关注的作者的帖子
	ListByFollowed(ctx context.Context, followerID string, page, size int) (*pagination.Page[model.Post], error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).
		Preload("Author").Preload("Group").
		Where("id = ?", id).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
}

func (r *postRepository) ListAll(ctx context.Context, page, size int) (*pagination.Page[model.Post], error) {
	q := r.listQuery(ctx)
	return pagination.Paginate[model.Post](q, page, size)
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID string, page, size int) (*pagination.Page[model.Post], error) {
	q := r.listQuery(ctx).Where("group_id = ?", groupID)
	return pagination.Paginate[model.Post](q, page, size)
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string, page, size int) (*pagination.Page[model.Post], error) {
	q := r.listQuery(ctx).Where("author_id = ?", authorID)
	return pagination.Paginate[model.Post](q, page, size)
}

func (r *postRepository) ListByFollowed(ctx context.Context, followerID string, page, size int) (*pagination.Page[model.Post], error) {
	q := r.listQuery(ctx).
		Joins("JOIN follows ON follows.followee_id = posts.author_id").
		Where("follows.follower_id = ?", followerID)
	return pagination.Paginate[model.Post](q, page, size)
}

// listQuery 列表读路径统一按发布时间倒序并带出作者/分组
func (r *postRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Post{}).
		Preload("Author").Preload("Group").
		Order("posts.pub_date DESC")
}
