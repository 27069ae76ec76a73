package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/postline/internal/model"
	"github.com/d60-Lab/postline/internal/repository"
)

func newPostService(db *gorm.DB, pageSize int) PostService {
	return NewPostService(
		db,
		repository.NewPostRepository(db),
		repository.NewGroupRepository(db),
		repository.NewUserRepository(db),
		repository.NewCommentRepository(db),
		pageSize,
	)
}

func seedGroup(t *testing.T, db *gorm.DB, slug string) *model.Group {
	t.Helper()
	g := &model.Group{ID: uuid.New().String(), Title: slug, Slug: slug}
	require.NoError(t, db.Create(g).Error)
	return g
}

func postCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Model(&model.Post{}).Count(&cnt).Error)
	return cnt
}

func TestCreatePost(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db, 10)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	post, err := svc.Create(ctx, author.ID, "hello world", nil, "")
	require.NoError(t, err)
	require.Equal(t, author.ID, post.AuthorID)
	require.False(t, post.PubDate.IsZero())
	require.Equal(t, int64(1), postCount(t, db))
}

func TestCreatePostEmptyText(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db, 10)
	author := seedUser(t, db, "alice")

	_, err := svc.Create(context.Background(), author.ID, "   ", nil, "")
	require.ErrorIs(t, err, ErrEmptyText)
	require.Equal(t, int64(0), postCount(t, db))
}

func TestCreatePostUnknownGroup(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db, 10)
	author := seedUser(t, db, "alice")

	ghost := uuid.New().String()
	_, err := svc.Create(context.Background(), author.ID, "hello", &ghost, "")
	require.ErrorIs(t, err, ErrUnknownGroup)
	require.Equal(t, int64(0), postCount(t, db))
}

func TestEditByNonAuthorChangesNothing(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db, 10)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	post, err := svc.Create(ctx, alice.ID, "original", nil, "")
	require.NoError(t, err)

	returned, err := svc.Edit(ctx, post.ID, bob.ID, "hijacked", nil, "")
	require.ErrorIs(t, err, ErrNotAuthor)
	require.Equal(t, post.ID, returned.ID)

	var got model.Post
	require.NoError(t, db.First(&got, "id = ?", post.ID).Error)
	require.Equal(t, "original", got.Text)
}

func TestEditByAuthorUpdatesInPlace(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db, 10)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	group := seedGroup(t, db, "go")

	post, err := svc.Create(ctx, alice.ID, "original", nil, "")
	require.NoError(t, err)

	edited, err := svc.Edit(ctx, post.ID, alice.ID, "edited", &group.ID, "")
	require.NoError(t, err)
	require.Equal(t, post.ID, edited.ID)

	var got model.Post
	require.NoError(t, db.First(&got, "id = ?", post.ID).Error)
	require.Equal(t, "edited", got.Text)
	require.NotNil(t, got.GroupID)
	require.Equal(t, group.ID, *got.GroupID)
	// pub_date 原样保留
	require.Equal(t, post.PubDate.Unix(), got.PubDate.Unix())
	require.Equal(t, int64(1), postCount(t, db))
}

func TestFeedOnlyContainsFollowedAuthors(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db, 10)
	rel := newRelService(db)
	ctx := context.Background()

	viewer := seedUser(t, db, "viewer")
	followed := seedUser(t, db, "followed")
	stranger := seedUser(t, db, "stranger")

	_, err := svc.Create(ctx, followed.ID, "from followed", nil, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, stranger.ID, "from stranger", nil, "")
	require.NoError(t, err)

	pg, err := svc.Feed(ctx, viewer.ID, 1)
	require.NoError(t, err)
	require.Empty(t, pg.Items)

	_, err = rel.Follow(ctx, viewer.ID, "followed")
	require.NoError(t, err)

	pg, err = svc.Feed(ctx, viewer.ID, 1)
	require.NoError(t, err)
	require.Len(t, pg.Items, 1)
	require.Equal(t, "from followed", pg.Items[0].Text)
}

func TestGroupPostsUnknownSlug(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db, 10)

	_, _, err := svc.GroupPosts(context.Background(), "ghost", 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestProfileListsOnlyAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db, 10)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	_, err := svc.Create(ctx, alice.ID, "by alice", nil, "")
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, "by bob", nil, "")
	require.NoError(t, err)

	author, pg, err := svc.Profile(ctx, "alice", 1)
	require.NoError(t, err)
	require.Equal(t, alice.ID, author.ID)
	require.Len(t, pg.Items, 1)
	require.Equal(t, "by alice", pg.Items[0].Text)
}

func TestDetailReturnsComments(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db, 10)
	comments := NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewPostRepository(db),
	)
	ctx := context.Background()
	alice := seedUser(t, db, "alice")

	post, err := svc.Create(ctx, alice.ID, "hello", nil, "")
	require.NoError(t, err)
	_, err = comments.Add(ctx, post.ID, alice.ID, "first!")
	require.NoError(t, err)

	got, cs, err := svc.Detail(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, post.ID, got.ID)
	require.Len(t, cs, 1)
	require.Equal(t, "first!", cs[0].Text)
	require.False(t, cs[0].Created.After(time.Now()))
}
