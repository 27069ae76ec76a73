package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/postline/internal/model"
	"github.com/d60-Lab/postline/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	u := &model.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "p",
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func newRelService(db *gorm.DB) RelationshipService {
	return NewRelationshipService(
		repository.NewFollowRepository(db),
		repository.NewUserRepository(db),
	)
}

func edgeCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Model(&model.Follow{}).Count(&cnt).Error)
	return cnt
}

func TestFollowIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelService(db)
	ctx := context.Background()
	viewer := seedUser(t, db, "viewer")
	seedUser(t, db, "author")

	for i := 0; i < 2; i++ {
		author, err := svc.Follow(ctx, viewer.ID, "author")
		require.NoError(t, err)
		require.Equal(t, "author", author.Username)
	}
	require.Equal(t, int64(1), edgeCount(t, db))
}

func TestFollowSelfCreatesNoEdge(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelService(db)
	ctx := context.Background()
	viewer := seedUser(t, db, "viewer")

	author, err := svc.Follow(ctx, viewer.ID, "viewer")
	require.ErrorIs(t, err, ErrFollowSelf)
	require.Equal(t, viewer.ID, author.ID)
	require.Equal(t, int64(0), edgeCount(t, db))
}

func TestFollowUnknownAuthor(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelService(db)
	viewer := seedUser(t, db, "viewer")

	_, err := svc.Follow(context.Background(), viewer.ID, "ghost")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUnfollowMissingEdgeIsSilent(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelService(db)
	ctx := context.Background()
	viewer := seedUser(t, db, "viewer")
	seedUser(t, db, "author")

	_, err := svc.Unfollow(ctx, viewer.ID, "author")
	require.NoError(t, err)

	_, err = svc.Follow(ctx, viewer.ID, "author")
	require.NoError(t, err)
	_, err = svc.Unfollow(ctx, viewer.ID, "author")
	require.NoError(t, err)
	require.Equal(t, int64(0), edgeCount(t, db))
}

func TestIsFollowing(t *testing.T) {
	db := setupTestDB(t)
	svc := newRelService(db)
	ctx := context.Background()
	viewer := seedUser(t, db, "viewer")
	author := seedUser(t, db, "author")

	// 匿名访客恒为 false
	ok, err := svc.IsFollowing(ctx, "", author.ID)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = svc.IsFollowing(ctx, viewer.ID, author.ID)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = svc.Follow(ctx, viewer.ID, "author")
	require.NoError(t, err)

	ok, err = svc.IsFollowing(ctx, viewer.ID, author.ID)
	require.NoError(t, err)
	require.True(t, ok)
}
