package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/postline/internal/model"
)

func seedPost(t *testing.T, db *gorm.DB, author *model.User, text string, pubDate time.Time) *model.Post {
	t.Helper()
	p := &model.Post{
		ID:       uuid.New().String(),
		Text:     text,
		PubDate:  pubDate,
		AuthorID: author.ID,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestListAllNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		seedPost(t, db, author, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	pg, err := repo.ListAll(ctx, 1, 3)
	require.NoError(t, err)
	require.Len(t, pg.Items, 3)
	require.Equal(t, "post 4", pg.Items[0].Text)
	require.Equal(t, "post 2", pg.Items[2].Text)
	require.Equal(t, int64(5), pg.TotalItems)
	require.True(t, pg.HasNext)

	// 列表读路径要带出作者
	require.NotNil(t, pg.Items[0].Author)
	require.Equal(t, "alice", pg.Items[0].Author.Username)
}

func TestListByGroupFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	group := &model.Group{ID: uuid.New().String(), Title: "Go", Slug: "go"}
	require.NoError(t, db.Create(group).Error)

	in := seedPost(t, db, author, "grouped", time.Now())
	require.NoError(t, db.Model(in).Update("group_id", group.ID).Error)
	seedPost(t, db, author, "ungrouped", time.Now())

	pg, err := repo.ListByGroup(ctx, group.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, pg.Items, 1)
	require.Equal(t, "grouped", pg.Items[0].Text)
}

func TestListByFollowedIsolation(t *testing.T) {
	db := setupTestDB(t)
	postRepo := NewPostRepository(db)
	followRepo := NewFollowRepository(db)
	ctx := context.Background()

	viewer := seedUser(t, db, "viewer")
	followed := seedUser(t, db, "followed")
	stranger := seedUser(t, db, "stranger")

	seedPost(t, db, followed, "from followed", time.Now())
	seedPost(t, db, stranger, "from stranger", time.Now())

	require.NoError(t, followRepo.Create(ctx, viewer.ID, followed.ID))

	pg, err := postRepo.ListByFollowed(ctx, viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, pg.Items, 1)
	require.Equal(t, "from followed", pg.Items[0].Text)

	// 取关后实时生效
	require.NoError(t, followRepo.Delete(ctx, viewer.ID, followed.ID))
	pg, err = postRepo.ListByFollowed(ctx, viewer.ID, 1, 10)
	require.NoError(t, err)
	require.Empty(t, pg.Items)
}

func TestUpdateKeepsPubDate(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "alice")

	pubDate := time.Now().Add(-24 * time.Hour)
	post := seedPost(t, db, author, "original", pubDate)

	post.Text = "edited"
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, "edited", got.Text)
	require.Equal(t, pubDate.Unix(), got.PubDate.Unix())
}
