package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type entry struct {
	ID   int
	Rank int
}

func setupEntries(t *testing.T, n int) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entry{}))
	for i := 1; i <= n; i++ {
		require.NoError(t, db.Create(&entry{ID: i, Rank: i}).Error)
	}
	return db
}

func query(db *gorm.DB) *gorm.DB {
	return db.Model(&entry{}).Order("rank DESC")
}

func TestPaginateSizes(t *testing.T) {
	db := setupEntries(t, 23)

	// 23 条、每页 5 条 → 5 页，末页 3 条
	for page, want := range map[int]int{1: 5, 2: 5, 3: 5, 4: 5, 5: 3} {
		pg, err := Paginate[entry](query(db), page, 5)
		require.NoError(t, err)
		require.Len(t, pg.Items, want, "page %d", page)
		require.Equal(t, page, pg.Number)
		require.Equal(t, int64(23), pg.TotalItems)
		require.Equal(t, 5, pg.TotalPages)
	}
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	db := setupEntries(t, 23)

	pg, err := Paginate[entry](query(db), 99, 5)
	require.NoError(t, err)
	require.Equal(t, 5, pg.Number)
	require.Len(t, pg.Items, 3)
	require.False(t, pg.HasNext)
	require.True(t, pg.HasPrevious)

	pg, err = Paginate[entry](query(db), -3, 5)
	require.NoError(t, err)
	require.Equal(t, 1, pg.Number)
	require.Len(t, pg.Items, 5)
}

func TestPaginateOrdering(t *testing.T) {
	db := setupEntries(t, 12)

	pg, err := Paginate[entry](query(db), 2, 5)
	require.NoError(t, err)
	require.Len(t, pg.Items, 5)
	// rank 倒序：第二页应为 7..3
	require.Equal(t, 7, pg.Items[0].Rank)
	require.Equal(t, 3, pg.Items[4].Rank)
}

func TestPaginateEmpty(t *testing.T) {
	db := setupEntries(t, 0)

	pg, err := Paginate[entry](query(db), 1, 5)
	require.NoError(t, err)
	require.Empty(t, pg.Items)
	require.Equal(t, 1, pg.Number)
	require.Equal(t, 1, pg.TotalPages)
	require.False(t, pg.HasNext)
	require.False(t, pg.HasPrevious)
}

func TestParsePage(t *testing.T) {
	require.Equal(t, 1, ParsePage(""))
	require.Equal(t, 1, ParsePage("abc"))
	require.Equal(t, 1, ParsePage("0"))
	require.Equal(t, 1, ParsePage("-2"))
	require.Equal(t, 7, ParsePage("7"))
}
