package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/postline/internal/cache"
	"github.com/d60-Lab/postline/internal/model"
	"github.com/d60-Lab/postline/internal/service"
	"github.com/d60-Lab/postline/pkg/logger"
	"github.com/d60-Lab/postline/pkg/pagination"
	"github.com/d60-Lab/postline/pkg/storage"
)

// Handler 聚合各业务服务
type Handler struct {
	posts    service.PostService
	comments service.CommentService
	groups   service.GroupService
	rel      service.RelationshipService
	auth     *service.AuthService
	store    *storage.ImageStore
	lc       *cache.ListingCache
}

func New(
	posts service.PostService,
	comments service.CommentService,
	groups service.GroupService,
	rel service.RelationshipService,
	auth *service.AuthService,
	store *storage.ImageStore,
	lc *cache.ListingCache,
) *Handler {
	return &Handler{
		posts:    posts,
		comments: comments,
		groups:   groups,
		rel:      rel,
		auth:     auth,
		store:    store,
		lc:       lc,
	}
}

// invalidateListings 写入成功后整体清空列表缓存，
// 清理失败只告警，不影响本次写入的响应
func (h *Handler) invalidateListings(c *gin.Context) {
	if h.lc == nil {
		return
	}
	if err := h.lc.Invalidate(c.Request.Context()); err != nil {
		logger.Warn("listing cache invalidate failed", zap.Error(err))
	}
}

type postView struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
	Author  string    `json:"author"`
	Group   *string   `json:"group,omitempty"`
	Image   string    `json:"image,omitempty"`
}

type commentView struct {
	ID      string    `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Created time.Time `json:"created"`
}

type groupView struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func newPostView(p *model.Post) postView {
	v := postView{ID: p.ID, Text: p.Text, PubDate: p.PubDate, Image: p.Image}
	if p.Author != nil {
		v.Author = p.Author.Username
	}
	if p.Group != nil {
		v.Group = &p.Group.Slug
	}
	return v
}

func newCommentView(cm *model.Comment) commentView {
	v := commentView{ID: cm.ID, Text: cm.Text, Created: cm.Created}
	if cm.Author != nil {
		v.Author = cm.Author.Username
	}
	return v
}

func newGroupView(g *model.Group) groupView {
	return groupView{Title: g.Title, Slug: g.Slug, Description: g.Description}
}

// pageData 序列化分页结果，附带翻页元信息
func pageData(pg *pagination.Page[model.Post]) gin.H {
	posts := make([]postView, 0, len(pg.Items))
	for i := range pg.Items {
		posts = append(posts, newPostView(&pg.Items[i]))
	}
	return gin.H{
		"posts":        posts,
		"page":         pg.Number,
		"page_size":    pg.Size,
		"total_items":  pg.TotalItems,
		"total_pages":  pg.TotalPages,
		"has_next":     pg.HasNext,
		"has_previous": pg.HasPrevious,
	}
}
