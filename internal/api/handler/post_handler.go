package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/d60-Lab/postline/internal/api/middleware"
	"github.com/d60-Lab/postline/internal/service"
	"github.com/d60-Lab/postline/pkg/pagination"
	"github.com/d60-Lab/postline/pkg/response"
	"github.com/d60-Lab/postline/pkg/storage"
)

type postForm struct {
	Text  string  `form:"text" binding:"required"`
	Group *string `form:"group"`
}

// Index 首页帖子列表，最新在前
// @Summary 首页帖子列表
// @Tags 帖子
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router / [get]
func (h *Handler) Index(c *gin.Context) {
	page := pagination.ParsePage(c.DefaultQuery("page", "1"))
	pg, err := h.posts.Index(c.Request.Context(), page)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, pageData(pg))
}

// GroupPosts 某分组的帖子列表
// @Summary 分组帖子列表
// @Tags 帖子
// @Param slug path string true "分组 slug"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /group/{slug}/ [get]
func (h *Handler) GroupPosts(c *gin.Context) {
	page := pagination.ParsePage(c.DefaultQuery("page", "1"))
	group, pg, err := h.posts.GroupPosts(c.Request.Context(), c.Param("slug"), page)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundPage(c, c.Request.URL.Path)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	data := pageData(pg)
	data["group"] = newGroupView(group)
	response.Success(c, data)
}

// Profile 作者主页：帖子列表 + 当前用户是否已关注
// @Summary 作者主页
// @Tags 帖子
// @Param username path string true "用户名"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /profile/{username}/ [get]
func (h *Handler) Profile(c *gin.Context) {
	page := pagination.ParsePage(c.DefaultQuery("page", "1"))
	author, pg, err := h.posts.Profile(c.Request.Context(), c.Param("username"), page)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundPage(c, c.Request.URL.Path)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	// 匿名访客恒为未关注
	following := false
	if viewerID, ok := middleware.CurrentUserID(c); ok {
		following, err = h.rel.IsFollowing(c.Request.Context(), viewerID, author.ID)
		if err != nil {
			response.InternalError(c, err)
			return
		}
	}

	data := pageData(pg)
	data["author"] = author.Username
	data["following"] = following
	response.Success(c, data)
}

// Detail 帖子详情：正文、评论与空白评论表单
// @Summary 帖子详情
// @Tags 帖子
// @Param id path string true "帖子 id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/ [get]
func (h *Handler) Detail(c *gin.Context) {
	post, comments, err := h.posts.Detail(c.Request.Context(), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundPage(c, c.Request.URL.Path)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}

	views := make([]commentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, newCommentView(cm))
	}
	response.Success(c, gin.H{
		"post":     newPostView(post),
		"comments": views,
		"form":     gin.H{"text": ""},
	})
}

// CreateForm 新帖表单与可选分组
// @Summary 新帖表单
// @Tags 帖子
// @Success 200 {object} response.Response
// @Router /create/ [get]
func (h *Handler) CreateForm(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	views := make([]groupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, newGroupView(g))
	}
	response.Success(c, gin.H{
		"form":   gin.H{"text": "", "group": nil, "image": nil},
		"groups": views,
	})
}

// Create 发帖；成功后 302 到作者主页
// @Summary 发帖
// @Tags 帖子
// @Accept mpfd
// @Param text formData string true "正文"
// @Param group formData string false "分组 id"
// @Param image formData file false "图片"
// @Success 302
// @Failure 400 {object} response.Response
// @Router /create/ [post]
func (h *Handler) Create(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)
	viewerName, _ := middleware.CurrentUsername(c)

	var form postForm
	if err := c.ShouldBind(&form); err != nil {
		response.ValidationFailed(c, map[string]string{"text": "text is required"})
		return
	}
	if form.Group != nil && *form.Group == "" {
		form.Group = nil
	}
	image, ok := h.saveImage(c)
	if !ok {
		return
	}

	_, err := h.posts.Create(c.Request.Context(), viewerID, form.Text, form.Group, image)
	if !h.renderPostFormErr(c, err) {
		return
	}
	h.invalidateListings(c)
	c.Redirect(http.StatusFound, "/profile/"+viewerName+"/")
}

// EditForm 编辑表单；非作者静默跳回详情页
// @Summary 编辑表单
// @Tags 帖子
// @Param id path string true "帖子 id"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/edit/ [get]
func (h *Handler) EditForm(c *gin.Context) {
	post, _, err := h.posts.Detail(c.Request.Context(), c.Param("id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundPage(c, c.Request.URL.Path)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	viewerID, _ := middleware.CurrentUserID(c)
	if post.AuthorID != viewerID {
		c.Redirect(http.StatusFound, "/posts/"+post.ID+"/")
		return
	}

	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	views := make([]groupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, newGroupView(g))
	}
	response.Success(c, gin.H{
		"form":   gin.H{"text": post.Text, "group": post.GroupID, "image": post.Image},
		"groups": views,
	})
}

// Edit 原地更新帖子；非作者静默跳回详情页，pub_date 不变
// @Summary 编辑帖子
// @Tags 帖子
// @Accept mpfd
// @Param id path string true "帖子 id"
// @Param text formData string true "正文"
// @Param group formData string false "分组 id"
// @Param image formData file false "图片"
// @Success 302
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /posts/{id}/edit/ [post]
func (h *Handler) Edit(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)
	postID := c.Param("id")

	// 先做存在性与授权检查，再碰表单和图片，
	// 非作者不暴露任何校验信息，也不落任何媒体文件
	post, _, err := h.posts.Detail(c.Request.Context(), postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundPage(c, c.Request.URL.Path)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if post.AuthorID != viewerID {
		c.Redirect(http.StatusFound, "/posts/"+post.ID+"/")
		return
	}

	text := c.PostForm("text")
	var groupID *string
	if g := c.PostForm("group"); g != "" {
		groupID = &g
	}
	image, ok := h.saveImage(c)
	if !ok {
		return
	}

	post, err = h.posts.Edit(c.Request.Context(), postID, viewerID, text, groupID, image)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundPage(c, c.Request.URL.Path)
		return
	}
	if errors.Is(err, service.ErrNotAuthor) {
		c.Redirect(http.StatusFound, "/posts/"+post.ID+"/")
		return
	}
	if !h.renderPostFormErr(c, err) {
		return
	}
	h.invalidateListings(c)
	c.Redirect(http.StatusFound, "/posts/"+post.ID+"/")
}

// saveImage 保存可选图片；格式不受支持时返回表单错误
func (h *Handler) saveImage(c *gin.Context) (string, bool) {
	fh, err := c.FormFile("image")
	if err != nil {
		return "", true // 无图片
	}
	path, err := h.store.Save(fh)
	if errors.Is(err, storage.ErrUnsupportedImage) {
		response.ValidationFailed(c, map[string]string{"image": "unsupported image type"})
		return "", false
	}
	if err != nil {
		response.InternalError(c, err)
		return "", false
	}
	return path, true
}

// renderPostFormErr 把服务层的表单类错误映射为字段级响应；
// 返回 true 表示无错误
func (h *Handler) renderPostFormErr(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, service.ErrEmptyText):
		response.ValidationFailed(c, map[string]string{"text": "text must not be empty"})
	case errors.Is(err, service.ErrUnknownGroup):
		response.ValidationFailed(c, map[string]string{"group": "unknown group"})
	default:
		response.InternalError(c, err)
	}
	return false
}
