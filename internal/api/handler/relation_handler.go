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
)

// ProfileFollow 关注作者（幂等，自关注不建边），随后跳回其主页
// @Summary 关注作者
// @Tags 关系链
// @Param username path string true "用户名"
// @Success 302
// @Failure 404 {object} response.Response
// @Router /profile/{username}/follow/ [post]
func (h *Handler) ProfileFollow(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)
	username := c.Param("username")

	_, err := h.rel.Follow(c.Request.Context(), viewerID, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundPage(c, c.Request.URL.Path)
		return
	}
	if err != nil && !errors.Is(err, service.ErrFollowSelf) {
		response.InternalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}

// ProfileUnfollow 取消关注，边不存在也照常跳转
// @Summary 取消关注
// @Tags 关系链
// @Param username path string true "用户名"
// @Success 302
// @Failure 404 {object} response.Response
// @Router /profile/{username}/unfollow/ [post]
func (h *Handler) ProfileUnfollow(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)
	username := c.Param("username")

	_, err := h.rel.Unfollow(c.Request.Context(), viewerID, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundPage(c, c.Request.URL.Path)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/profile/"+username+"/")
}

// FollowIndex 关注流：仅包含当前用户关注的作者的帖子
// @Summary 关注流
// @Tags 关系链
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response
// @Router /follow/ [get]
func (h *Handler) FollowIndex(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)
	page := pagination.ParsePage(c.DefaultQuery("page", "1"))

	pg, err := h.posts.Feed(c.Request.Context(), viewerID, page)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, pageData(pg))
}
