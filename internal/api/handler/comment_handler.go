package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/d60-Lab/postline/internal/api/middleware"
	"github.com/d60-Lab/postline/pkg/response"
)

// AddComment 给帖子追加评论；无论评论是否有效都跳回详情页，
// 无效输入不落库也不报错
// @Summary 发表评论
// @Tags 评论
// @Accept mpfd
// @Param id path string true "帖子 id"
// @Param text formData string true "评论内容"
// @Success 302
// @Failure 404 {object} response.Response
// @Router /posts/{id}/comment/ [post]
func (h *Handler) AddComment(c *gin.Context) {
	viewerID, _ := middleware.CurrentUserID(c)
	postID := c.Param("id")
	detail := "/posts/" + postID + "/"

	text := c.PostForm("text")
	if strings.TrimSpace(text) == "" {
		c.Redirect(http.StatusFound, detail)
		return
	}

	_, err := h.comments.Add(c.Request.Context(), postID, viewerID, text)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		response.NotFoundPage(c, c.Request.URL.Path)
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	h.invalidateListings(c)
	c.Redirect(http.StatusFound, detail)
}
