package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postline/pkg/response"
)

// NotFound 未匹配路由统一落到 404 页
func (h *Handler) NotFound(c *gin.Context) {
	response.NotFoundPage(c, c.Request.URL.Path)
}

// Forbidden 权限不足的 403 页
func (h *Handler) Forbidden(c *gin.Context) {
	response.ForbiddenPage(c, c.Request.URL.Path)
}

// CSRFFailure 请求令牌校验失败的 403 页
func (h *Handler) CSRFFailure(c *gin.Context) {
	response.CSRFFailurePage(c, c.Request.URL.Path)
}
