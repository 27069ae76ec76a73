package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postline/internal/service"
	"github.com/d60-Lab/postline/pkg/response"
)

type groupForm struct {
	Title       string `form:"title" json:"title" binding:"required,max=200"`
	Slug        string `form:"slug" json:"slug" binding:"required,max=64,slug"`
	Description string `form:"description" json:"description"`
}

// Groups 全部分组
// @Summary 分组列表
// @Tags 分组
// @Success 200 {object} response.Response
// @Router /groups/ [get]
func (h *Handler) Groups(c *gin.Context) {
	groups, err := h.groups.List(c.Request.Context())
	if err != nil {
		response.InternalError(c, err)
		return
	}
	views := make([]groupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, newGroupView(g))
	}
	response.Success(c, gin.H{"groups": views})
}

// CreateGroup 新建分组，slug 需要唯一且 URL 安全
// @Summary 新建分组
// @Tags 分组
// @Accept json
// @Param request body groupForm true "分组信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /groups/ [post]
func (h *Handler) CreateGroup(c *gin.Context) {
	var form groupForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	group, err := h.groups.Create(c.Request.Context(), form.Title, form.Slug, form.Description)
	if errors.Is(err, service.ErrSlugTaken) {
		response.ValidationFailed(c, map[string]string{"slug": "already taken"})
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	h.invalidateListings(c)
	response.Success(c, newGroupView(group))
}
