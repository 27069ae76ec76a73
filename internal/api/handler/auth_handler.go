package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postline/internal/service"
	"github.com/d60-Lab/postline/pkg/response"
)

type registerRequest struct {
	Username string `form:"username" json:"username" binding:"required,min=3,max=64"`
	Email    string `form:"email" json:"email" binding:"omitempty,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// Register 注册用户
// @Summary 注册
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body registerRequest true "注册信息"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.auth.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, service.ErrUsernameTaken) {
		response.ValidationFailed(c, map[string]string{"username": "already taken"})
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Success(c, gin.H{"id": user.ID, "username": user.Username})
}

// Login 登录换取 token，同时写入 cookie 供页面流程使用
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "登录信息"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		response.Unauthorized(c, err.Error())
		return
	}
	if err != nil {
		response.InternalError(c, err)
		return
	}
	c.SetCookie("token", token, 0, "/", "", false, true)
	response.Success(c, gin.H{"token": token, "next": c.Query("next")})
}

// LoginForm 登录页：回显登录表单与跳转目标
// @Summary 登录页
// @Tags 认证
// @Param next query string false "登录后的跳转目标"
// @Success 200 {object} response.Response
// @Router /auth/login [get]
func (h *Handler) LoginForm(c *gin.Context) {
	response.Success(c, gin.H{
		"form": gin.H{"username": "", "password": ""},
		"next": c.Query("next"),
	})
}
