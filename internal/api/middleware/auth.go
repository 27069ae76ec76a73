package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/postline/internal/service"
)

const (
	ctxUserID   = "viewer_id"
	ctxUsername = "viewer_name"
)

// Authenticate 解析 Bearer 头或 token cookie，成功则注入当前用户；
// 匿名请求原样放行，由 LoginRequired 决定是否拦截
func Authenticate(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			raw = strings.TrimPrefix(h, "Bearer ")
		} else if cookie, err := c.Cookie("token"); err == nil {
			raw = cookie
		}
		if raw != "" {
			if id, name, err := auth.ParseToken(raw); err == nil {
				c.Set(ctxUserID, id)
				c.Set(ctxUsername, name)
			}
		}
		c.Next()
	}
}

// LoginRequired 匿名访问受保护路由时 302 到登录页，携带原目标
func LoginRequired(loginURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			target := loginURL + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID 返回当前登录用户 id
func CurrentUserID(c *gin.Context) (string, bool) {
	id, ok := c.Get(ctxUserID)
	if !ok {
		return "", false
	}
	s, ok := id.(string)
	return s, ok && s != ""
}

// CurrentUsername 返回当前登录用户名
func CurrentUsername(c *gin.Context) (string, bool) {
	name, ok := c.Get(ctxUsername)
	if !ok {
		return "", false
	}
	s, ok := name.(string)
	return s, ok && s != ""
}
