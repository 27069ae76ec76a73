package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/d60-Lab/postline/pkg/response"
)

const csrfCookie = "csrf_token"

// CSRF 双提交 cookie 校验：写请求需带与 cookie 一致的令牌，
// 失败走专用 403 页
func CSRF(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			if _, err := c.Cookie(csrfCookie); err != nil {
				c.SetCookie(csrfCookie, uuid.New().String(), 0, "/", "", false, false)
			}
			c.Next()
			return
		}

		cookie, err := c.Cookie(csrfCookie)
		token := c.GetHeader("X-CSRF-Token")
		if token == "" {
			token = c.PostForm("csrf_token")
		}
		if err != nil || token == "" ||
			subtle.ConstantTimeCompare([]byte(cookie), []byte(token)) != 1 {
			response.CSRFFailurePage(c, c.Request.URL.Path)
			c.Abort()
			return
		}
		c.Next()
	}
}
