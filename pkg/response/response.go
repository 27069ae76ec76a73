package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一返回结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Code: http.StatusBadRequest, Message: msg})
}

// ValidationFailed 表单校验失败，携带字段级错误，不产生任何写入
func ValidationFailed(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    http.StatusBadRequest,
		Message: "validation failed",
		Data:    gin.H{"errors": fields},
	})
}

func Unauthorized(c *gin.Context, msg string) {
	c.JSON(http.StatusUnauthorized, Response{Code: http.StatusUnauthorized, Message: msg})
}

func InternalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, Response{Code: http.StatusInternalServerError, Message: err.Error()})
}

// NotFoundPage 404 页面，带上出错路径便于排查
func NotFoundPage(c *gin.Context, path string) {
	c.JSON(http.StatusNotFound, Response{
		Code:    http.StatusNotFound,
		Message: "page not found",
		Data:    gin.H{"path": path},
	})
}

// ForbiddenPage 403 页面
func ForbiddenPage(c *gin.Context, path string) {
	c.JSON(http.StatusForbidden, Response{
		Code:    http.StatusForbidden,
		Message: "permission denied",
		Data:    gin.H{"path": path},
	})
}

// CSRFFailurePage 请求校验令牌失败的 403 页面，附带说明
func CSRFFailurePage(c *gin.Context, path string) {
	c.JSON(http.StatusForbidden, Response{
		Code:    http.StatusForbidden,
		Message: "csrf verification failed",
		Data: gin.H{
			"path":   path,
			"reason": "missing or mismatched request token; reload the page and retry",
		},
	})
}
