package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/park285/pharmacist-relay-go/internal/httperror"
	"github.com/park285/pharmacist-relay-go/internal/middleware"
)

// writeError: 에러를 표준 오류 본문으로 작성합니다.
func writeError(c *gin.Context, err error) {
	if c == nil {
		return
	}
	status, payload := httperror.Response(err, middleware.GetRequestID(c))
	c.AbortWithStatusJSON(status, payload)
}

// bindJSON: 요청 본문을 JSON으로 파싱합니다. 실패하면 422 를 작성하고 false 를 반환합니다.
func bindJSON(c *gin.Context, out any) bool {
	if c == nil {
		return false
	}
	if err := c.ShouldBindJSON(out); err != nil {
		writeError(c, httperror.NewValidationError(err))
		return false
	}
	return true
}
