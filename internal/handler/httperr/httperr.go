package httperr

import (
	"qr-coupon-server/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// Response is the single error body shape; Error stays a plain string because scanning clients branch on it
type Response struct {
	Status int    `json:"-"`
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Detail any    `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg, code string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status, Error: msg, Code: code, Detail: detail}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
