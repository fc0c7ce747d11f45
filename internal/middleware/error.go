package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/bangladiet/backend/internal/apperrors"
)

// ErrorHandler renders the last error attached with c.Error as a JSON
// {error, code} body. Handlers that already wrote a response are left alone.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		httpErr := apperrors.MapErrorToHTTP(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			log.Printf("[API] %s %s: %v", c.Request.Method, c.FullPath(), err)
		}
		c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
}

// Recovery turns panics into a JSON 500 without partial data.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("[API] panic in %s %s: %v", c.Request.Method, c.FullPath(), recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, apperrors.ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
	})
}
