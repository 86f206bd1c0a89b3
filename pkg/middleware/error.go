package middleware

import (
	"errors"
	"net/http"

	"github.com/SankarGaneshb/Virtuoso/pkg/errutil"

	"github.com/gin-gonic/gin"
)

// Error renders the last error attached to the gin context. Domain errors
// carry their own status mapping; anything else becomes a bare 500.
func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := c.Errors.Last()
		if err == nil || c.Writer.Written() {
			return
		}

		var base errutil.BaseError
		if errors.As(err.Err, &base) {
			c.JSON(base.Code.HTTPStatus(), base.JSON())
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": gin.H{
				"code":    errutil.StatusInternal,
				"message": err.Error(),
			},
		})
	}
}
