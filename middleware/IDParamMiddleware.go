package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IDParamMiddleware parses a positive integer path parameter and stores it
// under the same key as an int64.
func IDParamMiddleware(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param(param), 10, 64)
		if err != nil || id <= 0 {
			abort(c, http.StatusBadRequest, "ID tidak valid")
			return
		}
		c.Set(param, id)
		c.Next()
	}
}
