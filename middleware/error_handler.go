package middleware

import (
	"securix/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Recovery converts panics into a 500 envelope instead of dropping the
// connection.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logrus.WithFields(logrus.Fields{
					"requestId": c.GetString("request_id"),
					"path":      c.Request.URL.Path,
					"panic":     r,
				}).Error("Panic recovered")
				utils.InternalServerErrorResponse(c, "")
				c.Abort()
			}
		}()
		c.Next()
	}
}
