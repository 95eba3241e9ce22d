package logging

import (
	"time"

	"github.com/gin-gonic/gin"
)

// RequestLogger writes one structured line per request after it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		event := Ctx(c.Request.Context()).Info()
		if status >= 500 {
			event = Ctx(c.Request.Context()).Error()
		} else if status >= 400 {
			event = Ctx(c.Request.Context()).Warn()
		}

		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
