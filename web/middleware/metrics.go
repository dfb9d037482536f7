package middleware

import (
	"strconv"
	"time"

	"github.com/dukcapil-minsel/suket/logger"
	"github.com/dukcapil-minsel/suket/util/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-ID"

// AccessLog tags the request with an id, then logs and counts it once the
// handler chain returns. Routes are labelled by pattern, not raw path.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		metrics.HTTPRequestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		logger.Debugf("[%s] %s %s %d %s", id, c.Request.Method, c.Request.URL.Path, status, elapsed)
	}
}
