package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "verde",
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	IntakeSubmissions = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "verde",
		Name:      "intake_submissions_total",
		Help:      "Loan requests persisted through the intake form.",
	})

	IntakeRejections = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "verde",
		Name:      "intake_rejections_total",
		Help:      "Intake submissions rejected by validation.",
	})
)

// Middleware counts every request against its registered route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes the default prometheus registry.
func Handler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
