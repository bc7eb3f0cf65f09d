package api

import (
	"log"
	stdhttp "net/http"

	h "relay/internal/http/handlers"
	"relay/internal/http/middleware"
	"relay/internal/messaging"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the services and settings the routes need.
type Deps struct {
	Booker         h.Booker
	Replies        h.Router
	AllowedOrigins []string
	// Inbound reads the provider's webhook fields; nil means Twilio.
	Inbound messaging.InboundParser
	// Channel prefixes inbound senders that arrive as bare numbers.
	Channel string
	// Gatherer backs /metrics; nil uses the default registry.
	Gatherer prometheus.Gatherer
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger("/api/health", "/metrics"), gin.Recovery(), middleware.CORS(d.AllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/routes", h.Routes(r))

		api.POST("/book-ride", h.BookRide(d.Booker))
		api.POST("/incoming-message", h.IncomingMessage(d.Replies, d.Inbound, d.Channel))
	}

	return r
}
