package handler

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"storefront-backend/internal/metrics"
)

type RouterConfig struct {
	AllowOrigins []string
	Metrics      *metrics.Metrics
}

func NewRouter(h *Handler, conf RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	r.Use(cors.New(corsConfig(conf.AllowOrigins)))
	if conf.Metrics != nil {
		r.Use(conf.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(conf.Metrics.Handler()))
	}

	r.GET("/", h.root)
	r.GET("/test", h.diagnostics)
	r.GET("/schema", h.schema)

	api := r.Group("/api")
	{
		// Products
		api.GET("/products", h.listProducts)
		api.GET("/products/:id", h.getProduct)

		// Blog
		api.GET("/blogs", h.listBlogPosts)
		api.GET("/blogs/:id", h.getBlogPost)

		api.POST("/orders", h.createOrder)
		api.POST("/contact", h.submitContact)

		// Auth
		api.POST("/auth/register", h.register)
		api.POST("/auth/login", h.login)
	}

	return r
}

// corsConfig allows any origin when the list is empty or contains "*".
func corsConfig(origins []string) cors.Config {
	conf := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			conf.AllowAllOrigins = true
			return conf
		}
	}
	if len(origins) == 0 {
		conf.AllowAllOrigins = true
		return conf
	}
	conf.AllowOrigins = origins
	conf.AllowCredentials = true
	return conf
}

// requestLogger attaches a request-scoped logger to the context, so service
// code logging through log.Ctx carries the request id.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := uuid.New().String()

		logger := log.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Header("X-Request-ID", requestID)

		c.Next()

		log.Ctx(c.Request.Context()).Info().
			Str("method", c.Request.Method).
			Str("endpoint", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Int64("latency", time.Since(start).Milliseconds()).
			Msg("Request processed")
	}
}
