package api

import (
	"net/http"
	"strconv"
	"time"

	"pricenator/internal/models"
	"pricenator/internal/service"
	"pricenator/internal/util"
	"pricenator/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler contains HTTP handlers
type Handler struct {
	prices      *service.PriceService
	initializer *worker.Initializer
}

// NewHandler creates a new HTTP handler
func NewHandler(prices *service.PriceService, initializer *worker.Initializer) *Handler {
	return &Handler{
		prices:      prices,
		initializer: initializer,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")
	{
		apiGroup.POST("/initialize", h.initialize)
		apiGroup.GET("/test-price", h.testPrice)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ready",
		"initialized": h.initializer.Started(),
		"time":        time.Now().Unix(),
	})
}

// initialize registers the order event handlers. Safe to call repeatedly.
func (h *Handler) initialize(c *gin.Context) {
	first, err := h.initializer.Initialize()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error initializing app",
			"error":   err.Error(),
		})
		return
	}

	message := "App initialized successfully"
	if !first {
		message = "App already initialized"
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

// testPrice manually bumps a single product's price outside the order flow.
func (h *Handler) testPrice(c *gin.Context) {
	productID := c.Query("productId")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Missing productId parameter",
		})
		return
	}

	result := h.prices.BumpPrice(c.Request.Context(), productID)

	switch result.Outcome {
	case models.OutcomeProductNotFound:
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "Product not found: " + productID,
		})

	case models.OutcomeUpdateFailed:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   result.Error,
		})

	default:
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Price updated for product " + productID +
				" from " + models.FormatPrice(result.PreviousPrice) +
				" to " + models.FormatPrice(result.NewPrice),
			"previousPrice": result.PreviousPrice,
			"newPrice":      result.NewPrice,
		})
	}
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
