package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "medverify/docs" // registers the generated OpenAPI spec
	"medverify/internal/handler"
	"medverify/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	verifyH *handler.VerificationHandler,
	reviewH *handler.ReviewHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/health", healthH.Health)
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.POST("/ocr-check", verifyH.Check)

	v1 := api.Group("/v1")
	verifications := v1.Group("/verifications")
	verifications.POST("", verifyH.Create)
	verifications.GET("", reviewH.List)
	verifications.GET("/export", reviewH.Export)
	verifications.GET("/:id", reviewH.GetByID)

	return r
}
