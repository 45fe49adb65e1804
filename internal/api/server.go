package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	_ "github.com/BrettScheepers/fightsight/docs" // register generated Swagger spec
	"github.com/BrettScheepers/fightsight/internal/config"
)

// Router wraps a configured Gin engine and exposes it as an http.Handler.
type Router struct {
	engine *gin.Engine
}

// NewRouter constructs a Router with the full middleware chain and all routes
// registered. The middleware order:
//  1. Recovery — panic → 500
//  2. TraceContext — OTEL span per request
//  3. RequestLogger — structured request/response logging
//  4. CORS — cross-origin policy from config
func NewRouter(corsCfg config.CORSConfig, checker dependencyChecker) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(Recovery(slog.Default()))
	engine.Use(TraceContext(serviceID))
	engine.Use(RequestLogger(slog.Default()))
	engine.Use(CORS(corsCfg))

	h := &Handler{checker: checker}

	engine.GET("/", h.Root)
	engine.GET("/health", h.Health)
	engine.GET("/health/deep", h.DeepHealth)

	// Interactive docs — the root payload advertises /docs and /openapi.json.
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	engine.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	engine.GET("/openapi.json", openAPISpec)

	return &Router{engine: engine}
}

// Handler returns the underlying http.Handler for use with net/http servers.
func (r *Router) Handler() http.Handler {
	return r.engine
}

// openAPISpec serves the raw generated spec so the link advertised at the
// root stays live for non-browser consumers.
func openAPISpec(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "openapi spec unavailable"})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
