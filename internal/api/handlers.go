package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrettScheepers/fightsight/internal/probe"
)

// Service identity literals. These are part of the wire contract: the web
// frontend and deployment tooling match on them verbatim.
const (
	ServiceTitle       = "FightSight CV Service"
	ServiceVersion     = "0.1.0"
	ServiceDescription = "Computer Vision analysis using MediaPipe"

	serviceID = "cv-service"
)

// timestampLayout renders naive UTC with microsecond precision and no zone
// suffix — the format existing consumers of the health endpoint parse.
const timestampLayout = "2006-01-02T15:04:05.000000"

// dependencyChecker is the subset of *probe.Checker used by the HTTP
// handlers. Declaring it as an interface allows test doubles to be injected.
type dependencyChecker interface {
	Run(ctx context.Context) map[string]probe.Result
}

// Handler holds the dependencies shared across all HTTP handlers.
type Handler struct {
	checker dependencyChecker
}

// ServiceInfo is the payload returned by the root endpoint.
type ServiceInfo struct {
	Name        string           `json:"name"`
	Version     string           `json:"version"`
	Description string           `json:"description"`
	Endpoints   ServiceEndpoints `json:"endpoints"`
}

// ServiceEndpoints lists the discoverable routes advertised at the root.
type ServiceEndpoints struct {
	Health  string `json:"health"`
	Docs    string `json:"docs"`
	OpenAPI string `json:"openapi"`
}

// HealthStatus is the payload returned by the liveness endpoint.
type HealthStatus struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
	Mediapipe string `json:"mediapipe"`
}

// Root handles GET /.
// It always returns 200 with the fixed service identity payload.
//
//	@Summary	Service information
//	@Produce	json
//	@Success	200	{object}	api.ServiceInfo
//	@Router		/ [get]
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, ServiceInfo{
		Name:        ServiceTitle,
		Version:     ServiceVersion,
		Description: ServiceDescription,
		Endpoints: ServiceEndpoints{
			Health:  "/health",
			Docs:    "/docs",
			OpenAPI: "/openapi.json",
		},
	})
}

// Health handles GET /health.
// It always returns 200 and never touches a backing service — this is the
// liveness probe used by container orchestration.
//
//	@Summary	Liveness probe
//	@Produce	json
//	@Success	200	{object}	api.HealthStatus
//	@Router		/health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthStatus{
		Status:    "healthy",
		Service:   serviceID,
		Timestamp: time.Now().UTC().Format(timestampLayout),
		Mediapipe: "ready",
	})
}

// DeepHealth handles GET /health/deep.
// It probes the platform dependencies and returns 200 only when every probe
// is OK, 503 otherwise.
//
//	@Summary	Deep health check
//	@Produce	json
//	@Success	200	{object}	map[string]any
//	@Failure	503	{object}	map[string]any
//	@Router		/health/deep [get]
func (h *Handler) DeepHealth(c *gin.Context) {
	results := h.checker.Run(c.Request.Context())

	status := "healthy"
	code := http.StatusOK
	if !probe.AllOK(results) {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":       status,
		"dependencies": results,
	})
}
