package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/paginater/pkg/response"
)

// Pinger is the minimal contract I need from a repository to check readiness.
// I keep it local to the handler package to avoid coupling and simplify tests.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthStatus struct {
	Status string `json:"status" yaml:"status" xml:"status"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty" xml:"error,omitempty"`
}

// HealthHandler exposes liveness and readiness endpoints.
type HealthHandler struct {
	repo Pinger
}

func NewHealthHandler(repo Pinger) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Liveness responds OK if the process is up; it doesn't check dependencies.
func (h *HealthHandler) Liveness(c *gin.Context) {
	response.WriteData(c, http.StatusOK, healthStatus{Status: "alive"})
}

// Readiness verifies the storage backend answers.
func (h *HealthHandler) Readiness(c *gin.Context) {
	if h.repo == nil {
		response.WriteData(c, http.StatusOK, healthStatus{Status: "ready"})
		return
	}
	if err := h.repo.Ping(c.Request.Context()); err != nil {
		response.WriteData(c, http.StatusServiceUnavailable, healthStatus{Status: "unavailable", Error: err.Error()})
		return
	}
	response.WriteData(c, http.StatusOK, healthStatus{Status: "ready"})
}
