package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/paginater/internal/entity"
	"github.com/maxviazov/paginater/internal/service"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Pinger   Pinger
	Articles service.ArticleService
	Authors  service.AuthorService
	Entities *entity.Set
	// BaseURL prefixes computed links; empty means links relative to APIV1Prefix.
	BaseURL    string
	AdminToken string
	Logger     zerolog.Logger
}

// Register mounts middleware and all public routes on the given engine.
func Register(r *gin.Engine, d Deps) {
	registerValidation()
	r.Use(RequestID(d.Logger), AccessLog(), Recovery(), Negotiate())

	h := NewHealthHandler(d.Pinger)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	ex := newExposer(d)
	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		if d.Articles != nil {
			NewArticleHandler(d.Articles, ex).Register(api)
		}
		if d.Authors != nil {
			NewAuthorHandler(d.Authors, ex).Register(api)
		}
	}
}
