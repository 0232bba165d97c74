package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/paginater/internal/entity"
	"github.com/maxviazov/paginater/internal/repository"
	"github.com/maxviazov/paginater/internal/service"
	"github.com/maxviazov/paginater/pkg/response"
)

type ArticleHandler struct {
	svc service.ArticleService
	ex  *exposer
}

func NewArticleHandler(svc service.ArticleService, ex *exposer) *ArticleHandler {
	return &ArticleHandler{svc: svc, ex: ex}
}

func (h *ArticleHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/articles")
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:article_id", h.getByID)
	}
	// Nested listing: /api/v1/authors/:author_id/articles
	r.Group("/authors").GET("/:author_id/articles", h.listByAuthor)
}

type createArticleRequest struct {
	AuthorID int64    `json:"author_id" binding:"required,gt=0"`
	Title    string   `json:"title" binding:"required"`
	Body     string   `json:"body"`
	Status   string   `json:"status" binding:"omitempty,oneof=draft published archived"`
	Tags     []string `json:"tags" binding:"max=10"`
}

func (h *ArticleHandler) create(c *gin.Context) {
	var req createArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, bindError(err))
		return
	}
	article, err := h.svc.CreateArticle(c.Request.Context(), service.CreateArticleInput{
		AuthorID: req.AuthorID,
		Title:    req.Title,
		Body:     req.Body,
		Status:   req.Status,
		Tags:     req.Tags,
	})
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", h.ex.baseURL+"/articles/"+strconv.FormatInt(article.ID, 10))
	response.WriteData(c, http.StatusCreated, h.ex.types.Article.Represent(&article, nil).Map(h.ex.options(c)))
}

func (h *ArticleHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "article_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	article, err := h.svc.GetArticle(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, h.ex.types.Article.Represent(&article, nil).Map(h.ex.options(c)))
}

func (h *ArticleHandler) list(c *gin.Context) {
	var f repository.ArticleFilter
	if raw := strings.TrimSpace(c.Query("author_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.WriteError(c, service.InvalidInput(service.FieldError{Field: "author_id", Message: "must be a valid integer"}))
			return
		}
		f.AuthorID = id
	}
	f.Status = c.Query("status")
	h.respondList(c, f)
}

func (h *ArticleHandler) listByAuthor(c *gin.Context) {
	id, err := pathID(c, "author_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	if id <= 0 {
		response.WriteError(c, service.InvalidInput(service.FieldError{Field: "author_id", Message: "must be > 0"}))
		return
	}
	h.respondList(c, repository.ArticleFilter{AuthorID: id, Status: c.Query("status")})
}

func (h *ArticleHandler) respondList(c *gin.Context, f repository.ArticleFilter) {
	params, err := parseListParams(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	page, err := h.svc.ListArticles(c.Request.Context(), f, params)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WritePage(c, entity.Present(h.ex.types.Article, page.Items(), h.ex.options(c)), page.Meta())
}
