package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/paginater/internal/entity"
	"github.com/maxviazov/paginater/internal/service"
	"github.com/maxviazov/paginater/pkg/response"
)

type AuthorHandler struct {
	svc service.AuthorService
	ex  *exposer
}

func NewAuthorHandler(svc service.AuthorService, ex *exposer) *AuthorHandler {
	return &AuthorHandler{svc: svc, ex: ex}
}

func (h *AuthorHandler) Register(r *gin.RouterGroup) {
	g := r.Group("/authors")
	{
		g.GET("", h.list)
		g.POST("", h.create)
		g.GET("/:author_id", h.getByID)
	}
}

type createAuthorRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	Public bool   `json:"public"`
}

func (h *AuthorHandler) create(c *gin.Context) {
	var req createAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.WriteError(c, bindError(err))
		return
	}
	author, err := h.svc.CreateAuthor(c.Request.Context(), req.Name, req.Email, req.Public)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	c.Header("Location", h.ex.baseURL+"/authors/"+strconv.FormatInt(author.ID, 10))
	response.WriteData(c, http.StatusCreated, h.ex.types.Author.Represent(&author, nil).Map(h.ex.options(c)))
}

func (h *AuthorHandler) getByID(c *gin.Context) {
	id, err := pathID(c, "author_id")
	if err != nil {
		response.WriteError(c, err)
		return
	}
	author, err := h.svc.GetAuthor(c.Request.Context(), id)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WriteData(c, http.StatusOK, h.ex.types.Author.Represent(&author, nil).Map(h.ex.options(c)))
}

func (h *AuthorHandler) list(c *gin.Context) {
	params, err := parseListParams(c)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	page, err := h.svc.ListAuthors(c.Request.Context(), params)
	if err != nil {
		response.WriteError(c, err)
		return
	}
	response.WritePage(c, entity.Present(h.ex.types.Author, page.Items(), h.ex.options(c)), page.Meta())
}
