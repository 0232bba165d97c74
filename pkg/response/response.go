// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/maxviazov/paginater/internal/exposure"
	"github.com/maxviazov/paginater/internal/pagination"
	"github.com/maxviazov/paginater/internal/render"
	"github.com/maxviazov/paginater/internal/repository"
	"github.com/maxviazov/paginater/internal/service"
)

// FormatKey is the gin context key holding the negotiated render.Format.
const FormatKey = "response.format"

// Pagination headers set by WritePage.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPage       = "X-Page"
	HeaderPerPage    = "X-Per-Page"
	HeaderTotalPages = "X-Total-Pages"
)

// ErrorPayload is the canonical error envelope returned by the API.
type ErrorPayload struct {
	Error       string               `json:"error" yaml:"error" xml:"error"`
	Message     string               `json:"message,omitempty" yaml:"message,omitempty" xml:"message,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty" yaml:"field_errors,omitempty" xml:"field_errors>field_error,omitempty"`
}

// MapError converts a domain / infrastructure error into an HTTP status and payload.
// Extend here as new domain error categories emerge.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}

	if errors.Is(err, service.ErrInvalidInput) {
		return http.StatusBadRequest, ErrorPayload{
			Error:       "invalid_input",
			Message:     "one or more fields are invalid",
			FieldErrors: service.FieldErrors(err),
		}
	}

	switch {
	case errors.Is(err, render.ErrUnknownFormat):
		return http.StatusNotAcceptable, ErrorPayload{Error: "not_acceptable", Message: "format must be one of json, yaml, xml"}
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, ErrorPayload{Error: "not_found"}
	case errors.Is(err, repository.ErrAlreadyExists):
		return http.StatusConflict, ErrorPayload{Error: "already_exists"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorPayload{Error: "conflict"}
	default:
		return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
	}
}

// Format returns the negotiated format for the request, JSON when none was negotiated.
func Format(c *gin.Context) render.Format {
	if v, ok := c.Get(FormatKey); ok {
		if f, ok := v.(render.Format); ok {
			return f
		}
	}
	return render.JSON
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Int("status", status).Msg("request failed")
	}
	c.Abort()
	WriteData(c, status, payload)
}

// WriteData writes a successful response in the negotiated format.
func WriteData(c *gin.Context, status int, data any) {
	f := Format(c)
	c.Header("Content-Type", f.ContentType())
	c.Status(status)
	if err := render.Encode(c.Writer, f, data); err != nil {
		_ = c.Error(err)
	}
}

// WritePage writes {"items", "meta"} and mirrors the metadata in headers, including a Link header
// with first, prev, next and last relations.
func WritePage(c *gin.Context, items any, meta pagination.Meta) {
	h := c.Writer.Header()
	h.Set(HeaderTotalCount, strconv.Itoa(meta.TotalCount))
	h.Set(HeaderPage, strconv.Itoa(meta.CurrentPage))
	h.Set(HeaderTotalPages, strconv.Itoa(meta.TotalPages))
	if meta.Limit != nil {
		h.Set(HeaderPerPage, strconv.Itoa(*meta.Limit))
	}
	if link := linkHeader(c.Request.URL, meta); link != "" {
		h.Set("Link", link)
	}

	body := exposure.NewMap()
	body.Set("items", items)
	body.Set("meta", meta)
	WriteData(c, http.StatusOK, body)
}

func linkHeader(u *url.URL, meta pagination.Meta) string {
	if meta.Limit == nil {
		return ""
	}
	rel := func(page int, name string) string {
		q := u.Query()
		q.Set("page", strconv.Itoa(page))
		q.Del("padding")
		ref := url.URL{Path: u.Path, RawQuery: q.Encode()}
		return "<" + ref.String() + `>; rel="` + name + `"`
	}
	links := []string{rel(1, "first")}
	if meta.PrevPage > 0 {
		links = append(links, rel(meta.PrevPage, "prev"))
	}
	if meta.NextPage > 0 {
		links = append(links, rel(meta.NextPage, "next"))
	}
	if meta.TotalPages > 0 {
		links = append(links, rel(meta.TotalPages, "last"))
	}
	return strings.Join(links, ", ")
}
