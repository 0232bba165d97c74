package response

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/paginater/internal/pagination"
	"github.com/maxviazov/paginater/internal/render"
	"github.com/maxviazov/paginater/internal/repository"
	"github.com/maxviazov/paginater/internal/service"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		code int
		kind string
	}{
		{"nil", nil, http.StatusOK, "ok"},
		{"invalid input", service.InvalidInput(service.FieldError{Field: "title", Message: "must not be empty"}), http.StatusBadRequest, "invalid_input"},
		{"wrapped not found", fmt.Errorf("get: %w", repository.ErrNotFound), http.StatusNotFound, "not_found"},
		{"already exists", repository.ErrAlreadyExists, http.StatusConflict, "already_exists"},
		{"conflict", repository.ErrConflict, http.StatusConflict, "conflict"},
		{"unknown format", fmt.Errorf("%w: csv", render.ErrUnknownFormat), http.StatusNotAcceptable, "not_acceptable"},
		{"internal", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, payload := MapError(tc.in)
			assert.Equal(t, tc.code, code)
			assert.Equal(t, tc.kind, payload.Error)
		})
	}

	_, payload := MapError(service.InvalidInput(service.FieldError{Field: "title", Message: "must not be empty"}))
	require.Len(t, payload.FieldErrors, 1)
	assert.Equal(t, "title", payload.FieldErrors[0].Field)
}

func newContext(target string, f render.Format) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	if f != "" {
		c.Set(FormatKey, f)
	}
	return c, w
}

func TestWriteError_Negotiated(t *testing.T) {
	c, w := newContext("/x", render.XML)
	WriteError(c, service.InvalidInput(service.FieldError{Field: "per", Message: "must be >= 1"}))

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/xml; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<field_errors>")
	assert.Contains(t, w.Body.String(), "<field>per</field>")
}

func TestWritePage_Headers(t *testing.T) {
	c, w := newContext("/api/v1/articles?per=10&page=2&padding=1", "")
	meta := pagination.MetaOf(pagination.NewWindow(10, 10, 35, nil))
	WritePage(c, []any{}, meta)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "35", w.Header().Get(HeaderTotalCount))
	assert.Equal(t, "2", w.Header().Get(HeaderPage))
	assert.Equal(t, "10", w.Header().Get(HeaderPerPage))
	assert.Equal(t, "4", w.Header().Get(HeaderTotalPages))
	assert.Equal(t,
		`</api/v1/articles?page=1&per=10>; rel="first", `+
			`</api/v1/articles?page=1&per=10>; rel="prev", `+
			`</api/v1/articles?page=3&per=10>; rel="next", `+
			`</api/v1/articles?page=4&per=10>; rel="last"`,
		w.Header().Get("Link"))
	assert.JSONEq(t, `{"items":[],"meta":{"current_page":2,"total_pages":4,"total_count":35,"limit":10,"offset":10,"first_page":false,"last_page":false,"next_page":3,"prev_page":1}}`, w.Body.String())
}

func TestWritePage_Unbounded(t *testing.T) {
	c, w := newContext("/api/v1/authors?all=true", render.YAML)
	meta := pagination.MetaOf(pagination.NewWindow(pagination.Unbounded, 0, 3, nil))
	WritePage(c, []any{}, meta)

	assert.Empty(t, w.Header().Get(HeaderPerPage))
	assert.Empty(t, w.Header().Get("Link"))
	assert.Equal(t, "3", w.Header().Get(HeaderTotalCount))
	assert.Contains(t, w.Body.String(), "limit: null")
}
