package handler

import (
	"crypto/subtle"
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/paginater/internal/entity"
	"github.com/maxviazov/paginater/internal/exposure"
	"github.com/maxviazov/paginater/internal/service"
)

var validationOnce sync.Once

// registerValidation makes gin's validator report fields by their json or form names.
func registerValidation() {
	validationOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				if name, _, _ := strings.Cut(f.Tag.Get(tag), ","); name != "" && name != "-" {
					return name
				}
			}
			return f.Name
		})
	})
}

// bindError turns a binding failure into field errors.
func bindError(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make([]service.FieldError, 0, len(ve))
		for _, fe := range ve {
			fields = append(fields, service.FieldError{Field: fe.Field(), Message: validationMessage(fe)})
		}
		return service.InvalidInput(fields...)
	}
	return service.InvalidInput(service.FieldError{Field: "body", Message: "malformed request: " + err.Error()})
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gt":
		return "must be > " + fe.Param()
	case "min":
		return "must be >= " + fe.Param()
	case "max":
		return "must be <= " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return "failed " + fe.Tag() + " validation"
}

// pathID parses a positive integer path parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil {
		return 0, service.InvalidInput(service.FieldError{Field: name, Message: "must be a valid integer"})
	}
	return id, nil
}

// listQuery is the paging part of a list request. per accepts "all" as well as a number.
type listQuery struct {
	Page    string `form:"page"`
	Per     string `form:"per"`
	All     string `form:"all"`
	Padding string `form:"padding"`
}

func parseListParams(c *gin.Context) (service.ListParams, error) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return service.ListParams{}, bindError(err)
	}
	var (
		p     service.ListParams
		ferrs []service.FieldError
	)
	intParam := func(name, raw string, dst *int) {
		if raw == "" {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			ferrs = append(ferrs, service.FieldError{Field: name, Message: "must be a valid integer"})
			return
		}
		*dst = n
	}
	intParam("page", q.Page, &p.Page)
	if strings.EqualFold(strings.TrimSpace(q.Per), "all") {
		p.All = true
	} else {
		intParam("per", q.Per, &p.Per)
	}
	intParam("padding", q.Padding, &p.Padding)
	if q.All != "" {
		p.All = p.All || parseBoolQuery(q.All)
	}
	if len(ferrs) > 0 {
		return service.ListParams{}, service.InvalidInput(ferrs...)
	}
	return p, nil
}

// parseBoolQuery is a helper to flexibly parse boolean-like query parameters.
func parseBoolQuery(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

// exposer renders domain values through the declared exposure types with per-request options.
type exposer struct {
	types      *entity.Set
	baseURL    string
	adminToken string
}

func newExposer(d Deps) *exposer {
	types := d.Entities
	if types == nil {
		types = entity.New(nil)
	}
	base := strings.TrimRight(d.BaseURL, "/") + APIV1Prefix
	return &exposer{types: types, baseURL: base, adminToken: d.AdminToken}
}

func (e *exposer) options(c *gin.Context) exposure.Options {
	opts := exposure.Options{entity.OptBaseURL: e.baseURL}
	if parseBoolQuery(c.Query("summary")) {
		opts[entity.OptSummary] = true
	}
	if tok := c.GetHeader(HeaderAdminToken); e.adminToken != "" && tok != "" &&
		subtle.ConstantTimeCompare([]byte(tok), []byte(e.adminToken)) == 1 {
		opts[entity.OptAdmin] = true
	}
	return opts
}
