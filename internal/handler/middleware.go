package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maxviazov/paginater/internal/render"
	"github.com/maxviazov/paginater/pkg/response"
)

const requestIDKey = "request_id"

// RequestID reuses the caller's X-Request-ID or generates one, echoes it back and stores a
// request-scoped logger carrying it in the request context.
func RequestID(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)

		l := base.With().Str("module", "http").Str(requestIDKey, id).Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))
		c.Next()
	}
}

// AccessLog logs one line per request once it has been served.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		l := zerolog.Ctx(c.Request.Context())
		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = l.Error()
		case status >= http.StatusBadRequest:
			event = l.Warn()
		default:
			event = l.Info()
		}
		if len(c.Errors) > 0 {
			event = event.Str("errors", c.Errors.String())
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", status).
			Int("size", c.Writer.Size()).
			Str("client_ip", c.ClientIP()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

// Recovery turns panics into the canonical internal_error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		zerolog.Ctx(c.Request.Context()).Error().Str("panic", fmt.Sprint(recovered)).Msg("recovered from panic")
		response.WriteError(c, fmt.Errorf("panic: %v", recovered))
	})
}

// Negotiate picks the response format: ?format= wins over the Accept header, JSON otherwise.
// An unknown ?format= is answered with 406.
func Negotiate() gin.HandlerFunc {
	return func(c *gin.Context) {
		f := render.JSON
		if q := c.Query("format"); q != "" {
			parsed, err := render.ParseFormat(q)
			if err != nil {
				c.Set(response.FormatKey, render.JSON)
				response.WriteError(c, err)
				return
			}
			f = parsed
		} else if c.GetHeader("Accept") != "" {
			f = render.FromMIME(c.NegotiateFormat(render.MIMETypes...))
		}
		c.Set(response.FormatKey, f)
		c.Next()
	}
}
