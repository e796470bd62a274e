package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	emiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"

	"github.com/x-xyz/suinsapi/base/ctx"
)

func TestAddContext(t *testing.T) {
	e := echo.New()
	m := InitMiddleware()
	e.Use(emiddleware.RequestIDWithConfig(emiddleware.RequestIDConfig{
		Generator: func() string { return "req-1" },
	}))
	e.Use(m.ResponseLogger())
	e.Use(m.AddContext())

	var got interface{}
	e.GET("/ping", func(c echo.Context) error {
		cont := c.Get("ctx").(ctx.Ctx)
		got = cont.Value("requestID")
		return c.String(http.StatusOK, "pong")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", got)
}

func TestResponseLoggerHandlesErrors(t *testing.T) {
	e := echo.New()
	m := InitMiddleware()
	e.Use(m.ResponseLogger())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "short and stout")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(200))
	assert.Equal(t, "3xx", statusClass(304))
	assert.Equal(t, "4xx", statusClass(404))
	assert.Equal(t, "5xx", statusClass(502))
}
