package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Deps struct {
	AuthHandler *AuthHTTP
	CORSOrigin  string
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	if d.CORSOrigin != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{d.CORSOrigin},
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	}

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/logout", d.AuthHandler.LogOut)
	e.POST("/verify", d.AuthHandler.Verify)
	e.PATCH("/update", d.AuthHandler.Update)
}
