package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

func RegisterMisc(injector *do.Injector, e *echo.Echo) {
	e.GET("/api/ping", func(c echo.Context) error {
		type response struct {
			Time int64 `json:"time"`
		}
		return respondOK(c, &response{Time: time.Now().Unix()})
	})
}
