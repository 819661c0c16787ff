package routes

import (
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/usecase"
)

func RegisterConstantAPI(injector *do.Injector, e *echo.Echo) {
	g := e.Group("/api/constants", bearerAuth(injector))

	// Repeated ?service= parameters narrow the listing.
	g.GET("", func(c echo.Context) error {
		services := c.QueryParams()["service"]
		uc := do.MustInvoke[usecase.ListConstantsUsecase](injector)
		constants, err := uc.Execute(c.Request().Context(), services)
		if err != nil {
			return respondErr(c, err)
		}
		type response struct {
			Constants []entity.ConstantInfo `json:"constants"`
		}
		return respondOK(c, &response{Constants: constants})
	})
}
