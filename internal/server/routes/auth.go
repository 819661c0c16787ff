package routes

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/identity"
)

const principalKey = "principal"

// bearerAuth resolves the Authorization bearer token to a principal and
// stashes it on the request context.
func bearerAuth(injector *do.Injector) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return c.JSON(http.StatusUnauthorized, &envelope{
					OK:    false,
					Error: &errorBody{Reason: entity.ReasonUnauthorized, Detail: "missing bearer token"},
				})
			}
			provider := do.MustInvoke[identity.Provider](injector)
			principal, err := provider.PrincipalByToken(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, &envelope{
					OK:    false,
					Error: &errorBody{Reason: entity.ReasonUnauthorized},
				})
			}
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

func principalFrom(c echo.Context) *entity.Principal {
	return c.Get(principalKey).(*entity.Principal)
}
