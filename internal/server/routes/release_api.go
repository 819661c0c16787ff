package routes

import (
	"bytes"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/usecase"
)

func RegisterReleaseAPI(injector *do.Injector, e *echo.Echo) {
	g := e.Group("/api/releases", bearerAuth(injector))

	g.POST("", func(c echo.Context) error {
		var req usecase.CreateReleaseInput
		if err := c.Bind(&req); err != nil {
			return respondErr(c, entity.NewError(entity.ReasonValidationFailed, "malformed payload"))
		}
		uc := do.MustInvoke[usecase.CreateReleaseUsecase](injector)
		rel, err := uc.Execute(c.Request().Context(), &req, principalFrom(c))
		if err != nil {
			return respondErr(c, err)
		}
		return respondOK(c, rel)
	})

	g.GET("", func(c echo.Context) error {
		uc := do.MustInvoke[usecase.ListReleasesUsecase](injector)
		releases, err := uc.Execute(c.Request().Context())
		if err != nil {
			return respondErr(c, err)
		}
		type response struct {
			Releases []*entity.Release `json:"release_list"`
		}
		return respondOK(c, &response{Releases: releases})
	})

	// The export is buffered so a store failure or a bad format still
	// answers with the error envelope instead of a half-written 200.
	g.GET("/export", func(c echo.Context) error {
		format := c.QueryParam("format")
		if format == "" {
			format = "json"
		}
		uc := do.MustInvoke[usecase.ExportReleasesUsecase](injector)
		var buf bytes.Buffer
		if err := uc.Execute(c.Request().Context(), format, &buf); err != nil {
			return respondErr(c, err)
		}
		contentType := echo.MIMEApplicationJSON
		if format == "csv" {
			contentType = "text/csv"
		}
		return c.Blob(http.StatusOK, contentType, buf.Bytes())
	})

	g.GET("/:uuid", func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("uuid"))
		if err != nil {
			return respondErr(c, entity.NewError(entity.ReasonValidationFailed, "malformed uuid"))
		}
		uc := do.MustInvoke[usecase.GetReleaseUsecase](injector)
		detail, err := uc.Execute(c.Request().Context(), id)
		if err != nil {
			return respondErr(c, err)
		}
		return respondOK(c, detail)
	})

	g.PUT("/:uuid", func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("uuid"))
		if err != nil {
			return respondErr(c, entity.NewError(entity.ReasonValidationFailed, "malformed uuid"))
		}
		var req usecase.ReleaseInput
		if err := c.Bind(&req); err != nil {
			return respondErr(c, entity.NewError(entity.ReasonValidationFailed, "malformed payload"))
		}
		uc := do.MustInvoke[usecase.UpdateReleaseUsecase](injector)
		rel, err := uc.Execute(c.Request().Context(), id, &req, principalFrom(c))
		if err != nil {
			return respondErr(c, err)
		}
		return respondOK(c, rel)
	})

	g.DELETE("/:uuid", func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("uuid"))
		if err != nil {
			return respondErr(c, entity.NewError(entity.ReasonValidationFailed, "malformed uuid"))
		}
		uc := do.MustInvoke[usecase.DeleteReleaseUsecase](injector)
		if err := uc.Execute(c.Request().Context(), id, principalFrom(c)); err != nil {
			return respondErr(c, err)
		}
		return respondOK(c, nil)
	})

	g.POST("/:uuid/approve", func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("uuid"))
		if err != nil {
			return respondErr(c, entity.NewError(entity.ReasonValidationFailed, "malformed uuid"))
		}
		uc := do.MustInvoke[usecase.ApproveReleaseUsecase](injector)
		approvers, err := uc.Execute(c.Request().Context(), id, principalFrom(c))
		if err != nil {
			return respondErr(c, err)
		}
		type response struct {
			Approvers []*entity.Approver `json:"approvers"`
		}
		return respondOK(c, &response{Approvers: approvers})
	})

	g.POST("/:uuid/revoke", func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("uuid"))
		if err != nil {
			return respondErr(c, entity.NewError(entity.ReasonValidationFailed, "malformed uuid"))
		}
		type request struct {
			Reason string `json:"reason"`
		}
		var req request
		if err := c.Bind(&req); err != nil {
			return respondErr(c, entity.NewError(entity.ReasonValidationFailed, "malformed payload"))
		}
		uc := do.MustInvoke[usecase.RevokeApprovalUsecase](injector)
		if err := uc.Execute(c.Request().Context(), id, req.Reason, principalFrom(c)); err != nil {
			return respondErr(c, err)
		}
		return respondOK(c, nil)
	})

	g.POST("/:uuid/deploy", func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("uuid"))
		if err != nil {
			return respondErr(c, entity.NewError(entity.ReasonValidationFailed, "malformed uuid"))
		}
		var req usecase.DeployReleaseInput
		if err := c.Bind(&req); err != nil {
			return respondErr(c, entity.NewError(entity.ReasonValidationFailed, "malformed payload"))
		}
		uc := do.MustInvoke[usecase.DeployReleaseUsecase](injector)
		rel, err := uc.Execute(c.Request().Context(), id, &req, principalFrom(c))
		if err != nil {
			return respondErr(c, err)
		}
		return respondOK(c, rel)
	})

	g.POST("/:uuid/jobstatus", func(c echo.Context) error {
		id, err := uuid.Parse(c.Param("uuid"))
		if err != nil {
			return respondErr(c, entity.NewError(entity.ReasonValidationFailed, "malformed uuid"))
		}
		uc := do.MustInvoke[usecase.JobStatusUsecase](injector)
		rel, err := uc.Execute(c.Request().Context(), id)
		if err != nil {
			return respondErr(c, err)
		}
		return respondOK(c, rel)
	})
}
