package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relgate/relgate/internal/entity"
	"github.com/relgate/relgate/internal/identity"
	"github.com/relgate/relgate/internal/usecase"
)

type stubProvider struct{}

func (stubProvider) PrincipalByToken(ctx context.Context, token string) (*entity.Principal, error) {
	return &entity.Principal{Email: "ops@example.com", Roles: []entity.RoleGroup{entity.RoleDevOps}}, nil
}

type stubExporter struct{}

func (stubExporter) Execute(ctx context.Context, format string, w io.Writer) error {
	switch format {
	case "csv":
		_, err := io.WriteString(w, "release_uuid,release_name\n")
		return err
	case "json":
		_, err := io.WriteString(w, "[]")
		return err
	default:
		return entity.NewError(entity.ReasonValidationFailed, "unsupported export format: "+format)
	}
}

func newExportTestServer() *echo.Echo {
	injector := do.New()
	do.Provide(injector, func(i *do.Injector) (identity.Provider, error) {
		return stubProvider{}, nil
	})
	do.Provide(injector, func(i *do.Injector) (usecase.ExportReleasesUsecase, error) {
		return stubExporter{}, nil
	})
	e := echo.New()
	RegisterReleaseAPI(injector, e)
	return e
}

func TestExportEndpoint_WritesCSV(t *testing.T) {
	e := newExportTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/releases/export?format=csv", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "release_uuid,release_name\n", rec.Body.String())
}

func TestExportEndpoint_BadFormatAnswersWithEnvelope(t *testing.T) {
	e := newExportTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/releases/export?format=xml", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.OK)
	require.NotNil(t, body.Error)
	assert.Equal(t, entity.ReasonValidationFailed, body.Error.Reason)
}

func TestExportEndpoint_RequiresBearerToken(t *testing.T) {
	e := newExportTestServer()
	req := httptest.NewRequest(http.MethodGet, "/api/releases/export", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
