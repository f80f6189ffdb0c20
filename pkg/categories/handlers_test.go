package categories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nothingbut/bookshelf/pkg/models"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	resolver *Resolver
	cats     []*models.Category
}

func (s *staticSource) ListCategories(_ context.Context) ([]*models.Category, error) {
	return s.cats, nil
}

func (s *staticSource) CategoryPath(_ context.Context, id string) ([]string, error) {
	return s.resolver.Resolve(id)
}

func setupTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cats := []*models.Category{
		cat("root", "网络小说", ""),
		cat("xh", "玄幻", "root"),
	}
	src := &staticSource{cats: cats, resolver: NewResolver(NewTable(cats), DefaultMaxHops)}

	e := echo.New()
	RegisterRoutes(e, src, src)
	return e
}

func TestHandlers_List(t *testing.T) {
	t.Parallel()

	e := setupTestServer(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Categories []*models.Category `json:"categories"`
		Total      int                `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, "玄幻", body.Categories[1].Name)
}

func TestHandlers_Path(t *testing.T) {
	t.Parallel()

	e := setupTestServer(t)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories/xh/path", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ID   string   `json:"id"`
		Path []string `json:"path"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "xh", body.ID)
	assert.Equal(t, []string{"网络小说", "玄幻"}, body.Path)
}
