package categories

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nothingbut/bookshelf/pkg/models"
	"github.com/pkg/errors"
)

// Source lists the full category table.
type Source interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

// PathSource resolves category paths, usually through a shared Resolver.
type PathSource interface {
	CategoryPath(ctx context.Context, categoryID string) ([]string, error)
}

type handler struct {
	source Source
	paths  PathSource
}

func (h *handler) list(c echo.Context) error {
	cats, err := h.source.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}
	if cats == nil {
		cats = []*models.Category{}
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"categories": cats,
		"total":      len(cats),
	}))
}

func (h *handler) path(c echo.Context) error {
	id := c.Param("id")

	path, err := h.paths.CategoryPath(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"id":   id,
		"path": path,
	}))
}
