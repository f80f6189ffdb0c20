package categories

import (
	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, source Source, paths PathSource) {
	h := &handler{source: source, paths: paths}

	g := e.Group("/categories")
	g.GET("", h.list)
	g.GET("/:id/path", h.path)
}
