package books

import (
	"github.com/labstack/echo/v4"
	"github.com/nothingbut/bookshelf/pkg/library"
	"github.com/nothingbut/bookshelf/pkg/pipeline"
)

func RegisterRoutes(e *echo.Echo, libraryService *library.Service, p *pipeline.Pipeline) {
	h := &handler{
		libraryService: libraryService,
		pipeline:       p,
	}

	g := e.Group("/books")
	g.GET("", h.list)
	g.GET("/:id", h.retrieve)
	g.GET("/:id/document", h.document)
}
