package books

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nothingbut/bookshelf/pkg/htmlutil"
	"github.com/nothingbut/bookshelf/pkg/library"
	"github.com/nothingbut/bookshelf/pkg/models"
	"github.com/nothingbut/bookshelf/pkg/pipeline"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"github.com/robinjoseph08/golib/pointerutil"
)

type handler struct {
	libraryService *library.Service
	pipeline       *pipeline.Pipeline
}

func (h *handler) list(c echo.Context) error {
	ctx := c.Request().Context()

	params := ListBooksQuery{}
	if err := c.Bind(&params); err != nil {
		return errors.WithStack(err)
	}

	books, total, err := h.libraryService.ListBooksWithTotal(ctx, library.ListBooksOptions{
		Limit:      &params.Limit,
		Offset:     &params.Offset,
		CategoryID: params.CategoryID,
	})
	if err != nil {
		return errors.WithStack(err)
	}
	if books == nil {
		books = []*models.BookMetadata{}
	}

	return errors.WithStack(c.JSON(http.StatusOK, map[string]any{
		"books": books,
		"total": total,
	}))
}

func (h *handler) retrieve(c echo.Context) error {
	ctx := c.Request().Context()

	book, err := h.libraryService.RetrieveBook(ctx, library.RetrieveBookOptions{ID: pointerutil.String(c.Param("id"))})
	if err != nil {
		return errors.WithStack(err)
	}

	brief, err := h.libraryService.FetchBrief(ctx, book.ID)
	if err != nil {
		return errors.WithStack(err)
	}
	book.Brief = htmlutil.CleanBrief(brief)

	return errors.WithStack(c.JSON(http.StatusOK, book))
}

// document assembles the book on demand.
func (h *handler) document(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx)

	book, err := h.libraryService.RetrieveBook(ctx, library.RetrieveBookOptions{ID: pointerutil.String(c.Param("id"))})
	if err != nil {
		return errors.WithStack(err)
	}

	doc, err := h.pipeline.Assemble(ctx, book)
	if err != nil {
		log.Err(err).Warn("assemble failed", logger.Data{"book_id": book.ID})
		return errors.WithStack(err)
	}

	return errors.WithStack(c.JSON(http.StatusOK, doc))
}
