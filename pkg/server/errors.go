package server

import (
	"github.com/nothingbut/bookshelf/pkg/assembler"
	"github.com/nothingbut/bookshelf/pkg/categories"
	"github.com/nothingbut/bookshelf/pkg/errcodes"
	"github.com/nothingbut/bookshelf/pkg/headings"
	"github.com/nothingbut/bookshelf/pkg/textenc"
	"github.com/pkg/errors"
)

// translateDomainError maps assembly failures onto API errors.
func translateDomainError(err error) error {
	var notFound *categories.NotFoundError
	if errors.As(err, &notFound) {
		return errcodes.NotFound("Category " + notFound.ID)
	}

	var cycle *categories.CycleError
	if errors.As(err, &cycle) {
		return errcodes.Unprocessable("category_cycle", cycle.Error())
	}

	var decode *textenc.DecodeError
	if errors.As(err, &decode) {
		return errcodes.Unprocessable("invalid_text_encoding", decode.Error())
	}

	if errors.Is(err, headings.ErrTooManyHeadings) {
		return errcodes.Unprocessable("too_many_headings", "Book text has too many chapter headings.")
	}

	var missing *assembler.MissingMetadataError
	if errors.As(err, &missing) {
		return errcodes.Unprocessable("missing_metadata", missing.Error())
	}

	return nil
}
