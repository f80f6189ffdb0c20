package library

import (
	"context"
	"database/sql"

	"github.com/nothingbut/bookshelf/pkg/errcodes"
	"github.com/nothingbut/bookshelf/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type RetrieveBookOptions struct {
	ID *string
}

type ListBooksOptions struct {
	Limit      *int
	Offset     *int
	CategoryID *string
	IDs        []string

	includeTotal bool
}

// ImportBookOptions describes one book to seed into the export database.
// Either Chapters or Text is normally set, not both.
type ImportBookOptions struct {
	Chapters []models.RawChapter
	Brief    string
	Text     []byte
}

// Service reads (and, for seeding, writes) the legacy export database.
type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

func (svc *Service) ListCategories(ctx context.Context) ([]*models.Category, error) {
	var cats []*models.Category
	err := svc.db.
		NewSelect().
		Model(&cats).
		Order("c.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return cats, nil
}

func (svc *Service) CreateCategories(ctx context.Context, cats []*models.Category) error {
	if len(cats) == 0 {
		return nil
	}
	_, err := svc.db.
		NewInsert().
		Model(&cats).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("parent_id = EXCLUDED.parent_id").
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) RetrieveBook(ctx context.Context, opts RetrieveBookOptions) (*models.BookMetadata, error) {
	book := &models.BookMetadata{}

	q := svc.db.
		NewSelect().
		Model(book)

	if opts.ID != nil {
		q = q.Where("b.id = ?", *opts.ID)
	}

	err := q.Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	return book, nil
}

func (svc *Service) ListBooks(ctx context.Context, opts ListBooksOptions) ([]*models.BookMetadata, error) {
	b, _, err := svc.listBooksWithTotal(ctx, opts)
	return b, errors.WithStack(err)
}

func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.BookMetadata, int, error) {
	opts.includeTotal = true
	return svc.listBooksWithTotal(ctx, opts)
}

func (svc *Service) listBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.BookMetadata, int, error) {
	var books []*models.BookMetadata
	var total int
	var err error

	q := svc.db.
		NewSelect().
		Model(&books).
		Order("b.id ASC")

	if opts.CategoryID != nil {
		q = q.Where("b.category_id = ?", *opts.CategoryID)
	}
	if len(opts.IDs) > 0 {
		q = q.Where("b.id IN (?)", bun.In(opts.IDs))
	}
	if opts.Limit != nil {
		q = q.Limit(*opts.Limit)
	}
	if opts.Offset != nil {
		q = q.Offset(*opts.Offset)
	}

	if opts.includeTotal {
		total, err = q.ScanAndCount(ctx)
	} else {
		err = q.Scan(ctx)
	}
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return books, total, nil
}

// FetchChapters returns the book's chapter rows in position order. A book
// without rows yields an empty slice.
func (svc *Service) FetchChapters(ctx context.Context, bookID string) ([]models.RawChapter, error) {
	chapters := []models.RawChapter{}
	err := svc.db.
		NewSelect().
		Model(&chapters).
		Where("ch.book_id = ?", bookID).
		Order("ch.position ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return chapters, nil
}

// FetchBrief returns the book's brief, or "" when it has none.
func (svc *Service) FetchBrief(ctx context.Context, bookID string) (string, error) {
	brief := &models.Brief{}
	err := svc.db.
		NewSelect().
		Model(brief).
		Where("br.book_id = ?", bookID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", errors.WithStack(err)
	}
	return brief.Text, nil
}

// FetchText returns the raw stored text of a book, or nil when there is none.
func (svc *Service) FetchText(ctx context.Context, bookID string) ([]byte, error) {
	text := &models.BookText{}
	err := svc.db.
		NewSelect().
		Model(text).
		Where("bt.book_id = ?", bookID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}
	return text.Content, nil
}

// ImportBook writes a book with its chapters, brief and raw text, replacing
// whatever was stored for the same ID.
func (svc *Service) ImportBook(ctx context.Context, book *models.BookMetadata, opts ImportBookOptions) error {
	if book.ID == "" {
		return errcodes.ValidationError("Book ID is required.")
	}

	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(book).
			On("CONFLICT (id) DO UPDATE").
			Set("title = EXCLUDED.title").
			Set("author = EXCLUDED.author").
			Set("category_id = EXCLUDED.category_id").
			Exec(ctx)
		if err != nil {
			return errors.WithStack(err)
		}

		for _, m := range []interface{}{(*models.RawChapter)(nil), (*models.Brief)(nil), (*models.BookText)(nil)} {
			_, err = tx.NewDelete().
				Model(m).
				Where("book_id = ?", book.ID).
				Exec(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
		}

		if len(opts.Chapters) > 0 {
			chapters := make([]models.RawChapter, len(opts.Chapters))
			for i, ch := range opts.Chapters {
				ch.ID = 0
				ch.BookID = book.ID
				chapters[i] = ch
			}
			if _, err = tx.NewInsert().Model(&chapters).Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}

		if opts.Brief != "" {
			brief := &models.Brief{BookID: book.ID, Text: opts.Brief}
			if _, err = tx.NewInsert().Model(brief).Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}

		if opts.Text != nil {
			text := &models.BookText{BookID: book.ID, Content: opts.Text}
			if _, err = tx.NewInsert().Model(text).Exec(ctx); err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	})
}
