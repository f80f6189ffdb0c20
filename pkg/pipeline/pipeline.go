package pipeline

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/nothingbut/bookshelf/pkg/assembler"
	"github.com/nothingbut/bookshelf/pkg/categories"
	"github.com/nothingbut/bookshelf/pkg/config"
	"github.com/nothingbut/bookshelf/pkg/headings"
	"github.com/nothingbut/bookshelf/pkg/htmlutil"
	"github.com/nothingbut/bookshelf/pkg/library"
	"github.com/nothingbut/bookshelf/pkg/models"
	"github.com/nothingbut/bookshelf/pkg/textenc"
	"github.com/nothingbut/bookshelf/pkg/volumes"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
	"golang.org/x/sync/errgroup"
)

// Reader supplies the legacy export to the pipeline. Errors are passed
// through as-is.
type Reader interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
	ListBooks(ctx context.Context, opts library.ListBooksOptions) ([]*models.BookMetadata, error)
	FetchChapters(ctx context.Context, bookID string) ([]models.RawChapter, error)
	FetchBrief(ctx context.Context, bookID string) (string, error)
}

// TextSource is implemented by readers that can also hand out the raw text
// of books that have no chapter rows. FetchText returns nil bytes when the
// book has no stored text.
type TextSource interface {
	FetchText(ctx context.Context, bookID string) ([]byte, error)
}

// Sink receives every successfully assembled document.
type Sink interface {
	Write(ctx context.Context, doc *models.BookDocument) error
}

type Options struct {
	SourceEncoding    string
	DetectEncoding    bool
	HeadingMaxMatches int
	IncludePrologues  bool
	CategoryMaxHops   int
	Concurrency       int
	Books             library.ListBooksOptions
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		SourceEncoding:    cfg.SourceEncoding,
		DetectEncoding:    cfg.DetectEncoding,
		HeadingMaxMatches: cfg.HeadingMaxMatches,
		IncludePrologues:  cfg.IncludePrologues,
		CategoryMaxHops:   cfg.CategoryMaxHops,
		Concurrency:       cfg.WorkerProcesses,
	}
}

// Result is the outcome for one book. Exactly one of Document and Err is set.
type Result struct {
	BookID   string
	Title    string
	Document *models.BookDocument
	Err      error
}

type Report struct {
	RunID   string
	Results []*Result
}

func (r *Report) Succeeded() []*Result {
	var out []*Result
	for _, res := range r.Results {
		if res.Err == nil {
			out = append(out, res)
		}
	}
	return out
}

func (r *Report) Failed() []*Result {
	var out []*Result
	for _, res := range r.Results {
		if res.Err != nil {
			out = append(out, res)
		}
	}
	return out
}

type Pipeline struct {
	reader   Reader
	opts     Options
	detector *headings.Detector
	resolver *categories.Resolver

	loadMu sync.Mutex
	loaded bool
}

func New(reader Reader, opts Options) (*Pipeline, error) {
	if _, _, err := textenc.Lookup(opts.SourceEncoding); err != nil {
		return nil, errors.Wrapf(err, "source encoding %q", opts.SourceEncoding)
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.CategoryMaxHops < 1 {
		opts.CategoryMaxHops = categories.DefaultMaxHops
	}

	return &Pipeline{
		reader: reader,
		opts:   opts,
		detector: headings.NewDetector(headings.Options{
			MaxMatches:       opts.HeadingMaxMatches,
			IncludePrologues: opts.IncludePrologues,
		}),
		resolver: categories.NewResolver(categories.NewTable(nil), opts.CategoryMaxHops),
	}, nil
}

// Refresh reloads the category table from the reader and drops every
// memoized path.
func (p *Pipeline) Refresh(ctx context.Context) error {
	p.loadMu.Lock()
	defer p.loadMu.Unlock()

	cats, err := p.reader.ListCategories(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	p.resolver.Reset(categories.NewTable(cats))
	p.loaded = true

	logger.FromContext(ctx).Debug("categories loaded", logger.Data{"count": len(cats)})
	return nil
}

func (p *Pipeline) ensureLoaded(ctx context.Context) error {
	p.loadMu.Lock()
	loaded := p.loaded
	p.loadMu.Unlock()
	if loaded {
		return nil
	}
	return p.Refresh(ctx)
}

// CategoryPath resolves a category to its root-first display names.
func (p *Pipeline) CategoryPath(ctx context.Context, categoryID string) ([]string, error) {
	if err := p.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return p.resolver.Resolve(categoryID)
}

// Run assembles every selected book and hands each document to sink. A
// failing book is recorded on its Result and does not stop the others; the
// returned error is only set when the run as a whole could not proceed.
func (p *Pipeline) Run(ctx context.Context, sink Sink) (*Report, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	log := logger.FromContext(ctx).ID(id.String()).Root(logger.Data{"encoding": p.opts.SourceEncoding})
	ctx = log.WithContext(ctx)

	if err := p.Refresh(ctx); err != nil {
		return nil, err
	}

	books, err := p.reader.ListBooks(ctx, p.opts.Books)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	log.Info("assembling books", logger.Data{"books": len(books), "concurrency": p.opts.Concurrency})

	report := &Report{RunID: id.String(), Results: make([]*Result, len(books))}

	g := &errgroup.Group{}
	g.SetLimit(p.opts.Concurrency)

	for i, book := range books {
		report.Results[i] = &Result{BookID: book.ID, Title: book.Title}
		res := report.Results[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				res.Err = err
				return nil
			}

			blog := log.Root(logger.Data{"book_id": book.ID})
			doc, err := p.Assemble(blog.WithContext(ctx), book)
			if err == nil && sink != nil {
				err = errors.Wrap(sink.Write(ctx, doc), "write document")
			}
			if err != nil {
				res.Err = err
				blog.Err(err).Warn("book failed")
				return nil
			}

			res.Document = doc
			blog.Debug("book assembled", logger.Data{"volumes": len(doc.Volumes), "chapters": doc.ChapterCount()})
			return nil
		})
	}
	_ = g.Wait()

	log.Info("assembly finished", logger.Data{
		"succeeded": len(report.Succeeded()),
		"failed":    len(report.Failed()),
	})

	return report, ctx.Err()
}

// Assemble builds the document for a single book. The category path, the
// volumes and the brief are fetched concurrently; the first failure cancels
// the other two.
func (p *Pipeline) Assemble(ctx context.Context, book *models.BookMetadata) (*models.BookDocument, error) {
	if book == nil {
		return assembler.Assemble(nil, nil, nil, "")
	}
	if err := p.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	var (
		path  []string
		vols  []*models.Volume
		brief string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		path, err = p.resolver.Resolve(book.CategoryID)
		return err
	})
	g.Go(func() error {
		var err error
		vols, err = p.volumes(gctx, book.ID)
		return err
	})
	g.Go(func() error {
		b, err := p.reader.FetchBrief(gctx, book.ID)
		if err != nil {
			return errors.WithStack(err)
		}
		brief = htmlutil.CleanBrief(b)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return assembler.Assemble(book, path, vols, brief)
}

func (p *Pipeline) volumes(ctx context.Context, bookID string) ([]*models.Volume, error) {
	chapters, err := p.reader.FetchChapters(ctx, bookID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if len(chapters) == 0 {
		if ts, ok := p.reader.(TextSource); ok {
			raw, err := ts.FetchText(ctx, bookID)
			if err != nil {
				return nil, errors.WithStack(err)
			}
			if raw != nil {
				chapters, err = p.Segment(bookID, raw)
				if err != nil {
					return nil, err
				}
			}
		}
	}

	return volumes.Group(chapters), nil
}

// Segment decodes raw legacy text and splits it into chapter records.
func (p *Pipeline) Segment(bookID string, raw []byte) ([]models.RawChapter, error) {
	name := p.opts.SourceEncoding
	if p.opts.DetectEncoding {
		name = textenc.Sniff(raw, name)
	}

	text, err := textenc.Decode(raw, name)
	if err != nil {
		return nil, errors.Wrapf(err, "decode text of book %s", bookID)
	}

	chapters, err := p.detector.Segment(bookID, text)
	if err != nil {
		return nil, errors.Wrapf(err, "segment text of book %s", bookID)
	}
	return chapters, nil
}
