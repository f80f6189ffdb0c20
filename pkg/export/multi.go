package export

import (
	"context"

	"github.com/nothingbut/bookshelf/pkg/models"
)

type writer interface {
	Write(ctx context.Context, doc *models.BookDocument) error
}

// Multi fans a document out to several sinks, stopping at the first error.
type Multi []writer

func (m Multi) Write(ctx context.Context, doc *models.BookDocument) error {
	for _, s := range m {
		if err := s.Write(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// ForFormats returns a sink writing every named format ("json", "markdown")
// into dir.
func ForFormats(dir string, formats []string) (Multi, error) {
	var m Multi
	for _, f := range formats {
		switch f {
		case "json":
			m = append(m, &JSONSink{Dir: dir})
		case "markdown", "md":
			m = append(m, &MarkdownSink{Dir: dir})
		default:
			return nil, &UnknownFormatError{Format: f}
		}
	}
	return m, nil
}

type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return "unknown export format " + e.Format
}
