package export

import (
	"context"
	"path/filepath"

	"github.com/nothingbut/bookshelf/pkg/models"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// JSONSink writes each document as an indented JSON file into Dir.
type JSONSink struct {
	Dir string
}

func (s *JSONSink) Write(_ context.Context, doc *models.BookDocument) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}
	return writeFile(filepath.Join(s.Dir, FileName(&doc.Metadata, "json")), data)
}
