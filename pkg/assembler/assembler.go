package assembler

import (
	"fmt"

	"github.com/nothingbut/bookshelf/pkg/models"
)

// MissingMetadataError is returned when Assemble is called without one of
// its required inputs. It signals an integration bug, not bad data.
type MissingMetadataError struct {
	BookID string
	Field  string
}

func (e *MissingMetadataError) Error() string {
	if e.BookID == "" {
		return fmt.Sprintf("assemble book: missing %s", e.Field)
	}
	return fmt.Sprintf("assemble book %q: missing %s", e.BookID, e.Field)
}

// Assemble composes a BookDocument from already-resolved parts. The metadata
// and the category path are required; the brief may be empty. The document
// gets its own copies of the metadata, the path, the volumes and their
// chapters.
func Assemble(meta *models.BookMetadata, path []string, vols []*models.Volume, brief string) (*models.BookDocument, error) {
	if meta == nil {
		return nil, &MissingMetadataError{Field: "metadata"}
	}
	if meta.ID == "" {
		return nil, &MissingMetadataError{Field: "book id"}
	}
	if path == nil {
		return nil, &MissingMetadataError{BookID: meta.ID, Field: "category path"}
	}

	doc := &models.BookDocument{
		Metadata:     *meta,
		CategoryPath: append([]string{}, path...),
		Volumes:      copyVolumes(vols),
	}
	doc.Metadata.Brief = brief

	return doc, nil
}

func copyVolumes(vols []*models.Volume) []*models.Volume {
	out := make([]*models.Volume, 0, len(vols))
	for _, v := range vols {
		if v == nil {
			continue
		}
		cp := &models.Volume{Title: v.Title}
		if v.Chapters != nil {
			cp.Chapters = make([]*models.Chapter, 0, len(v.Chapters))
			for _, ch := range v.Chapters {
				if ch == nil {
					continue
				}
				c := *ch
				cp.Chapters = append(cp.Chapters, &c)
			}
		}
		out = append(out, cp)
	}
	return out
}
