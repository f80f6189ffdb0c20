package headings

import (
	"strings"

	"github.com/nothingbut/bookshelf/pkg/models"
)

// Segment splits text into chapter records at the detected headings. Each
// chapter's body runs from the end of its heading line to the start of the
// next heading. Volume headings don't produce chapters of their own (unless
// they carry body text); they label the chapters that follow them. Text
// before the first heading is dropped.
func (d *Detector) Segment(bookID, text string) ([]models.RawChapter, error) {
	hs, err := d.Detect(text)
	if err != nil {
		return nil, err
	}

	limit := contentEnd(text)
	volume := models.DefaultVolume
	chapters := make([]models.RawChapter, 0, len(hs))

	for i, h := range hs {
		end := limit
		if i+1 < len(hs) {
			end = hs[i+1].Offset
		}
		body := strings.Trim(text[h.End:end], "\r\n")

		if h.Kind == KindVolume {
			volume = h.Line
			if strings.TrimSpace(body) == "" {
				continue
			}
		}

		chapters = append(chapters, models.RawChapter{
			BookID:   bookID,
			Position: len(chapters),
			Volume:   volume,
			Title:    h.Line,
			Body:     body,
		})
	}

	return chapters, nil
}
