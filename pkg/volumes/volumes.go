package volumes

import (
	"strings"

	"github.com/nothingbut/bookshelf/pkg/models"
)

// Grouper partitions a chapter stream into volumes as chapters arrive. A new
// volume starts whenever the trimmed volume label differs from the label of
// the volume currently open. Labels that come back after a different label
// start a new volume rather than reopening the old one.
type Grouper struct {
	volumes []*models.Volume
	current *models.Volume
	count   int
}

func NewGrouper() *Grouper {
	return &Grouper{volumes: []*models.Volume{}}
}

// Add appends one chapter to the open volume, opening a new one first if the
// chapter's label differs.
func (g *Grouper) Add(raw models.RawChapter) {
	label := strings.TrimSpace(raw.Volume)
	// The first chapter always opens a volume, even with an empty label.
	if g.current == nil || g.current.Title != label {
		g.current = &models.Volume{Title: label, Chapters: []*models.Chapter{}}
		g.volumes = append(g.volumes, g.current)
	}

	g.current.Chapters = append(g.current.Chapters, &models.Chapter{
		Title: strings.TrimSpace(raw.Title),
		Body:  raw.Body,
		Index: g.count,
	})
	g.count++
}

// Volumes returns the volumes grouped so far, in order.
func (g *Grouper) Volumes() []*models.Volume {
	return g.volumes
}

// Group partitions chapters into volumes in a single pass. The chapters must
// already be in source order.
func Group(chapters []models.RawChapter) []*models.Volume {
	g := NewGrouper()
	for _, ch := range chapters {
		g.Add(ch)
	}
	return g.Volumes()
}
