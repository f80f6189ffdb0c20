package models

// BookDocument is the fully assembled representation of one book. It is
// built once and not modified afterwards.
type BookDocument struct {
	Metadata     BookMetadata `json:"metadata"`
	CategoryPath []string     `json:"category_path"`
	Volumes      []*Volume    `json:"volumes"`
}

// ChapterCount returns the number of chapters across all volumes.
func (d *BookDocument) ChapterCount() int {
	n := 0
	for _, v := range d.Volumes {
		n += len(v.Chapters)
	}
	return n
}

// SingleVolume reports whether the volume level carries no information,
// i.e. the whole book sits in one volume.
func (d *BookDocument) SingleVolume() bool {
	return len(d.Volumes) == 1
}
