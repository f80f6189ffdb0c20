package export

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/nothingbut/bookshelf/pkg/models"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	publisher    = "nothingbut"
	briefHeading = "简介"
)

type pandocHeader struct {
	Title       string   `yaml:"title"`
	Author      string   `yaml:"author,omitempty"`
	Subject     []string `yaml:"subject,omitempty"`
	Publisher   string   `yaml:"publisher"`
	Description string   `yaml:"description,omitempty"`
}

// RenderMarkdown writes doc as Pandoc markdown: a YAML metadata block, the
// brief under its own top-level heading, then volumes as "#" and chapters as
// "##" headings. A book with a single volume drops the volume level and its
// chapters become top-level headings.
func RenderMarkdown(w io.Writer, doc *models.BookDocument) error {
	header, err := yaml.Marshal(pandocHeader{
		Title:       doc.Metadata.Title,
		Author:      doc.Metadata.Author,
		Subject:     doc.CategoryPath,
		Publisher:   publisher,
		Description: doc.Metadata.Brief,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")

	if doc.Metadata.Brief != "" {
		b.WriteString("# " + briefHeading + "\n\n")
		writeParagraphs(&b, doc.Metadata.Brief)
	}

	chapterLevel := "## "
	if doc.SingleVolume() {
		chapterLevel = "# "
	}

	for _, v := range doc.Volumes {
		if !doc.SingleVolume() {
			b.WriteString("# " + v.Title + "\n\n")
		}
		for _, ch := range v.Chapters {
			b.WriteString(chapterLevel + ch.Title + "\n\n")
			writeParagraphs(&b, ch.Body)
		}
	}

	_, err = w.Write(b.Bytes())
	return errors.WithStack(err)
}

// writeParagraphs writes every non-blank line of text as its own paragraph.
func writeParagraphs(b *bytes.Buffer, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString(line + "\n\n")
	}
}

// MarkdownSink writes each document as a Pandoc markdown file into Dir.
type MarkdownSink struct {
	Dir string
}

func (s *MarkdownSink) Write(_ context.Context, doc *models.BookDocument) error {
	var b bytes.Buffer
	if err := RenderMarkdown(&b, doc); err != nil {
		return err
	}
	return writeFile(filepath.Join(s.Dir, FileName(&doc.Metadata, "md")), b.Bytes())
}
