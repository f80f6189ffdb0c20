package export

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nothingbut/bookshelf/pkg/models"
	"github.com/pkg/errors"
)

var (
	unsafeChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	spaceRuns   = regexp.MustCompile(`\s+`)
)

const maxNameBytes = 200

// sanitize makes s safe to use as one path element.
func sanitize(s string) string {
	s = unsafeChars.ReplaceAllString(s, "_")
	s = spaceRuns.ReplaceAllString(s, " ")
	s = strings.Trim(s, " .")

	if len(s) > maxNameBytes {
		cut := maxNameBytes
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = strings.Trim(s[:cut], " .")
	}
	return s
}

// FileName returns "<id>.<title>-<author>.<ext>" with every part made safe
// for the filesystem. The author part is left out when it is empty.
func FileName(meta *models.BookMetadata, ext string) string {
	name := sanitize(meta.Title)
	if author := sanitize(meta.Author); author != "" {
		name += "-" + author
	}
	return fmt.Sprintf("%s.%s.%s", sanitize(meta.ID), name, strings.TrimPrefix(ext, "."))
}

// writeFile writes data next to its final path and renames it into place, so
// readers never see a half-written document.
func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WithStack(err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return errors.WithStack(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.WithStack(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(os.Rename(tmp.Name(), path))
}
