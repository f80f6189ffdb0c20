// Package testgen generates legacy text books for tests.
package testgen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nothingbut/bookshelf/pkg/textenc"
)

// VolumeOptions describes one volume of a generated book. An empty Title
// produces chapters with no volume heading in front of them.
type VolumeOptions struct {
	Title    string
	Chapters int
}

// TextOptions configures the generated text.
type TextOptions struct {
	Title    string
	Author   string
	Prologue bool
	Volumes  []VolumeOptions
	// Encoding defaults to gbk.
	Encoding string
	// EndMarker appends （全书完） and a trailing afterword.
	EndMarker bool
}

// Text renders the book as UTF-8. Chapters are numbered across the whole
// book with Chinese numerals.
func Text(opts TextOptions) string {
	var b strings.Builder

	if opts.Title != "" {
		fmt.Fprintf(&b, "%s\n", opts.Title)
	}
	if opts.Author != "" {
		fmt.Fprintf(&b, "作者：%s\n\n", opts.Author)
	}
	if opts.Prologue {
		b.WriteString("楔子\n　　很久以前的事。\n\n")
	}

	n := 0
	for vi, v := range opts.Volumes {
		if v.Title != "" {
			fmt.Fprintf(&b, "第%s卷 %s\n", Numeral(vi+1), v.Title)
		}
		for i := 0; i < v.Chapters; i++ {
			n++
			fmt.Fprintf(&b, "第%s章 第%d节\n　　这是第%d章的正文。\n\n", Numeral(n), n, n)
		}
	}

	if opts.EndMarker {
		b.WriteString("（全书完）\n后记与感言\n")
	}
	return b.String()
}

// ChapterTitles returns the chapter heading lines Text produces, in order.
func ChapterTitles(opts TextOptions) []string {
	var titles []string
	n := 0
	for _, v := range opts.Volumes {
		for i := 0; i < v.Chapters; i++ {
			n++
			titles = append(titles, fmt.Sprintf("第%s章 第%d节", Numeral(n), n))
		}
	}
	return titles
}

// Encoded renders the book in opts.Encoding.
func Encoded(t *testing.T, opts TextOptions) []byte {
	t.Helper()
	enc := opts.Encoding
	if enc == "" {
		enc = "gbk"
	}
	b, err := textenc.Encode(Text(opts), enc)
	if err != nil {
		t.Fatalf("failed to encode text as %s: %v", enc, err)
	}
	return b
}

// GenerateText writes the encoded book to dir and returns its path.
func GenerateText(t *testing.T, dir, filename string, opts TextOptions) string {
	t.Helper()
	return WriteFile(t, dir, filename, Encoded(t, opts))
}

var digits = []string{"零", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

// Numeral writes n (1-999) in Chinese numerals the way chapter headings do.
func Numeral(n int) string {
	if n < 10 {
		return digits[n]
	}
	var b strings.Builder
	hundreds, tens, ones := n/100, n/10%10, n%10
	if hundreds > 0 {
		b.WriteString(digits[hundreds] + "百")
		if tens == 0 && ones > 0 {
			b.WriteString("零")
		}
	}
	if tens > 0 {
		if tens > 1 || hundreds > 0 {
			b.WriteString(digits[tens])
		}
		b.WriteString("十")
	}
	if ones > 0 {
		b.WriteString(digits[ones])
	}
	return b.String()
}

// TempDir creates a temporary directory for testing and registers cleanup.
func TempDir(t *testing.T, pattern string) string {
	t.Helper()
	dir, err := os.MkdirTemp("", pattern)
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// WriteFile creates a file with the given content in the specified directory.
// Returns the full path to the created file.
func WriteFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0600); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads and returns the contents of a file.
func ReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return data
}
