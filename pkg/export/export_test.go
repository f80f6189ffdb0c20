package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/nothingbut/bookshelf/pkg/models"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func document(vols ...*models.Volume) *models.BookDocument {
	return &models.BookDocument{
		Metadata: models.BookMetadata{
			ID:     "42",
			Title:  "雾都: 侦探/笔记",
			Author: "某人",
			Brief:  "第一段简介\n第二段简介",
		},
		CategoryPath: []string{"网络小说", "悬疑"},
		Volumes:      vols,
	}
}

func TestFileName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		meta     models.BookMetadata
		expected string
	}{
		{"plain", models.BookMetadata{ID: "1", Title: "书", Author: "人"}, "1.书-人.md"},
		{"unsafe characters", models.BookMetadata{ID: "2", Title: `a/b\c:d*e?f"g<h>i|j`, Author: "x"}, "2.a_b_c_d_e_f_g_h_i_j-x.md"},
		{"no author", models.BookMetadata{ID: "3", Title: "孤本"}, "3.孤本.md"},
		{"whitespace collapsed", models.BookMetadata{ID: "4", Title: "  a \t b  ", Author: "c"}, "4.a b-c.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, FileName(&tt.meta, ".md"))
		})
	}
}

func TestSanitize_LongNameKeepsRunesWhole(t *testing.T) {
	t.Parallel()

	s := sanitize(strings.Repeat("长", 100))
	assert.LessOrEqual(t, len(s), maxNameBytes)
	assert.True(t, utf8.ValidString(s))
}

func TestRenderMarkdown_Volumes(t *testing.T) {
	t.Parallel()

	doc := document(
		&models.Volume{Title: "第一卷", Chapters: []*models.Chapter{{Title: "第一章", Body: "　　甲\n\n　　乙"}}},
		&models.Volume{Title: "第二卷", Chapters: []*models.Chapter{{Title: "第二章", Body: "丙"}}},
	)

	var b bytes.Buffer
	require.NoError(t, RenderMarkdown(&b, doc))
	out := b.String()

	require.True(t, strings.HasPrefix(out, "---\n"))
	parts := strings.SplitN(out, "---\n", 3)
	require.Len(t, parts, 3)

	var header map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(parts[1]), &header))
	assert.Equal(t, "雾都: 侦探/笔记", header["title"])
	assert.Equal(t, "某人", header["author"])
	assert.Equal(t, "nothingbut", header["publisher"])
	assert.Equal(t, []interface{}{"网络小说", "悬疑"}, header["subject"])

	body := parts[2]
	assert.Contains(t, body, "# 简介\n\n第一段简介\n\n第二段简介\n\n")
	assert.Contains(t, body, "# 第一卷\n\n## 第一章\n\n甲\n\n乙\n\n")
	assert.Contains(t, body, "# 第二卷\n\n## 第二章\n\n丙\n\n")
	assert.Less(t, strings.Index(body, "第一卷"), strings.Index(body, "第二卷"))
}

func TestRenderMarkdown_SingleVolumeDropsLevel(t *testing.T) {
	t.Parallel()

	doc := document(&models.Volume{Title: "正文", Chapters: []*models.Chapter{
		{Title: "第一章", Body: "甲"},
		{Title: "第二章", Body: "乙"},
	}})
	doc.Metadata.Brief = ""

	var b bytes.Buffer
	require.NoError(t, RenderMarkdown(&b, doc))
	out := b.String()

	assert.NotContains(t, out, "正文")
	assert.NotContains(t, out, "简介")
	assert.NotContains(t, out, "## ")
	assert.Contains(t, out, "# 第一章\n\n甲\n\n# 第二章\n\n乙\n\n")
}

func TestSinks_WriteFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := document(&models.Volume{Title: "V", Chapters: []*models.Chapter{{Title: "C", Body: "B"}}})

	sink, err := ForFormats(dir, []string{"json", "markdown"})
	require.NoError(t, err)
	require.NoError(t, sink.Write(context.Background(), doc))

	data, err := os.ReadFile(filepath.Join(dir, "42.雾都_ 侦探_笔记-某人.json"))
	require.NoError(t, err)

	var decoded models.BookDocument
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, doc.CategoryPath, decoded.CategoryPath)
	assert.Equal(t, "C", decoded.Volumes[0].Chapters[0].Title)

	_, err = os.Stat(filepath.Join(dir, "42.雾都_ 侦探_笔记-某人.md"))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestForFormats_Unknown(t *testing.T) {
	t.Parallel()

	_, err := ForFormats(t.TempDir(), []string{"epub"})
	var unknown *UnknownFormatError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "epub", unknown.Format)
}
