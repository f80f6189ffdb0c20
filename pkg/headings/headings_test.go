package headings

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lines(hs []Heading) []string {
	out := make([]string, 0, len(hs))
	for _, h := range hs {
		out = append(out, h.Line)
	}
	return out
}

func TestDetect_SingleHeadingWithBody(t *testing.T) {
	t.Parallel()

	prefix := "前言文字\n"
	text := prefix + "第三章 风起\n" + strings.Repeat("风", 200) + "\n"

	hs, err := NewDetector(Options{}).Detect(text)
	require.NoError(t, err)
	require.Len(t, hs, 1)

	assert.Equal(t, "第三章 风起", hs[0].Line)
	assert.Equal(t, len(prefix), hs[0].Offset)
	assert.Equal(t, "第三章 风起", text[hs[0].Offset:hs[0].Offset+len(hs[0].Line)])
	assert.Equal(t, "三", hs[0].Ordinal)
	assert.Equal(t, "章", hs[0].Unit)
	assert.Equal(t, KindChapter, hs[0].Kind)
}

func TestDetect_NoHeadings(t *testing.T) {
	t.Parallel()

	hs, err := NewDetector(Options{}).Detect("只是一段正文。\n没有任何标题。\n")
	require.NoError(t, err)
	assert.NotNil(t, hs)
	assert.Empty(t, hs)

	hs, err = NewDetector(Options{}).Detect("")
	require.NoError(t, err)
	assert.Empty(t, hs)
}

func TestDetect_Grammar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "chinese numerals",
			text:     "第一百二十三章 归来\n",
			expected: []string{"第一百二十三章 归来"},
		},
		{
			name:     "arabic and fullwidth digits",
			text:     "第12章 A\n第１３章 B\n",
			expected: []string{"第12章 A", "第１３章 B"},
		},
		{
			name:     "optional marker",
			text:     "正文 第一章 开端\n",
			expected: []string{"正文 第一章 开端"},
		},
		{
			name:     "every unit",
			text:     "第一卷\n第一集\n第一部\n第一篇\n第一章\n第一节\n第一回\n",
			expected: []string{"第一卷", "第一集", "第一部", "第一篇", "第一章", "第一节", "第一回"},
		},
		{
			name:     "indented heading",
			text:     "　　第二章 雨夜\n",
			expected: []string{"第二章 雨夜"},
		},
		{
			name:     "crlf line endings",
			text:     "第一章 甲\r\n内容\r\n第二章 乙\r\n",
			expected: []string{"第一章 甲", "第二章 乙"},
		},
		{
			name:     "heading at end of text",
			text:     "内容\n第九章 终",
			expected: []string{"第九章 终"},
		},
		{
			name:     "four spaces after unit is body text",
			text:     "第一章    他说了很多话。\n",
			expected: []string{},
		},
		{
			name:     "three spaces after unit is a heading",
			text:     "第一章   开始\n",
			expected: []string{"第一章   开始"},
		},
		{
			name:     "financial numerals",
			text:     "第壹章 风起\n第贰拾叁章 云涌\n",
			expected: []string{"第壹章 风起", "第贰拾叁章 云涌"},
		},
		{
			name:     "twenty and thirty shorthand",
			text:     "第廿三章 风起\n第卅章 归来\n第卌一回 终\n",
			expected: []string{"第廿三章 风起", "第卅章 归来", "第卌一回 终"},
		},
		{
			name:     "four ideographic spaces after unit is body text",
			text:     "第一章　　　　他说了很多话。\n",
			expected: []string{},
		},
		{
			name:     "mixed spaces after unit is body text",
			text:     "第一章 　 　他说了很多话。\n",
			expected: []string{},
		},
		{
			name:     "one ideographic space after unit is a heading",
			text:     "第一章　开始\n",
			expected: []string{"第一章　开始"},
		},
		{
			name:     "ordinal longer than seven characters",
			text:     "第一二三四五六七八章\n",
			expected: []string{},
		},
		{
			name:     "tail longer than fifty characters",
			text:     "第一章 " + strings.Repeat("长", 50) + "\n",
			expected: []string{},
		},
		{
			name:     "not at line start",
			text:     "他说第一章很好看\n",
			expected: []string{},
		},
		{
			name:     "unit must follow ordinal",
			text:     "第一次见面\n第二天\n",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hs, err := NewDetector(Options{}).Detect(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, lines(hs))
		})
	}
}

func TestDetect_VolumeKind(t *testing.T) {
	t.Parallel()

	hs, err := NewDetector(Options{}).Detect("第一卷 少年\n第一章 出发\n第二部 远行\n")
	require.NoError(t, err)
	require.Len(t, hs, 3)
	assert.Equal(t, KindVolume, hs[0].Kind)
	assert.Equal(t, KindChapter, hs[1].Kind)
	assert.Equal(t, KindVolume, hs[2].Kind)
}

func TestDetect_Prologues(t *testing.T) {
	t.Parallel()

	text := "楔子\n很久以前。\n序言：写在前面\n第一章 开始\n后记\n"

	hs, err := NewDetector(Options{IncludePrologues: true}).Detect(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"楔子", "序言：写在前面", "第一章 开始", "后记"}, lines(hs))

	hs, err = NewDetector(Options{}).Detect(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"第一章 开始"}, lines(hs))
}

func TestDetect_PrologueWordInsideSentence(t *testing.T) {
	t.Parallel()

	hs, err := NewDetector(Options{IncludePrologues: true}).Detect("序幕拉开了。\n后记得这件事。\n")
	require.NoError(t, err)
	assert.Empty(t, hs)
}

func TestDetect_StopsAtEndMarker(t *testing.T) {
	t.Parallel()

	text := "第一章 甲\n内容\n（全书完）\n第二章 番外\n"

	hs, err := NewDetector(Options{}).Detect(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"第一章 甲"}, lines(hs))
}

func TestDetect_Ceiling(t *testing.T) {
	t.Parallel()

	text := "第一章\n第二章\n第三章\n"

	_, err := NewDetector(Options{MaxMatches: 2}).Detect(text)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyHeadings))

	hs, err := NewDetector(Options{MaxMatches: 3}).Detect(text)
	require.NoError(t, err)
	assert.Len(t, hs, 3)
}

func TestDetect_Idempotent(t *testing.T) {
	t.Parallel()

	text := "楔子\n往事\n第一卷 起\n第一章 甲\n正文\n第二章 乙\n　　第三章    不是标题\n第三章 丙\n"
	d := NewDetector(Options{IncludePrologues: true})

	first, err := d.Detect(text)
	require.NoError(t, err)
	second, err := d.Detect(text)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].Offset, first[i].Offset)
	}
}

func TestAll_IsLazyAndRestartable(t *testing.T) {
	t.Parallel()

	d := NewDetector(Options{})
	seq := d.All("第一章\n第二章\n第三章\n")

	var firstOnly []string
	for h := range seq {
		firstOnly = append(firstOnly, h.Line)
		break
	}
	assert.Equal(t, []string{"第一章"}, firstOnly)

	var all []string
	for h := range seq {
		all = append(all, h.Line)
	}
	assert.Equal(t, []string{"第一章", "第二章", "第三章"}, all)
}
