package headings

import (
	"iter"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// Kind tells volume headings (卷, 集, 部) apart from chapter headings.
type Kind string

const (
	KindChapter Kind = "chapter"
	KindVolume  Kind = "volume"
)

const indent = " \t　"

// headingPattern recognizes, at the start of a line and after optional
// indentation, either
//
//	[正文] 第 <ordinal> <unit> <up to 50 chars>
//
// or one of the prologue/epilogue words. The line must end in a line break
// (or the end of the text).
var headingPattern = regexp.MustCompile(
	`(?m)^[ \t\x{3000}]*` +
		`((?:正文[ \t\x{3000}]*)?` +
		`(?:第([0-9０-９零〇一二三四五六七八九十百千万两壹贰貳叁參肆伍陆陸柒捌玖拾佰仟萬兩廿卅卌ⅠⅡⅢⅣⅤⅥⅦⅧⅨⅩⅪⅫA-Za-z]{1,7})([卷集部篇章节回])([^\r\n]{0,50})` +
		`|(楔子|序章|序言|序|引子|终幕|后记)(?:[ \t\x{3000}:：][^\r\n]{0,49})?))` +
		`(?:\r?\n|\z)`,
)

// endPattern matches the markers the exports put after the last chapter.
var endPattern = regexp.MustCompile(`(?m)^[ \t\x{3000}]*(?:（全书完）|《全本完》)[ \t\x{3000}]*\r?$`)

// ErrTooManyHeadings is returned by Detect when a text yields more headings
// than the configured ceiling.
var ErrTooManyHeadings = errors.New("too many headings")

// Heading is one matched heading line.
type Heading struct {
	// Line is the heading line without indentation or line break.
	Line string
	// Offset is the byte offset in the text where the heading starts.
	Offset int
	// End is the byte offset just past the heading's line break.
	End     int
	Ordinal string
	Unit    string
	Kind    Kind
}

type Options struct {
	// MaxMatches caps the number of headings Detect accepts. Zero disables
	// the cap.
	MaxMatches int
	// IncludePrologues also accepts 楔子, 序章, 引子 and similar lines.
	IncludePrologues bool
}

type Detector struct {
	opts Options
}

func NewDetector(opts Options) *Detector {
	return &Detector{opts: opts}
}

// All returns the headings of text in text order. The sequence is lazy and
// can be ranged over any number of times.
func (d *Detector) All(text string) iter.Seq[Heading] {
	return func(yield func(Heading) bool) {
		limit := contentEnd(text)
		for pos := 0; pos < limit; {
			loc := headingPattern.FindStringSubmatchIndex(text[pos:limit])
			if loc == nil {
				return
			}

			h, ok := d.heading(text, pos, loc)
			pos += loc[1]
			if !ok {
				continue
			}
			if !yield(h) {
				return
			}
		}
	}
}

// Detect collects every heading of text. A text without headings yields an
// empty slice.
func (d *Detector) Detect(text string) ([]Heading, error) {
	matches := []Heading{}
	for h := range d.All(text) {
		if d.opts.MaxMatches > 0 && len(matches) == d.opts.MaxMatches {
			return nil, errors.Wrapf(ErrTooManyHeadings, "more than %d", d.opts.MaxMatches)
		}
		matches = append(matches, h)
	}
	return matches, nil
}

// heading builds a Heading from a submatch index found at base. It reports
// false when the match has to be discarded.
func (d *Detector) heading(text string, base int, loc []int) (Heading, bool) {
	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return text[base+loc[2*i] : base+loc[2*i+1]]
	}

	h := Heading{
		Line:   strings.TrimRight(group(1), indent),
		Offset: base + loc[2],
		End:    base + loc[1],
	}

	if prologue := group(5); prologue != "" {
		if !d.opts.IncludePrologues {
			return h, false
		}
		h.Unit = prologue
		h.Kind = KindChapter
		return h, true
	}

	// Four leading spaces (ASCII or ideographic, in any mix) after the unit
	// mean an indented body line that merely starts like a heading.
	if leadingSpaces(group(4)) >= 4 {
		return h, false
	}

	h.Ordinal = group(2)
	h.Unit = group(3)
	h.Kind = KindChapter
	switch h.Unit {
	case "卷", "集", "部":
		h.Kind = KindVolume
	}
	return h, true
}

func leadingSpaces(s string) int {
	n := 0
	for _, r := range s {
		if r != ' ' && r != '\u3000' {
			break
		}
		n++
	}
	return n
}

// contentEnd returns the offset of the first end-of-book marker, or the
// length of text.
func contentEnd(text string) int {
	if loc := endPattern.FindStringIndex(text); loc != nil {
		return loc[0]
	}
	return len(text)
}
