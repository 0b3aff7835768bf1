package export

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"
)

// FontStyle selects regular or bold text.
type FontStyle int

// Font styles.
const (
	Regular FontStyle = iota
	Bold
)

// Surface is a paginated drawing target. Coordinates are millimetres from
// the top-left corner of the current page.
type Surface interface {
	AddPage()
	SetFont(style FontStyle, size float64)
	Text(x, y float64, s string)
	// Link draws s at (x, y) as a clickable annotation opening url.
	Link(x, y float64, s, url string)
	// SplitText breaks s into lines no wider than width.
	SplitText(s string, width float64) []string
}

// OpKind identifies a recorded drawing operation.
type OpKind int

// Recorded operation kinds.
const (
	OpPage OpKind = iota
	OpFont
	OpText
	OpLink
)

// Op is one drawing operation captured by a Recorder.
type Op struct {
	Kind  OpKind
	Page  int
	Y     float64
	Text  string
	URL   string
	Style FontStyle
	Size  float64
}

// DefaultCharWidth approximates an 11pt Helvetica glyph in millimetres.
const DefaultCharWidth = 2.0

// Recorder is a Surface that records operations instead of drawing. Line
// splitting assumes fixed-width glyphs of CharWidth millimetres.
type Recorder struct {
	CharWidth float64
	Ops       []Op

	page  int
	style FontStyle
	size  float64
}

// NewRecorder returns a recorder using DefaultCharWidth.
func NewRecorder() *Recorder {
	return &Recorder{CharWidth: DefaultCharWidth}
}

func (r *Recorder) AddPage() {
	r.page++
	r.Ops = append(r.Ops, Op{Kind: OpPage, Page: r.page})
}

func (r *Recorder) SetFont(style FontStyle, size float64) {
	r.style, r.size = style, size
	r.Ops = append(r.Ops, Op{Kind: OpFont, Page: r.page, Style: style, Size: size})
}

func (r *Recorder) Text(_, y float64, s string) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Page: r.page, Y: y, Text: s, Style: r.style, Size: r.size})
}

func (r *Recorder) Link(_, y float64, s, url string) {
	r.Ops = append(r.Ops, Op{Kind: OpLink, Page: r.page, Y: y, Text: s, URL: url, Style: r.style, Size: r.size})
}

func (r *Recorder) SplitText(s string, width float64) []string {
	cw := r.CharWidth
	if cw <= 0 {
		cw = DefaultCharWidth
	}
	limit := int(width / cw)
	if limit < 1 {
		limit = 1
	}
	return strings.Split(wordwrap.String(s, limit), "\n")
}

// Pages returns the number of pages started.
func (r *Recorder) Pages() int { return r.page }

// Lines returns the text and link operations in drawing order.
func (r *Recorder) Lines() []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == OpText || op.Kind == OpLink {
			out = append(out, op)
		}
	}
	return out
}

// Find returns the first text or link operation whose text is s.
func (r *Recorder) Find(s string) (Op, bool) {
	for _, op := range r.Lines() {
		if op.Text == s {
			return op, true
		}
	}
	return Op{}, false
}
