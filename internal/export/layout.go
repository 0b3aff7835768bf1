package export

import "strings"

// Layout holds the page geometry in millimetres and the font sizes in
// points.
type Layout struct {
	MarginLeft    float64
	ContentWidth  float64
	Top           float64
	MaxY          float64
	LineHeight    float64
	ParagraphGap  float64
	CityTopGap    float64
	CityBottomGap float64
	TitleAdvance  float64
	TitleSize     float64
	BodySize      float64
}

// DefaultLayout is the A4 geometry used for exported reports.
func DefaultLayout() Layout {
	return Layout{
		MarginLeft:    14,
		ContentWidth:  180,
		Top:           20,
		MaxY:          270,
		LineHeight:    8,
		ParagraphGap:  2,
		CityTopGap:    6,
		CityBottomGap: 10,
		TitleAdvance:  12,
		TitleSize:     16,
		BodySize:      11,
	}
}

// cursor writes lines down the page and starts a new page whenever the
// next line would end below MaxY.
type cursor struct {
	s Surface
	l Layout
	y float64
}

func newCursor(s Surface, l Layout) *cursor {
	s.AddPage()
	return &cursor{s: s, l: l, y: l.Top}
}

// ensure starts a new page unless n more lines fit on this one.
func (c *cursor) ensure(n int) {
	if c.y+float64(n)*c.l.LineHeight > c.l.MaxY {
		c.s.AddPage()
		c.y = c.l.Top
	}
}

func (c *cursor) advance(dy float64) {
	c.y += dy
}

func (c *cursor) font(style FontStyle) {
	c.s.SetFont(style, c.l.BodySize)
}

// line writes a single unwrapped line.
func (c *cursor) line(text string) {
	c.ensure(1)
	c.s.Text(c.l.MarginLeft, c.y, Sanitize(text))
	c.y += c.l.LineHeight
}

// heading writes a bold single line.
func (c *cursor) heading(text string) {
	c.font(Bold)
	c.line(text)
	c.font(Regular)
}

// paragraph writes "label: text" wrapped to the content width, followed by
// a paragraph gap. An empty label writes text alone. Each line of text is
// wrapped separately and blank lines are dropped.
func (c *cursor) paragraph(label, text string) {
	var segments []string
	for _, seg := range strings.Split(text, "\n") {
		if seg = Sanitize(seg); seg != "" {
			segments = append(segments, seg)
		}
	}
	if len(segments) == 0 {
		segments = []string{""}
	}
	if label != "" {
		segments[0] = label + ": " + segments[0]
	}

	var lines []string
	for _, seg := range segments {
		wrapped := c.s.SplitText(seg, c.l.ContentWidth)
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		lines = append(lines, wrapped...)
	}
	for _, ln := range lines {
		c.ensure(1)
		c.s.Text(c.l.MarginLeft, c.y, ln)
		c.y += c.l.LineHeight
	}
	c.y += c.l.ParagraphGap
}

// link writes "label: value" as an annotation opening url. Nothing is
// written for an empty value.
func (c *cursor) link(label, value, url string) {
	value = Sanitize(value)
	if value == "" {
		return
	}
	c.ensure(1)
	c.s.Link(c.l.MarginLeft, c.y, label+": "+value, url)
	c.y += c.l.LineHeight
}
