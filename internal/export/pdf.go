package export

import (
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"
)

// linkHeight is the clickable area height around a link's baseline.
const linkHeight = 5.0

// PDF is a Surface backed by an A4 portrait fpdf document. Page breaks are
// left entirely to the layout.
type PDF struct {
	doc  *fpdf.Fpdf
	size float64
}

// NewPDF returns an empty document.
func NewPDF() *PDF {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	return &PDF{doc: doc, size: 11}
}

func (p *PDF) AddPage() {
	p.doc.AddPage()
}

func (p *PDF) SetFont(style FontStyle, size float64) {
	s := ""
	if style == Bold {
		s = "B"
	}
	p.size = size
	p.doc.SetFont("Helvetica", s, size)
}

func (p *PDF) Text(x, y float64, s string) {
	p.doc.Text(x, y, s)
}

func (p *PDF) Link(x, y float64, s, url string) {
	p.doc.Text(x, y, s)
	p.doc.LinkString(x, y-linkHeight+1, p.doc.GetStringWidth(s), linkHeight, url)
}

func (p *PDF) SplitText(s string, width float64) []string {
	return p.doc.SplitText(s, width)
}

// PageCount returns the number of pages in the document.
func (p *PDF) PageCount() int {
	return p.doc.PageCount()
}

// Output writes the finished document to w.
func (p *PDF) Output(w io.Writer) error {
	if err := p.doc.Output(w); err != nil {
		return eris.Wrap(err, "export: write pdf")
	}
	return nil
}
