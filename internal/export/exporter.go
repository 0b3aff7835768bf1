// Package export renders a report as a paginated document with clickable
// contact links, and as a spreadsheet.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/launchlens/internal/report"
)

// Mode selects how much of a report is exported.
type Mode string

// Export modes.
const (
	// ModeSummary renders only the first city.
	ModeSummary Mode = "summary"
	// ModeDetailed renders every city in report order.
	ModeDetailed Mode = "detailed"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSummary:
		return ModeSummary, nil
	case ModeDetailed:
		return ModeDetailed, nil
	default:
		return "", eris.Errorf("export: unknown mode %q (want summary or detailed)", s)
	}
}

func (m Mode) title() string {
	if m == ModeSummary {
		return "Summary"
	}
	return "Detailed"
}

// ArtifactName is the base name of an exported document.
func ArtifactName(mode Mode, idea string) string {
	return fmt.Sprintf("%s-report-%s", mode, idea)
}

// fileName makes an artifact name safe to use as a single path element.
func fileName(mode Mode, idea, ext string) string {
	name := strings.NewReplacer("/", "-", `\`, "-").Replace(ArtifactName(mode, idea))
	return name + ext
}

// Render lays the report out on s.
func Render(s Surface, l Layout, mode Mode, idea string, rep *report.Report) {
	c := newCursor(s, l)

	s.SetFont(Bold, l.TitleSize)
	s.Text(l.MarginLeft, c.y, Sanitize(fmt.Sprintf("%s Market Report for: %s", mode.title(), idea)))
	c.advance(l.TitleAdvance)
	s.SetFont(Regular, l.BodySize)

	cities := citiesFor(mode, rep)
	for i, city := range cities {
		renderCity(c, i, city)
	}
}

func citiesFor(mode Mode, rep *report.Report) []report.City {
	if rep.Len() == 0 {
		return nil
	}
	if mode == ModeSummary {
		return rep.Cities[:1]
	}
	return rep.Cities
}

func renderCity(c *cursor, idx int, city report.City) {
	c.advance(c.l.CityTopGap)
	c.font(Bold)
	c.paragraph("", fmt.Sprintf("%d. %s", idx+1, city.City))
	c.font(Regular)

	if city.Subheading != "" {
		c.paragraph("Subheading", city.Subheading)
	}
	c.line("Score: " + percent(city.Score))
	c.line("Audience Match: " + percent(city.AudienceMatch))
	c.line("Demand: " + percent(city.GeneralDemand))

	if city.GPTInsights != "" {
		c.heading("Business Pitch")
		c.paragraph("", city.GPTInsights)
	}

	if len(city.Influencers) > 0 {
		c.heading("Influencers")
		for i, inf := range city.Influencers {
			c.line(fmt.Sprintf("%d. %s (%s) - %s", i+1, inf.Name, inf.Platform, inf.Niche))
			if inf.Bio != "" {
				c.paragraph("Bio", inf.Bio)
			}
			c.link("Email", inf.Contact, mailto(inf.Contact))
		}
	}

	if len(city.Inventory) > 0 {
		c.heading("Inventory Suppliers")
		for i, sup := range city.Inventory {
			c.line(fmt.Sprintf("%d. %s - %s", i+1, sup.Name, sup.InventoryType))
			if sup.Location != "" {
				c.paragraph("Location", sup.Location)
			}
			c.link("Phone", sup.Phone, tel(sup.Phone))
			c.link("Contact", sup.Contact, tel(sup.Contact))
			c.link("Website", sup.Website, sup.Website)
		}
	}

	if len(city.Agents) > 0 {
		c.heading("Real Estate Agents")
		for i, a := range city.Agents {
			c.line(fmt.Sprintf("%d. %s - %s", i+1, a.Name, a.Specialization))
			if a.Agency != "" {
				c.paragraph("Agency", a.Agency)
			}
			c.link("Website", a.Website, a.Website)
			c.link("Email", a.Contact, mailto(a.Contact))
		}
	}

	if len(city.PopularPlaces) > 0 {
		c.heading("Popular Places")
		for i, p := range city.PopularPlaces {
			c.line(fmt.Sprintf("%d. %s", i+1, p.Name))
			if p.Address != "" {
				c.paragraph("Address", p.Address)
			}
			c.link("Phone", p.Phone, tel(p.Phone))
			c.link("Website", p.Website, p.Website)
			c.link("Map", p.MapURL, p.MapURL)
		}
	}

	c.advance(c.l.CityBottomGap)
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

func mailto(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" || strings.HasPrefix(addr, "mailto:") {
		return addr
	}
	return "mailto:" + addr
}

func tel(number string) string {
	number = strings.TrimSpace(number)
	if number == "" || strings.HasPrefix(number, "tel:") {
		return number
	}
	return "tel:" + strings.ReplaceAll(number, " ", "")
}

// Exporter writes report documents into a directory.
type Exporter struct {
	Dir    string
	Layout Layout
}

// NewExporter returns an exporter writing into dir with DefaultLayout.
func NewExporter(dir string) *Exporter {
	return &Exporter{Dir: dir, Layout: DefaultLayout()}
}

// PDF renders the report and returns the encoded document.
func (e *Exporter) PDF(mode Mode, idea string, rep *report.Report) ([]byte, error) {
	doc := NewPDF()
	Render(doc, e.Layout, mode, idea, rep)
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePDF writes "{mode}-report-{idea}.pdf" into Dir and returns its path.
func (e *Exporter) SavePDF(mode Mode, idea string, rep *report.Report) (string, error) {
	data, err := e.PDF(mode, idea, rep)
	if err != nil {
		return "", err
	}
	path := filepath.Join(e.Dir, fileName(mode, idea, ".pdf"))
	if err := writeFile(path, data); err != nil {
		return "", err
	}
	zap.L().Info("report exported", zap.String("path", path), zap.String("mode", string(mode)), zap.Int("cities", len(citiesFor(mode, rep))))
	return path, nil
}

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return eris.Wrap(err, "export: create directory")
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}
