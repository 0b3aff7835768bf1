package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/launchlens/internal/apitest"
	"github.com/sells-group/launchlens/internal/report"
)

func threeCities(t *testing.T) *report.Report {
	t.Helper()
	rep, err := report.Parse([]byte(apitest.ThreeCityReport))
	require.NoError(t, err)
	return rep
}

func texts(ops []Op) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.Text
	}
	return out
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"  padded  ", "padded"},
		{"Café ☕ Bar", "Caf  Bar"},
		{"🚀 Launch", "Launch"},
		{"tab\there", "tabhere"},
		{"line\nbreak", "line break"},
		{"\n\ntrailing\n", "trailing"},
		{"日本", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Sanitize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Sanitize(got), "sanitize must be idempotent")
		})
	}
}

func TestArtifactName(t *testing.T) {
	assert.Equal(t, "summary-report-Coffee Shop", ArtifactName(ModeSummary, "Coffee Shop"))
	assert.Equal(t, "detailed-report-Coffee Shop", ArtifactName(ModeDetailed, "Coffee Shop"))
	assert.Equal(t, "detailed-report-a-b.pdf", fileName(ModeDetailed, "a/b", ".pdf"))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Summary ")
	require.NoError(t, err)
	assert.Equal(t, ModeSummary, m)

	m, err = ParseMode("detailed")
	require.NoError(t, err)
	assert.Equal(t, ModeDetailed, m)

	_, err = ParseMode("full")
	assert.Error(t, err)
}

func TestRender_SummaryRendersFirstCityOnly(t *testing.T) {
	rec := NewRecorder()
	Render(rec, DefaultLayout(), ModeSummary, "Coffee Shop", threeCities(t))

	lines := texts(rec.Lines())
	assert.Equal(t, "Summary Market Report for: Coffee Shop", lines[0])
	assert.Contains(t, lines, "1. Pune")
	assert.NotContains(t, lines, "2. Bengaluru")
	assert.NotContains(t, lines, "3. Hyderabad")
	for _, l := range lines {
		assert.NotContains(t, l, "Bengaluru")
	}
}

func TestRender_DetailedRendersAllCitiesInOrder(t *testing.T) {
	rec := NewRecorder()
	Render(rec, DefaultLayout(), ModeDetailed, "Coffee Shop", threeCities(t))

	lines := texts(rec.Lines())
	assert.Equal(t, "Detailed Market Report for: Coffee Shop", lines[0])

	var headings []string
	for _, l := range lines {
		if l == "1. Pune" || l == "2. Bengaluru" || l == "3. Hyderabad" {
			headings = append(headings, l)
		}
	}
	assert.Equal(t, []string{"1. Pune", "2. Bengaluru", "3. Hyderabad"}, headings)
}

func TestRender_CityBlock(t *testing.T) {
	rec := NewRecorder()
	Render(rec, DefaultLayout(), ModeSummary, "Coffee Shop", threeCities(t))

	want := []string{
		"Summary Market Report for: Coffee Shop",
		"1. Pune",
		"Subheading: Student-heavy cafe culture",
		"Score: 72%",
		"Audience Match: 68%",
		"Demand: 80%",
		"Business Pitch",
		"Pune has a young population and a growing cafe scene.",
		"Influencers",
		"1. Asha Rao (Instagram) - Food",
		"Bio: Street food explorer",
		"Email: asha@example.com",
		"Inventory Suppliers",
		"1. Bean Co - Coffee beans",
		"Location: Hadapsar",
		"Phone: +91 20 5550 1000",
		"Contact: +91 98765 43210",
		"Website: https://beanco.example",
		"Real Estate Agents",
		"1. R. Kulkarni - Retail",
		"Agency: Prime Spaces",
		"Website: https://prime.example",
		"Email: rk@prime.example",
		"Popular Places",
		"1. FC Road",
		"Address: Fergusson College Rd",
		"Map: https://maps.example/fc-road",
	}
	assert.Equal(t, want, texts(rec.Lines()))
}

func TestRender_Links(t *testing.T) {
	rec := NewRecorder()
	Render(rec, DefaultLayout(), ModeSummary, "x", threeCities(t))

	links := map[string]string{}
	for _, op := range rec.Lines() {
		if op.Kind == OpLink {
			links[op.Text] = op.URL
		}
	}
	assert.Equal(t, map[string]string{
		"Email: asha@example.com":           "mailto:asha@example.com",
		"Phone: +91 20 5550 1000":           "tel:+912055501000",
		"Contact: +91 98765 43210":          "tel:+919876543210",
		"Website: https://beanco.example":   "https://beanco.example",
		"Website: https://prime.example":    "https://prime.example",
		"Email: rk@prime.example":           "mailto:rk@prime.example",
		"Map: https://maps.example/fc-road": "https://maps.example/fc-road",
	}, links)
}

func TestRender_AbsentFieldsOmitted(t *testing.T) {
	rec := NewRecorder()
	Render(rec, DefaultLayout(), ModeDetailed, "x", threeCities(t))
	lines := texts(rec.Lines())

	// Devi S has no bio or contact, so her line is directly followed by the
	// next city.
	idx := -1
	for i, l := range lines {
		if l == "2. Devi S (Instagram) - Lifestyle" {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx)
	assert.Equal(t, "3. Hyderabad", lines[idx+1])

	for _, l := range lines {
		assert.NotEqual(t, "Phone: ", l)
		assert.NotEqual(t, "Website: ", l)
		assert.False(t, strings.HasSuffix(l, ": "), "empty field rendered: %q", l)
	}
	// Empty lists get no section header.
	assert.Equal(t, 1, countOf(lines, "Inventory Suppliers"))
	assert.Equal(t, 2, countOf(lines, "Influencers"))
}

func TestRender_MultilineFields(t *testing.T) {
	rep := &report.Report{Cities: []report.City{{
		City:  "Pune",
		Score: 80,
		Influencers: []report.Influencer{{
			Name:     "Asha\nRao",
			Platform: "Instagram",
			Niche:    "Food",
			Bio:      "Street food explorer.\r\n\nWeekend baker",
			Contact:  "asha@example.com\n",
		}},
	}}}

	rec := NewRecorder()
	Render(rec, DefaultLayout(), ModeDetailed, "x", rep)
	ops := rec.Lines()
	lines := texts(ops)

	assert.Contains(t, lines, "1. Asha Rao (Instagram) - Food")
	idx := indexOf(lines, "Bio: Street food explorer.")
	require.NotEqual(t, -1, idx)
	assert.Equal(t, "Weekend baker", lines[idx+1])
	assert.Equal(t, "Email: asha@example.com", lines[idx+2])

	for _, op := range ops {
		assert.NotContains(t, op.Text, "\n")
		assert.NotContains(t, op.Text, "\r")
	}
}

func indexOf(lines []string, want string) int {
	for i, l := range lines {
		if l == want {
			return i
		}
	}
	return -1
}

func countOf(lines []string, s string) int {
	n := 0
	for _, l := range lines {
		if l == s {
			n++
		}
	}
	return n
}

func TestRender_PageBreakIsExact(t *testing.T) {
	l := DefaultLayout()
	l.MaxY = 70

	rec := NewRecorder()
	Render(rec, l, ModeSummary, "Coffee Shop", threeCities(t))

	// Title at 20, then 12 down and a 6 gap: heading at 38, subheading at
	// 48 after the paragraph gap, score at 58. Audience match would end at
	// 74 > 70, so it opens page 2 at the top. A line ending exactly at 70
	// still fits.
	cases := []struct {
		text string
		page int
		y    float64
	}{
		{"Summary Market Report for: Coffee Shop", 1, 20},
		{"1. Pune", 1, 38},
		{"Subheading: Student-heavy cafe culture", 1, 48},
		{"Score: 72%", 1, 58},
		{"Audience Match: 68%", 2, 20},
		{"Demand: 80%", 2, 28},
		{"Business Pitch", 2, 36},
		{"Pune has a young population and a growing cafe scene.", 2, 44},
		{"Influencers", 2, 54},
		{"1. Asha Rao (Instagram) - Food", 2, 62},
		{"Bio: Street food explorer", 3, 20},
	}
	for _, tc := range cases {
		op, ok := rec.Find(tc.text)
		require.True(t, ok, tc.text)
		assert.Equal(t, tc.page, op.Page, tc.text)
		assert.InDelta(t, tc.y, op.Y, 1e-9, tc.text)
	}

	// Rendering again gives the same layout.
	again := NewRecorder()
	Render(again, l, ModeSummary, "Coffee Shop", threeCities(t))
	assert.Equal(t, rec.Ops, again.Ops)
}

func TestRender_WrapsLongParagraphs(t *testing.T) {
	rep := &report.Report{Cities: []report.City{{
		City:        "Pune",
		GPTInsights: strings.Repeat("word ", 40),
	}}}
	rec := NewRecorder()
	rec.CharWidth = 10 // 18 characters per line
	Render(rec, DefaultLayout(), ModeSummary, "x", rep)

	pitch, ok := rec.Find("Business Pitch")
	require.True(t, ok)

	var wrapped []Op
	for _, op := range rec.Lines() {
		if strings.HasPrefix(op.Text, "word") {
			wrapped = append(wrapped, op)
		}
	}
	require.Greater(t, len(wrapped), 1)
	for i, op := range wrapped {
		assert.LessOrEqual(t, len(strings.TrimSpace(op.Text)), 18)
		assert.InDelta(t, pitch.Y+8*float64(i+1), op.Y, 1e-9)
	}
}

func TestRender_EmptyReport(t *testing.T) {
	rec := NewRecorder()
	Render(rec, DefaultLayout(), ModeSummary, "x", &report.Report{})
	assert.Equal(t, []string{"Summary Market Report for: x"}, texts(rec.Lines()))
	assert.Equal(t, 1, rec.Pages())

	rec = NewRecorder()
	Render(rec, DefaultLayout(), ModeDetailed, "x", nil)
	assert.Len(t, rec.Lines(), 1)
}

func TestRender_SanitizesContent(t *testing.T) {
	rep := &report.Report{Cities: []report.City{{City: "São Paulo 🌆", GPTInsights: "  ☕ Great coffee  "}}}
	rec := NewRecorder()
	Render(rec, DefaultLayout(), ModeSummary, "Café", rep)

	lines := texts(rec.Lines())
	assert.Equal(t, "Summary Market Report for: Caf", lines[0])
	assert.Contains(t, lines, "1. So Paulo")
	assert.Contains(t, lines, "Great coffee")
}

func TestExporter_SavePDF(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir)

	path, err := e.SavePDF(ModeDetailed, "Coffee Shop", threeCities(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "detailed-report-Coffee Shop.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestPDF_MatchesRecordedPageCount(t *testing.T) {
	rep := threeCities(t)
	l := DefaultLayout()
	l.MaxY = 90

	rec := NewRecorder()
	Render(rec, l, ModeDetailed, "x", rep)

	doc := NewPDF()
	Render(doc, l, ModeDetailed, "x", rep)
	assert.Equal(t, rec.Pages(), doc.PageCount())
}

func TestWorkbook(t *testing.T) {
	f, err := Workbook(ModeDetailed, threeCities(t))
	require.NoError(t, err)

	cities := f.Sheet[CitiesSheet]
	require.NotNil(t, cities)
	require.Len(t, cities.Rows, 4)
	assert.Equal(t, "Rank", cities.Rows[0].Cells[0].String())
	assert.Equal(t, "Bengaluru", cities.Rows[2].Cells[1].String())
	demand, err := cities.Rows[2].Cells[5].Float()
	require.NoError(t, err)
	assert.Equal(t, 95.0, demand)

	contacts := f.Sheet[ContactsSheet]
	require.NotNil(t, contacts)
	// Pune has four contacts, Bengaluru two, Hyderabad none.
	require.Len(t, contacts.Rows, 7)
	assert.Equal(t, []string{"Pune", "Supplier", "Bean Co", "Coffee beans", "+91 20 5550 1000 / +91 98765 43210", "", "https://beanco.example"},
		rowStrings(contacts.Rows[2]))
}

func TestJoinPhones(t *testing.T) {
	assert.Equal(t, "+91 1 / +91 2", joinPhones("+91 1", " +91 2 "))
	assert.Equal(t, "+91 1", joinPhones("+91 1", "+91 1"))
	assert.Equal(t, "+91 2", joinPhones("", "+91 2"))
	assert.Empty(t, joinPhones("", " "))
}

func TestExporter_SaveWorkbook(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExporter(dir).SaveWorkbook(ModeSummary, "Coffee Shop", threeCities(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "summary-report-Coffee Shop.xlsx"), path)

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheet[CitiesSheet].Rows, 2)
	assert.Equal(t, "Pune", f.Sheet[CitiesSheet].Rows[1].Cells[1].String())
}

func rowStrings(row *xlsx.Row) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.String()
	}
	return out
}
