package export

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"

	"github.com/sells-group/launchlens/internal/report"
)

// Sheet names in an exported workbook.
const (
	CitiesSheet   = "Cities"
	ContactsSheet = "Contacts"
)

var (
	citiesHeader   = []string{"Rank", "City", "Subheading", "Score", "Audience Match", "Demand"}
	contactsHeader = []string{"City", "Kind", "Name", "Detail", "Phone", "Email", "Website"}
)

// Workbook builds a spreadsheet with one row per city on the Cities sheet
// and one row per contact on the Contacts sheet. The mode selects the
// cities the same way as the document export.
func Workbook(mode Mode, rep *report.Report) (*xlsx.File, error) {
	f := xlsx.NewFile()
	cities, err := f.AddSheet(CitiesSheet)
	if err != nil {
		return nil, eris.Wrap(err, "export: add cities sheet")
	}
	contacts, err := f.AddSheet(ContactsSheet)
	if err != nil {
		return nil, eris.Wrap(err, "export: add contacts sheet")
	}

	addStrings(cities.AddRow(), citiesHeader...)
	addStrings(contacts.AddRow(), contactsHeader...)

	for i, city := range citiesFor(mode, rep) {
		row := cities.AddRow()
		row.AddCell().SetInt(i + 1)
		addStrings(row, Sanitize(city.City), Sanitize(city.Subheading))
		row.AddCell().SetFloat(city.Score)
		row.AddCell().SetFloat(city.AudienceMatch)
		row.AddCell().SetFloat(city.GeneralDemand)

		for _, c := range contactRows(city) {
			addStrings(contacts.AddRow(), c...)
		}
	}
	return f, nil
}

// contactRows flattens a city's contacts in document order.
func contactRows(city report.City) [][]string {
	name := Sanitize(city.City)
	var rows [][]string
	for _, inf := range city.Influencers {
		rows = append(rows, []string{name, "Influencer", inf.Name, inf.Platform + " / " + inf.Niche, "", inf.Contact, ""})
	}
	for _, s := range city.Inventory {
		rows = append(rows, []string{name, "Supplier", s.Name, s.InventoryType, joinPhones(s.Phone, s.Contact), "", s.Website})
	}
	for _, a := range city.Agents {
		rows = append(rows, []string{name, "Agent", a.Name, a.Specialization, "", a.Contact, a.Website})
	}
	for _, p := range city.PopularPlaces {
		rows = append(rows, []string{name, "Place", p.Name, p.Address, p.Phone, "", p.Website})
	}
	for _, r := range rows {
		for i := range r {
			r[i] = Sanitize(r[i])
		}
	}
	return rows
}

// joinPhones lists the distinct non-blank numbers in order.
func joinPhones(numbers ...string) string {
	var out []string
	for _, n := range numbers {
		n = strings.TrimSpace(n)
		if n != "" && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return strings.Join(out, " / ")
}

func addStrings(row *xlsx.Row, values ...string) {
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

// SaveWorkbook writes "{mode}-report-{idea}.xlsx" into Dir and returns its
// path.
func (e *Exporter) SaveWorkbook(mode Mode, idea string, rep *report.Report) (string, error) {
	f, err := Workbook(mode, rep)
	if err != nil {
		return "", err
	}
	path := filepath.Join(e.Dir, fileName(mode, idea, ".xlsx"))
	if err := ensureDir(path); err != nil {
		return "", err
	}
	if err := f.Save(path); err != nil {
		return "", eris.Wrapf(err, "export: save %s", path)
	}
	zap.L().Info("workbook exported", zap.String("path", path), zap.String("mode", string(mode)))
	return path, nil
}
