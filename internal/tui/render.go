package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/sells-group/launchlens/internal/progress"
	"github.com/sells-group/launchlens/internal/report"
	"github.com/sells-group/launchlens/internal/workflow"
)

// Detail section titles, in display order. Expansion is keyed by these.
const (
	SectionInfluencers = "Influencers"
	SectionSuppliers   = "Inventory Suppliers"
	SectionAgents      = "Real Estate Agents"
	SectionPlaces      = "Popular Places"
)

// Sections lists the toggleable sections; key 1 toggles the first.
var Sections = []string{SectionInfluencers, SectionSuppliers, SectionAgents, SectionPlaces}

const barWidth = 30

// ProgressLine renders the simulated progress and the countdown.
func ProgressLine(p progress.State) string {
	filled := p.Percent * barWidth / 100
	bar := barFull.Render(strings.Repeat("█", filled)) + barEmpty.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %3d%%  about %s left", bar, p.Percent, progress.FormatCountdown(p.Remaining))
}

// Body renders everything below the header for a snapshot: the error, the
// top-city summary, and the current city page.
func Body(s workflow.Snapshot, width int) string {
	if width <= 0 {
		width = 80
	}
	var b strings.Builder
	if s.Err != "" {
		b.WriteString(errorStyle.Render(s.Err))
		b.WriteString("\n\n")
	}
	if s.Report == nil {
		return b.String()
	}
	if s.Report.Len() == 0 {
		b.WriteString(mutedStyle.Render("The analysis found no matching cities."))
		return b.String()
	}

	if sum, ok := s.Report.Summarize(); ok {
		b.WriteString(summaryBox.Render(summaryText(sum, width-4)))
		b.WriteString("\n\n")
	}

	city, _ := s.City()
	b.WriteString(cityText(city, s.Page, s.Report.Len(), s.Expanded, width))
	return b.String()
}

func summaryText(sum report.Summary, width int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Best location to launch: " + sum.City.City))
	b.WriteString("\n")
	b.WriteString(wordwrap.String(sum.Subheading, width))
	if len(sum.Influencers) > 0 {
		names := make([]string, len(sum.Influencers))
		for i, inf := range sum.Influencers {
			names[i] = inf.Name
		}
		b.WriteString("\nTop influencers: " + strings.Join(names, ", "))
	}
	if len(sum.Suppliers) > 0 {
		names := make([]string, len(sum.Suppliers))
		for i, s := range sum.Suppliers {
			names[i] = s.Name
		}
		b.WriteString("\nTop suppliers: " + strings.Join(names, ", "))
	}
	return b.String()
}

func cityText(c report.City, page, pages int, expanded map[string]bool, width int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", headingStyle.Render(fmt.Sprintf("%d. %s", page+1, c.City)), mutedStyle.Render(fmt.Sprintf("(%d of %d)", page+1, pages)))
	if c.Subheading != "" {
		b.WriteString(wordwrap.String(c.Subheading, width) + "\n")
	}
	fmt.Fprintf(&b, "Score %s  Audience Match %s  Demand %s\n",
		scoreStyle.Render(pct(c.Score)), scoreStyle.Render(pct(c.AudienceMatch)), scoreStyle.Render(pct(c.GeneralDemand)))
	if c.GPTInsights != "" {
		b.WriteString("\n" + headingStyle.Render("Business Pitch") + "\n")
		b.WriteString(wordwrap.String(c.GPTInsights, width) + "\n")
	}

	for i, title := range Sections {
		items := sectionItems(c, title)
		marker := "▸"
		if expanded[title] {
			marker = "▾"
		}
		fmt.Fprintf(&b, "\n%s %s %s", marker, headingStyle.Render(title), mutedStyle.Render(fmt.Sprintf("(%d) [%d]", len(items), i+1)))
		if !expanded[title] {
			continue
		}
		if len(items) == 0 {
			b.WriteString("\n  " + mutedStyle.Render("none"))
		}
		for _, item := range items {
			b.WriteString("\n  " + strings.ReplaceAll(wordwrap.String(item, width-2), "\n", "\n  "))
		}
	}
	return b.String()
}

// sectionItems renders a section's entries, skipping empty fields.
func sectionItems(c report.City, title string) []string {
	var out []string
	switch title {
	case SectionInfluencers:
		for _, inf := range c.Influencers {
			out = append(out, joinFields(fmt.Sprintf("%s (%s) - %s", inf.Name, inf.Platform, inf.Niche), inf.Bio, inf.Contact))
		}
	case SectionSuppliers:
		for _, s := range c.Inventory {
			out = append(out, joinFields(s.Name+" - "+s.InventoryType, s.Location, s.Phone, s.Contact, s.Website))
		}
	case SectionAgents:
		for _, a := range c.Agents {
			out = append(out, joinFields(a.Name+" - "+a.Specialization, a.Agency, a.Website, a.Contact))
		}
	case SectionPlaces:
		for _, p := range c.PopularPlaces {
			out = append(out, joinFields(p.Name, p.Address, p.Phone, p.Website, p.MapURL))
		}
	}
	return out
}

func joinFields(head string, fields ...string) string {
	parts := []string{head}
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Join(parts, " | ")
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}
