package report

// DefaultSubheading is shown for a top city without its own subheading.
const DefaultSubheading = "This region offers strong potential based on demand and cultural alignment."

// summaryContacts is how many contacts of each kind the top summary lists.
const summaryContacts = 4

// Summary is the "best location to launch" digest of a report.
type Summary struct {
	City        City
	Subheading  string
	Influencers []Influencer
	Suppliers   []Supplier
}

// Summarize builds the top-city digest. ok is false for an empty report.
func (r *Report) Summarize() (Summary, bool) {
	top, ok := r.TopCity()
	if !ok {
		return Summary{}, false
	}
	s := Summary{
		City:        top,
		Subheading:  top.Subheading,
		Influencers: firstN(top.Influencers, summaryContacts),
		Suppliers:   firstN(top.Inventory, summaryContacts),
	}
	if s.Subheading == "" {
		s.Subheading = DefaultSubheading
	}
	return s, true
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
