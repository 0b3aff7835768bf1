package report

// Pager tracks which city page is displayed and which detail sections are
// expanded. Expansion is keyed by section title and survives Next/Previous
// so sections stay open while comparing cities; Reset clears it.
type Pager struct {
	index    int
	count    int
	expanded map[string]bool
}

// NewPager returns a pager over count pages.
func NewPager(count int) *Pager {
	p := &Pager{}
	p.Reset(count)
	return p
}

// Reset rewinds to the first page of a newly loaded report and collapses
// every section.
func (p *Pager) Reset(count int) {
	if count < 0 {
		count = 0
	}
	p.index = 0
	p.count = count
	p.expanded = make(map[string]bool)
}

// Index returns the current page index.
func (p *Pager) Index() int { return p.index }

// Count returns the number of pages.
func (p *Pager) Count() int { return p.count }

// Next advances one page. It reports false at the last page.
func (p *Pager) Next() bool {
	if p.index >= p.count-1 {
		return false
	}
	p.index++
	return true
}

// Previous goes back one page. It reports false at the first page.
func (p *Pager) Previous() bool {
	if p.index <= 0 {
		return false
	}
	p.index--
	return true
}

// HasNext reports whether Next would move.
func (p *Pager) HasNext() bool { return p.index < p.count-1 }

// HasPrevious reports whether Previous would move.
func (p *Pager) HasPrevious() bool { return p.index > 0 }

// Toggle flips the expansion of a section and returns its new state.
func (p *Pager) Toggle(title string) bool {
	p.expanded[title] = !p.expanded[title]
	return p.expanded[title]
}

// Expanded reports whether a section is open.
func (p *Pager) Expanded(title string) bool {
	return p.expanded[title]
}

// Expansion returns a copy of the expansion map.
func (p *Pager) Expansion() map[string]bool {
	out := make(map[string]bool, len(p.expanded))
	for k, v := range p.expanded {
		out[k] = v
	}
	return out
}
