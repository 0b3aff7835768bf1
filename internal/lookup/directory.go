// Package lookup resolves the country and state options offered for an
// analysis and maps between their codes and display names.
package lookup

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/sells-group/launchlens/pkg/launchlens"
)

// Region is a selectable country or state.
type Region struct {
	Code string
	Name string
}

// FallbackCountries is offered when the country list cannot be fetched.
var FallbackCountries = []Region{
	{Code: "IN", Name: "India"},
	{Code: "IE", Name: "Ireland"},
	{Code: "US", Name: "United States"},
	{Code: "GB", Name: "United Kingdom"},
	{Code: "CA", Name: "Canada"},
	{Code: "AU", Name: "Australia"},
	{Code: "DE", Name: "Germany"},
	{Code: "FR", Name: "France"},
}

// Source fetches option lists. launchlens.Client satisfies it.
type Source interface {
	Countries(ctx context.Context) ([]launchlens.Region, error)
	States(ctx context.Context, countryCode string) ([]launchlens.Region, error)
}

// Directory caches the country list and the state list of the most
// recently selected country.
type Directory struct {
	src Source

	mu        sync.Mutex
	countries []Region
	states    []Region
	statesOf  string
}

// NewDirectory returns a directory backed by src.
func NewDirectory(src Source) *Directory {
	return &Directory{src: src}
}

// LoadCountries fetches the country list, falling back to
// FallbackCountries when the fetch fails or returns nothing.
func (d *Directory) LoadCountries(ctx context.Context) []Region {
	regions, err := d.src.Countries(ctx)
	var countries []Region
	switch {
	case err != nil:
		zap.L().Warn("lookup: country list unavailable, using fallback", zap.Error(err))
		countries = append(countries, FallbackCountries...)
	case len(regions) == 0:
		countries = append(countries, FallbackCountries...)
	default:
		countries = convert(regions)
	}

	d.mu.Lock()
	d.countries = countries
	d.mu.Unlock()
	return countries
}

// LoadStates fetches the states of countryCode and makes them the current
// option set. A failed fetch or an empty code yields no options.
func (d *Directory) LoadStates(ctx context.Context, countryCode string) []Region {
	var states []Region
	if countryCode != "" {
		regions, err := d.src.States(ctx, countryCode)
		if err != nil {
			zap.L().Warn("lookup: state list unavailable",
				zap.String("country", countryCode), zap.Error(err))
		} else {
			states = convert(regions)
		}
	}
	d.SetStates(countryCode, states)
	return states
}

// SetStates replaces the current state option set, for example with the
// states embedded in a restored history record.
func (d *Directory) SetStates(countryCode string, states []Region) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.statesOf = countryCode
	d.states = append([]Region(nil), states...)
}

// Countries returns the loaded country options.
func (d *Directory) Countries() []Region {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Region(nil), d.countries...)
}

// States returns the current state options and the country they belong to.
func (d *Directory) States() (countryCode string, states []Region) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statesOf, append([]Region(nil), d.states...)
}

// CountryName returns the display name for code, or code itself when the
// country is unknown.
func (d *Directory) CountryName(code string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return nameOf(d.countries, code)
}

// StateName returns the display name for code, or code itself when the
// state is unknown.
func (d *Directory) StateName(code string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return nameOf(d.states, code)
}

func nameOf(regions []Region, code string) string {
	for _, r := range regions {
		if r.Code == code {
			return r.Name
		}
	}
	return code
}

// FromAPI converts service regions to directory regions.
func FromAPI(regions []launchlens.Region) []Region {
	return convert(regions)
}

func convert(regions []launchlens.Region) []Region {
	out := make([]Region, 0, len(regions))
	for _, r := range regions {
		out = append(out, Region{Code: string(r.ID), Name: r.Name})
	}
	return out
}
