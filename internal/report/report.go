// Package report holds the market-opportunity report returned by an
// analysis and the pagination state used to browse it.
package report

import (
	"bytes"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// ErrMalformedReport is returned when a success payload lacks a cities list.
var ErrMalformedReport = eris.New("report: malformed report")

// Report is one analysis result. Cities keep the server's ordering; page
// numbers are indexes into it. A Report is never modified after Parse.
type Report struct {
	Cities []City          `json:"cities"`
	Raw    json.RawMessage `json:"-"`
}

// City is one ranked location. Scores are percentages in [0, 100].
type City struct {
	City          string       `json:"city"`
	Subheading    string       `json:"subheading,omitempty"`
	Score         float64      `json:"score"`
	AudienceMatch float64      `json:"audience_match"`
	GeneralDemand float64      `json:"general_demand"`
	GPTInsights   string       `json:"gpt_insights,omitempty"`
	Influencers   []Influencer `json:"influencers,omitempty"`
	Inventory     []Supplier   `json:"inventory,omitempty"`
	Agents        []Agent      `json:"agents,omitempty"`
	PopularPlaces []Place      `json:"popular_places,omitempty"`
}

// Influencer is a local creator contact.
type Influencer struct {
	Name     string `json:"name"`
	Platform string `json:"platform,omitempty"`
	Niche    string `json:"niche,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Contact  string `json:"contact,omitempty"`
}

// Supplier is an inventory supplier contact.
type Supplier struct {
	Name          string `json:"name"`
	InventoryType string `json:"inventory_type,omitempty"`
	Location      string `json:"location,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Contact       string `json:"contact,omitempty"`
	Website       string `json:"website,omitempty"`
}

// Agent is a real-estate agent contact.
type Agent struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	Agency         string `json:"agency,omitempty"`
	Contact        string `json:"contact,omitempty"`
	Website        string `json:"website,omitempty"`
}

// Place is a popular local spot.
type Place struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
	MapURL  string `json:"map_url,omitempty"`
}

// Parse validates a raw success payload and returns the report it holds.
// The payload must be an object whose cities member is a JSON array;
// anything else yields ErrMalformedReport. Cities are decoded leniently:
// entries that are not objects are dropped and fields of an unexpected
// kind read as zero values.
func Parse(raw []byte) (*Report, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, eris.Wrap(ErrMalformedReport, err.Error())
	}

	cities, ok := envelope["cities"]
	if !ok {
		return nil, eris.Wrap(ErrMalformedReport, "missing cities")
	}
	cities = bytes.TrimSpace(cities)
	if len(cities) == 0 || cities[0] != '[' {
		return nil, eris.Wrap(ErrMalformedReport, "cities is not a list")
	}

	r := &Report{Cities: decodeList[City](cities)}
	if r.Cities == nil {
		r.Cities = []City{}
	}
	r.Raw = append(json.RawMessage(nil), raw...)
	return r, nil
}

// UnmarshalJSON decodes a city with the same leniency as Parse.
func (c *City) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		return nil
	}
	f, ok := objectFields(data)
	if !ok {
		return eris.Errorf("report: city must be an object, got %.20s", data)
	}
	c.fill(f)
	return nil
}

// Len returns the number of cities.
func (r *Report) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Cities)
}

// TopCity returns the city with the highest general demand. Ties go to the
// city that appears first. ok is false for an empty report.
func (r *Report) TopCity() (top City, ok bool) {
	if r.Len() == 0 {
		return City{}, false
	}
	top = r.Cities[0]
	for _, c := range r.Cities[1:] {
		if c.GeneralDemand > top.GeneralDemand {
			top = c
		}
	}
	return top, true
}

// CityAt returns the city at index i. An out-of-range index is a caller
// bug and panics; Pager keeps indexes in range.
func (r *Report) CityAt(i int) City {
	return r.Cities[i]
}
