package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// fields is one JSON object decoded leniently. The service generates these
// records from model output, so a phone may arrive as a number or a score
// as a string. Values of the wrong kind read as the zero value.
type fields map[string]json.RawMessage

// objectFields decodes data as an object. ok is false for any other kind.
func objectFields(data []byte) (f fields, ok bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, false
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, false
	}
	return f, true
}

func (f fields) scalar(key string) (any, bool) {
	raw, ok := f[key]
	if !ok {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// text reads a string. Numbers and booleans keep their JSON spelling.
func (f fields) text(key string) string {
	v, _ := f.scalar(key)
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// number reads a number or a numeric string.
func (f fields) number(key string) float64 {
	v, _ := f.scalar(key)
	var s string
	switch v := v.(type) {
	case json.Number:
		s = v.String()
	case string:
		s = strings.TrimSuffix(strings.TrimSpace(v), "%")
	default:
		return 0
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// list decodes an array of objects. Elements that are not objects are
// skipped; a value that is not an array yields nil.
func list[T any, PT interface {
	*T
	fill(fields)
}](f fields, key string) []T {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	return decodeList[T, PT](raw)
}

func decodeList[T any, PT interface {
	*T
	fill(fields)
}](raw json.RawMessage) []T {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil
	}
	var out []T
	for _, e := range elems {
		f, ok := objectFields(e)
		if !ok {
			continue
		}
		var v T
		PT(&v).fill(f)
		out = append(out, v)
	}
	return out
}

func (c *City) fill(f fields) {
	*c = City{
		City:          f.text("city"),
		Subheading:    f.text("subheading"),
		Score:         f.number("score"),
		AudienceMatch: f.number("audience_match"),
		GeneralDemand: f.number("general_demand"),
		GPTInsights:   f.text("gpt_insights"),
		Influencers:   list[Influencer](f, "influencers"),
		Inventory:     list[Supplier](f, "inventory"),
		Agents:        list[Agent](f, "agents"),
		PopularPlaces: list[Place](f, "popular_places"),
	}
}

func (i *Influencer) fill(f fields) {
	*i = Influencer{
		Name:     f.text("name"),
		Platform: f.text("platform"),
		Niche:    f.text("niche"),
		Bio:      f.text("bio"),
		Contact:  f.text("contact"),
	}
}

func (s *Supplier) fill(f fields) {
	*s = Supplier{
		Name:          f.text("name"),
		InventoryType: f.text("inventory_type"),
		Location:      f.text("location"),
		Phone:         f.text("phone"),
		Contact:       f.text("contact"),
		Website:       f.text("website"),
	}
}

func (a *Agent) fill(f fields) {
	*a = Agent{
		Name:           f.text("name"),
		Specialization: f.text("specialization"),
		Agency:         f.text("agency"),
		Contact:        f.text("contact"),
		Website:        f.text("website"),
	}
}

func (p *Place) fill(f fields) {
	*p = Place{
		Name:    f.text("name"),
		Address: f.text("address"),
		Phone:   f.text("phone"),
		Website: f.text("website"),
		MapURL:  f.text("map_url"),
	}
}
