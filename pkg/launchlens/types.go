package launchlens

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
)

// Report types accepted by POST /analyze.
const (
	ReportTypeCountry = "country"
	ReportTypeState   = "state"
)

// ID is an identifier the service may encode as a JSON string or number.
type ID string

// UnmarshalJSON accepts both "42" and 42.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return eris.Wrap(err, "launchlens: decode id")
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return eris.Wrap(err, "launchlens: decode id")
	}
	*id = ID(n.String())
	return nil
}

// Timestamp parses the service's created_at values, which may or may not
// carry a zone offset.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// UnmarshalJSON parses RFC 3339 and naive ISO 8601 timestamps. Naive values
// are read as UTC.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return eris.Errorf("launchlens: unrecognised timestamp %q", s)
}

// MarshalJSON writes the timestamp in RFC 3339.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// AnalyzeRequest is the body for POST /analyze. State is sent as null for
// country reports.
type AnalyzeRequest struct {
	Idea       string  `json:"idea"`
	ReportType string  `json:"report_type"`
	Country    string  `json:"country"`
	State      *string `json:"state"`
}

// Token is the response from POST /login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Profile is the response from GET /me.
type Profile struct {
	Username string `json:"username"`
}

// Region is a country or state option.
type Region struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// HistoryEntry is one row of GET /history.
type HistoryEntry struct {
	ID         ID        `json:"id"`
	Idea       string    `json:"idea"`
	ReportType string    `json:"report_type"`
	Country    string    `json:"country"`
	State      string    `json:"state"`
	CreatedAt  Timestamp `json:"created_at"`
}

// HistoryRecord is the response from GET /history/select/{id}. Raw keeps the
// full body so a stored result, when the service includes one, can be parsed
// by the report package.
type HistoryRecord struct {
	Idea            string          `json:"idea"`
	ReportType      string          `json:"report_type"`
	CountryCode     string          `json:"country_code"`
	StateCode       string          `json:"state_code"`
	AvailableStates []Region        `json:"available_states"`
	Cities          json.RawMessage `json:"cities,omitempty"`
	Raw             json.RawMessage `json:"-"`
}

// HasResult reports whether the record carries a stored report.
func (r *HistoryRecord) HasResult() bool {
	c := bytes.TrimSpace(r.Cities)
	return len(c) > 0 && !bytes.Equal(c, []byte("null"))
}

type historyResponse struct {
	History []HistoryEntry `json:"history"`
}

type countriesResponse struct {
	Countries []Region `json:"countries"`
}

type statesResponse struct {
	States []Region `json:"states"`
}
