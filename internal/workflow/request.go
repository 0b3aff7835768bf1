package workflow

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/launchlens/pkg/launchlens"
)

// ErrInFlight is returned by Submit while an earlier submission is pending.
var ErrInFlight = eris.New("workflow: analysis already in flight")

// Request is the analysis form. Country and State hold region codes.
type Request struct {
	Idea       string
	ReportType string
	Country    string
	State      string
}

// NewRequest returns an empty country-level request.
func NewRequest() Request {
	return Request{ReportType: launchlens.ReportTypeCountry}
}

// ValidationError lists the fields that keep a request from being sent.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("workflow: incomplete request: %s", strings.Join(e.Fields, ", "))
}

// Validate reports a *ValidationError when idea or country is missing, the
// report type is unknown, or a state report has no state.
func (r Request) Validate() error {
	var fields []string
	if strings.TrimSpace(r.Idea) == "" {
		fields = append(fields, "idea")
	}
	switch r.ReportType {
	case launchlens.ReportTypeCountry, launchlens.ReportTypeState:
	default:
		fields = append(fields, "report_type")
	}
	if r.Country == "" {
		fields = append(fields, "country")
	}
	if r.ReportType == launchlens.ReportTypeState && r.State == "" {
		fields = append(fields, "state")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// normalized drops a state that the report type does not use.
func (r Request) normalized() Request {
	if r.ReportType != launchlens.ReportTypeState {
		r.State = ""
	}
	return r
}

// withCountry changes the country. Any state belongs to the old country
// and is cleared.
func (r Request) withCountry(code string) Request {
	if code != r.Country {
		r.State = ""
	}
	r.Country = code
	return r
}

// withReportType changes the report type, clearing the state for country
// reports.
func (r Request) withReportType(t string) Request {
	r.ReportType = t
	return r.normalized()
}

// Namer resolves region codes to display names.
type Namer interface {
	CountryName(code string) string
	StateName(code string) string
}

// codeNames is the Namer used when no directory is configured.
type codeNames struct{}

func (codeNames) CountryName(code string) string { return code }
func (codeNames) StateName(code string) string   { return code }

// payload builds the service request. The service expects display names,
// and a null state for country reports.
func (r Request) payload(names Namer) launchlens.AnalyzeRequest {
	out := launchlens.AnalyzeRequest{
		Idea:       strings.TrimSpace(r.Idea),
		ReportType: r.ReportType,
		Country:    names.CountryName(r.Country),
	}
	if r.ReportType == launchlens.ReportTypeState {
		state := names.StateName(r.State)
		out.State = &state
	}
	return out
}
