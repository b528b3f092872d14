package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
)

// ErrMalformedPage is returned by a Collector when the response has no usable results collection
var ErrMalformedPage = errors.New("page response has no results")

// Placeholder is rendered in place of any absent posting field
const Placeholder = "N/A"

// FlexString holds an optional scalar from the jobs API. Strings are kept as-is,
// numbers keep their literal text, anything else decodes to "" (absent).
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*f = ""
		return nil
	}
	switch c := b[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*f = ""
			return nil
		}
		*f = FlexString(s)
	case c == '-' || (c >= '0' && c <= '9'):
		*f = FlexString(b)
	default:
		*f = ""
	}
	return nil
}

// Or returns the value, or fallback when the field is absent
func (f FlexString) Or(fallback string) string {
	if f == "" {
		return fallback
	}
	return string(f)
}

// Display returns the value or the placeholder
func (f FlexString) Display() string {
	return f.Or(Placeholder)
}

// ContactPreference is one entry of a posting's contact_preference collection
type ContactPreference struct {
	Type  string     `json:"type"`
	Value FlexString `json:"value"`
}

// RawPosting is a job record exactly as the API sent it
type RawPosting map[string]json.RawMessage

// JobPosting is the normalized record rendered as a card
type JobPosting struct {
	ID            int64      `json:"id"`
	Title         FlexString `json:"title,omitempty"`
	CompanyName   FlexString `json:"company_name,omitempty"`
	Place         FlexString `json:"place,omitempty"`
	Salary        FlexString `json:"salary,omitempty"`
	JobType       FlexString `json:"job_type,omitempty"`
	Experience    FlexString `json:"experience,omitempty"`
	Qualification FlexString `json:"qualification,omitempty"`
	Vacancies     FlexString `json:"vacancies,omitempty"`
	ShiftTiming   FlexString `json:"shift_timing,omitempty"`
	Locality      FlexString `json:"locality,omitempty"`
	JobRoleID     FlexString `json:"job_role_id,omitempty"`
	WhatsAppNo    FlexString `json:"whatsapp_no,omitempty"`
	ContactLink   FlexString `json:"contact_link,omitempty"`
	UpdatedOn     FlexString `json:"updated_on,omitempty"`

	// WhatsAppLink is derived from contact_preference, never read from the raw record
	WhatsAppLink FlexString `json:"whatsapp_link,omitempty"`

	// Raw keeps every field the API sent, including ones not modelled above
	Raw RawPosting `json:"-"`
}

// Decode reads the modelled fields out of the raw record. WhatsAppLink is left empty.
func (r RawPosting) Decode() JobPosting {
	p := JobPosting{Raw: r}
	p.ID = r.int64Field("id")
	r.stringField("title", &p.Title)
	r.stringField("company_name", &p.CompanyName)
	r.stringField("place", &p.Place)
	r.stringField("salary", &p.Salary)
	r.stringField("job_type", &p.JobType)
	r.stringField("experience", &p.Experience)
	r.stringField("qualification", &p.Qualification)
	r.stringField("vacancies", &p.Vacancies)
	r.stringField("shift_timing", &p.ShiftTiming)
	r.stringField("locality", &p.Locality)
	r.stringField("job_role_id", &p.JobRoleID)
	r.stringField("whatsapp_no", &p.WhatsAppNo)
	r.stringField("contact_link", &p.ContactLink)
	r.stringField("updated_on", &p.UpdatedOn)
	return p
}

func (r RawPosting) stringField(key string, dst *FlexString) {
	if v, ok := r[key]; ok {
		_ = dst.UnmarshalJSON(v)
	}
}

func (r RawPosting) int64Field(key string) int64 {
	var f FlexString
	r.stringField(key, &f)
	id, err := strconv.ParseInt(string(f), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// MarshalJSON writes the API record back out with the derived whatsapp_link applied.
// Fields not modelled on JobPosting are kept.
func (p JobPosting) MarshalJSON() ([]byte, error) {
	type plain JobPosting
	if p.Raw == nil {
		return json.Marshal(plain(p))
	}

	out := make(map[string]json.RawMessage, len(p.Raw)+1)
	for k, v := range p.Raw {
		out[k] = v
	}
	delete(out, "whatsapp_link")
	if p.WhatsAppLink != "" {
		link, err := json.Marshal(string(p.WhatsAppLink))
		if err != nil {
			return nil, err
		}
		out["whatsapp_link"] = link
	}
	return json.Marshal(out)
}

func (p *JobPosting) UnmarshalJSON(b []byte) error {
	var raw RawPosting
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = raw.Decode()
	raw.stringField("whatsapp_link", &p.WhatsAppLink)
	return nil
}

// Collector defines the interface for fetching one page of postings
type Collector interface {
	FetchPage(ctx context.Context, page int) ([]RawPosting, error)
}

// BookmarkStore remembers which postings the user saved
type BookmarkStore interface {
	IsBookmarked(ctx context.Context, id int64) bool
	// Toggle adds or removes the posting and reports whether it is now bookmarked
	Toggle(ctx context.Context, posting JobPosting) (bool, error)
	List(ctx context.Context) ([]JobPosting, error)
}

// LinkOpener hands a URI to the platform's opener
type LinkOpener interface {
	Open(ctx context.Context, uri string) error
}
