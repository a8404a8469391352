package models

import "strings"

// Field identifies one input of the talent form.
type Field string

// Form field ids. The three manual fields are typed by hand and remembered
// between sessions; the rest come from the page.
const (
	FieldFullName       Field = "fullName"
	FieldHeadline       Field = "headline"
	FieldCurrentRole    Field = "currentRole"
	FieldCurrentCompany Field = "currentCompany"
	FieldProfileURL     Field = "profileUrl"
	FieldPossibleRole   Field = "possibleRole"
	FieldTags           Field = "tags"
	FieldNotes          Field = "notes"
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldFullName,
	FieldHeadline,
	FieldCurrentRole,
	FieldCurrentCompany,
	FieldProfileURL,
	FieldPossibleRole,
	FieldTags,
	FieldNotes,
}

// ManualFields are the fields persisted as ManualDefaults.
var ManualFields = []Field{FieldPossibleRole, FieldTags, FieldNotes}

// Valid reports whether f is a known form field.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// Manual reports whether f is one of the persisted manual fields.
func (f Field) Manual() bool {
	for _, m := range ManualFields {
		if f == m {
			return true
		}
	}
	return false
}

// TalentRecord is the payload POSTed to the talent endpoint.
type TalentRecord struct {
	FullName       string   `json:"full_name"`
	Headline       string   `json:"headline"`
	CurrentRole    string   `json:"current_role"`
	CurrentCompany string   `json:"current_company"`
	ProfileURL     string   `json:"profile_url"`
	PossibleRole   string   `json:"possible_role"`
	Tags           []string `json:"tags"`
	Notes          string   `json:"notes"`
}

// NewTalentRecord builds a record from raw form values. Every string is
// trimmed and the raw tags text is split with ParseTags.
func NewTalentRecord(values map[Field]string) *TalentRecord {
	get := func(f Field) string { return strings.TrimSpace(values[f]) }
	return &TalentRecord{
		FullName:       get(FieldFullName),
		Headline:       get(FieldHeadline),
		CurrentRole:    get(FieldCurrentRole),
		CurrentCompany: get(FieldCurrentCompany),
		ProfileURL:     get(FieldProfileURL),
		PossibleRole:   get(FieldPossibleRole),
		Tags:           ParseTags(values[FieldTags]),
		Notes:          get(FieldNotes),
	}
}

// ParseTags splits comma-separated input, trims each entry and drops the
// empty ones. Order and duplicates are kept as typed. The result is never nil
// so it always serializes as a JSON array.
func ParseTags(raw string) []string {
	tags := []string{}
	for _, part := range strings.Split(raw, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// ProfileSnapshot is what the extractor reads off a profile page.
// It only ever merges into the form and is never stored.
type ProfileSnapshot struct {
	FullName       string `json:"fullName"`
	Headline       string `json:"headline"`
	CurrentRole    string `json:"currentRole"`
	CurrentCompany string `json:"currentCompany"`
	ProfileURL     string `json:"profileUrl"`
}

// Values maps the snapshot onto form fields.
func (s *ProfileSnapshot) Values() map[Field]string {
	return map[Field]string{
		FieldFullName:       s.FullName,
		FieldHeadline:       s.Headline,
		FieldCurrentRole:    s.CurrentRole,
		FieldCurrentCompany: s.CurrentCompany,
		FieldProfileURL:     s.ProfileURL,
	}
}

// ManualDefaults is the persisted subset of the form, stored as one JSON
// object under ManualDefaultsKey. Tags are kept raw, unsplit.
type ManualDefaults struct {
	PossibleRole string `json:"possible_role"`
	Tags         string `json:"tags"`
	Notes        string `json:"notes"`
}

// ManualDefaultsKey is the storage key holding ManualDefaults.
const ManualDefaultsKey = "manualDefaults"

// Get returns the stored value for a manual field.
func (d ManualDefaults) Get(f Field) string {
	switch f {
	case FieldPossibleRole:
		return d.PossibleRole
	case FieldTags:
		return d.Tags
	case FieldNotes:
		return d.Notes
	}
	return ""
}

// ManualDefaultsFrom collects the manual fields out of form values.
func ManualDefaultsFrom(values map[Field]string) ManualDefaults {
	return ManualDefaults{
		PossibleRole: values[FieldPossibleRole],
		Tags:         values[FieldTags],
		Notes:        values[FieldNotes],
	}
}
