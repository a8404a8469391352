package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"drops blanks keeps order", "go, rust ,  , backend", []string{"go", "rust", "backend"}},
		{"keeps duplicates", "go,go, Go", []string{"go", "go", "Go"}},
		{"empty input", "", []string{}},
		{"only separators", " , ,", []string{}},
		{"single tag", "  kubernetes  ", []string{"kubernetes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParseTags(tt.in)); diff != "" {
				t.Errorf("ParseTags(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestNewTalentRecord_TrimsEveryField(t *testing.T) {
	rec := NewTalentRecord(map[Field]string{
		FieldFullName:       "  Ada Lovelace ",
		FieldHeadline:       "\tAnalyst\n",
		FieldCurrentRole:    " Mathematician",
		FieldCurrentCompany: "Analytical Engines ",
		FieldProfileURL:     " https://www.linkedin.com/in/ada/ ",
		FieldPossibleRole:   " Staff Engineer ",
		FieldTags:           "math, engines,",
		FieldNotes:          "  call next week  ",
	})

	want := &TalentRecord{
		FullName:       "Ada Lovelace",
		Headline:       "Analyst",
		CurrentRole:    "Mathematician",
		CurrentCompany: "Analytical Engines",
		ProfileURL:     "https://www.linkedin.com/in/ada/",
		PossibleRole:   "Staff Engineer",
		Tags:           []string{"math", "engines"},
		Notes:          "call next week",
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("NewTalentRecord mismatch (-want +got):\n%s", diff)
	}
}

func TestTalentRecord_JSONKeys(t *testing.T) {
	body, err := json.Marshal(NewTalentRecord(map[Field]string{FieldFullName: "Ada"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"full_name", "headline", "current_role", "current_company", "profile_url", "possible_role", "tags", "notes"} {
		if _, ok := got[key]; !ok {
			t.Errorf("missing key %q in %s", key, body)
		}
	}
	if tags, ok := got["tags"].([]any); !ok || len(tags) != 0 {
		t.Errorf("tags = %#v, want empty array", got["tags"])
	}
}

func TestField(t *testing.T) {
	if !FieldNotes.Valid() || !FieldNotes.Manual() {
		t.Error("notes should be a valid manual field")
	}
	if !FieldFullName.Valid() || FieldFullName.Manual() {
		t.Error("fullName should be valid and not manual")
	}
	if Field("email").Valid() {
		t.Error("email should not be a valid field")
	}
}

func TestManualDefaults(t *testing.T) {
	d := ManualDefaultsFrom(map[Field]string{
		FieldPossibleRole: "SRE",
		FieldTags:         "go, k8s",
		FieldFullName:     "ignored",
	})
	want := ManualDefaults{PossibleRole: "SRE", Tags: "go, k8s"}
	if d != want {
		t.Errorf("ManualDefaultsFrom = %+v, want %+v", d, want)
	}
	if d.Get(FieldTags) != "go, k8s" || d.Get(FieldFullName) != "" {
		t.Errorf("Get returned unexpected values: %+v", d)
	}

	body, _ := json.Marshal(d)
	if string(body) != `{"possible_role":"SRE","tags":"go, k8s","notes":""}` {
		t.Errorf("stored layout = %s", body)
	}
}
