package models

// StatusKind is the presentation state of the status line.
type StatusKind string

const (
	StatusInfo    StatusKind = "info"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the message shown under the form.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message"`
}

// FormState is a point-in-time view of the popup form.
type FormState struct {
	// Values holds every field keyed by field id.
	Values map[Field]string `json:"values"`

	// Status is the current status line. Empty Message means none.
	Status Status `json:"status"`

	// Focus is the field that received focus after a validation error.
	Focus Field `json:"focus,omitempty"`

	// Submitting is true while a submission is in flight; the submit
	// control is disabled for that duration.
	Submitting bool `json:"submitting"`
}
