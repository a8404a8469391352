package models

// FormResponse wraps the form state returned by the popup API.
type FormResponse struct {
	Success bool         `json:"success"`
	Form    *FormState   `json:"form,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

// FieldUpdateRequest is the payload for PUT /api/v1/form/fields/:field.
type FieldUpdateRequest struct {
	// Value is the new field content. An absent value clears the field.
	Value string `json:"value"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Store   string `json:"store"`
	Version string `json:"version"`
}

// Version is reported by the health endpoint and the CLI.
const Version = "0.1.0"
