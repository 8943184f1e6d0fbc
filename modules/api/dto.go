package api

// ErrorResponse is the JSON error envelope. Errors carries the
// field→messages map of a multi-field validation failure.
type ErrorResponse struct {
	Message string              `json:"message"`
	Details string              `json:"details,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// StatusUpdateRequest is the body of PATCH /api/tasks/:id/status. The raw
// integer is range-checked by the task service before casting.
type StatusUpdateRequest struct {
	Status int `json:"status"`
}

// PriorityUpdateRequest is the body of PATCH /api/tasks/:id/priority.
type PriorityUpdateRequest struct {
	Priority int `json:"priority"`
}
