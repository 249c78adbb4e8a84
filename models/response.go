package models

// Response is the envelope returned by every API endpoint.
type Response struct {
	Success    bool               `json:"success"`
	Data       interface{}        `json:"data,omitempty"`
	Error      string             `json:"error,omitempty"`
	Details    []ValidationDetail `json:"details,omitempty"`
	Message    string             `json:"message,omitempty"`
	Count      *int               `json:"count,omitempty"`
	Query      string             `json:"query,omitempty"`
	Pagination *Pagination        `json:"pagination,omitempty"`
	Filters    interface{}        `json:"filters,omitempty"`
}

// Pagination describes the window of a paginated listing.
type Pagination struct {
	Current int   `json:"current"`
	Pages   int   `json:"pages"`
	Count   int64 `json:"count"`
	Limit   int   `json:"limit"`
}

// ValidationDetail is one field-level validation failure.
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// IntPtr returns a pointer to v, for the optional Count field.
func IntPtr(v int) *int {
	return &v
}
