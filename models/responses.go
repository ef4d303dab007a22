package models

// APIResponse is the uniform envelope written by every JSON endpoint.
type APIResponse struct {
	// Status mirrors the HTTP status code of the response.
	Status int `json:"status"`

	// Message is a human-readable description of the outcome.
	Message string `json:"message"`

	// Data holds the payload, or null on failure.
	Data any `json:"data"`
}

// UnreadCount is the payload of the unread notifications endpoint.
type UnreadCount struct {
	UnreadCount int `json:"unread_count"`
}

// VersionInfo is the payload of the version endpoint.
type VersionInfo struct {
	Version string `json:"version"`
	Date    string `json:"build_date"`
	Commit  string `json:"build_commit"`
}
