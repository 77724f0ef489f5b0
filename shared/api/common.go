package api

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-envelope failure.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error,omitempty"`
}

type InfoResponse struct {
	Message   string `json:"message"`
	Version   string `json:"version"`
	Status    string `json:"status"`
	Endpoints string `json:"endpoints"`
}
