package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx
// responses.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// messageResponse is the envelope for endpoints that return only an
// acknowledgement.
type messageResponse struct {
	Message string `json:"message"`
}
