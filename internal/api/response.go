package api

// Problem is the structured error body returned on 4xx/5xx responses.
type Problem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}
