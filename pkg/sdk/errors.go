package sdk

import "fmt"

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("matchd: %s (status %d)", e.Message, e.StatusCode)
}
