package photoapi

import "fmt"

// NetworkError reports a transport failure or a non-2xx response.
type NetworkError struct {
	Op     string
	Status int
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: api returned status %d", e.Op, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ParseError reports a response body that is not the expected JSON.
type ParseError struct {
	Op  string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to decode response: %v", e.Op, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ApplicationError is a mutation the API answered with success=false.
type ApplicationError struct {
	Op      string
	Message string
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}
