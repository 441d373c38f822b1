package storage

import (
	"fmt"
)

type ErrorResponse struct {
	StatusCode string `json:"statusCode"`
	ErrorCode  string `json:"error"`
	Message    string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return fmt.Sprintf("storage api error: %s (%s)", e.Message, e.ErrorCode)
}
