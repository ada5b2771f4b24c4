package dto

import "time"

// ErrorTimestampFormat is the wire format for error body timestamps.
const ErrorTimestampFormat = "2006-01-02 15:04:05"

// ErrorResponse is the structured body returned for every classified
// failure.
type ErrorResponse struct {
	Timestamp string `json:"timestamp"`
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
	Path      string `json:"path"`
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
func NewErrorResponse(errorCode, message, path string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().Format(ErrorTimestampFormat),
		ErrorCode: errorCode,
		Message:   message,
		Path:      path,
	}
}
