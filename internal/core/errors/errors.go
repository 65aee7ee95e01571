package errors

const (
	HttpInternalError    = "internal_error"
	HttpInvalidJsonError = "invalid_json"
	HttpUnavailableError = "unavailable"
)

// MsgInternalError is the only message a 500 response carries. Causes are
// logged, never returned.
const MsgInternalError = "Internal Error"

// ErrorResponse is the error response body for every API endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// Internal is the generic 500 body.
func Internal() ErrorResponse {
	return ErrorResponse{ErrorType: HttpInternalError, Message: MsgInternalError}
}
