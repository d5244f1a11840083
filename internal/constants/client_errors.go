package constants

// Error codes carried by REST client errors.
const (
	ErrCodeNotFound     = "RESOURCE_NOT_FOUND"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeNetworkError = "NETWORK_ERROR"
	ErrCodeServerError  = "SERVER_ERROR"
	ErrCodeDecodeError  = "DECODE_ERROR"
)

var ClientErrorMessages = map[string]string{
	ErrCodeNotFound:     "The load map was not found",
	ErrCodeBadRequest:   "The backend rejected the request",
	ErrCodeRateLimited:  "Rate limit exceeded. Please try again later",
	ErrCodeNetworkError: "Unable to reach the load map backend",
	ErrCodeServerError:  "The load map backend failed to handle the request",
	ErrCodeDecodeError:  "The backend returned an unreadable response",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := ClientErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
