package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Stream failures. All of these are retryable: a subscription recovers
// from every failure class through the reconnect path.
const (
	// ErrCodeConnectionFailed indicates the transport request could not be
	// opened or the stream broke mid-read (network, DNS, TLS).
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeBadStatus indicates the endpoint answered with a non-success
	// HTTP status code.
	ErrCodeBadStatus ErrorCode = "BAD_STATUS"
	// ErrCodeBadContentType indicates the endpoint answered with a
	// Content-Type other than text/event-stream.
	ErrCodeBadContentType ErrorCode = "BAD_CONTENT_TYPE"
	// ErrCodeHeartbeatTimeout indicates no bytes arrived within the
	// configured heartbeat window.
	ErrCodeHeartbeatTimeout ErrorCode = "HEARTBEAT_TIMEOUT"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates the supplied configuration is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed: true,
	ErrCodeBadStatus:        true,
	ErrCodeBadContentType:   true,
	ErrCodeHeartbeatTimeout: true,
	ErrCodeInvalidConfig:    false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
