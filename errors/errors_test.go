package errors

import (
	"errors"
	"io"
	"testing"
	"time"
)

func TestAppError_Error(t *testing.T) {
	err := New(ErrCodeBadStatus, "bad status")
	if got := err.Error(); got != "BAD_STATUS: bad status" {
		t.Errorf("Error() = %q", got)
	}

	wrapped := err.WithCause(io.ErrUnexpectedEOF)
	if got := wrapped.Error(); got != "BAD_STATUS: bad status (cause: unexpected EOF)" {
		t.Errorf("Error() with cause = %q", got)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("dial refused")
	err := ConnectionFailed("http://example.com/events", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should match the cause")
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		retryable bool
	}{
		{"connection", ConnectionFailed("u", nil), ErrCodeConnectionFailed, true},
		{"status", BadStatus(500), ErrCodeBadStatus, true},
		{"content type", BadContentType("text/html"), ErrCodeBadContentType, true},
		{"heartbeat", HeartbeatTimeout(30 * time.Second), ErrCodeHeartbeatTimeout, true},
		{"config", InvalidConfig("url", "required"), ErrCodeInvalidConfig, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.Retryable != tt.retryable {
				t.Errorf("retryable = %v, want %v", tt.err.Retryable, tt.retryable)
			}
		})
	}
}

func TestCodeOf(t *testing.T) {
	if got := CodeOf(BadStatus(404)); got != ErrCodeBadStatus {
		t.Errorf("CodeOf = %s, want %s", got, ErrCodeBadStatus)
	}
	if got := CodeOf(io.EOF); got != "" {
		t.Errorf("CodeOf(io.EOF) = %s, want empty", got)
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(HeartbeatTimeout(time.Second)) {
		t.Error("heartbeat timeout should be retryable")
	}
	if IsRetryable(InvalidConfig("x", "y")) {
		t.Error("invalid config should not be retryable")
	}
	if IsRetryable(io.EOF) {
		t.Error("plain errors are not retryable AppErrors")
	}
}
