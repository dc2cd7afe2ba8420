package httpclient

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		code      ErrorCode
		retryable bool
	}{
		{401, ErrCodeAuth, false},
		{403, ErrCodeAuth, false},
		{404, ErrCodeNotFound, false},
		{429, ErrCodeRateLimit, true},
		{400, ErrCodeValidation, false},
		{422, ErrCodeValidation, false},
		{500, ErrCodeServer, true},
		{503, ErrCodeServer, true},
	}
	for _, tc := range tests {
		e := ClassifyStatusCode(tc.status, nil)
		if e == nil {
			t.Fatalf("expected error for status %d", tc.status)
		}
		if e.Code != tc.code {
			t.Errorf("status %d: expected code %s, got %s", tc.status, tc.code, e.Code)
		}
		if e.Retryable != tc.retryable {
			t.Errorf("status %d: expected retryable=%v", tc.status, tc.retryable)
		}
		if e.StatusCode != tc.status {
			t.Errorf("status %d: expected status carried, got %d", tc.status, e.StatusCode)
		}
	}
}

func TestClassifyStatusCodeSuccess(t *testing.T) {
	for _, status := range []int{200, 201, 204, 299} {
		if e := ClassifyStatusCode(status, nil); e != nil {
			t.Errorf("expected nil for status %d, got %v", status, e)
		}
	}
}

func TestClassifyStatusCodeKeepsBody(t *testing.T) {
	body := []byte(`{"error":"missing node 60"}`)
	e := ClassifyStatusCode(400, body)
	if string(e.Body) != string(body) {
		t.Errorf("expected engine diagnostic preserved, got %s", e.Body)
	}
}

func TestErrorFormat(t *testing.T) {
	e := ClassifyStatusCode(503, nil)
	msg := e.Error()
	if !strings.Contains(msg, "server") || !strings.Contains(msg, "503") {
		t.Errorf("expected code and status in message, got %q", msg)
	}

	conn := NewConnectionError(fmt.Errorf("dial tcp: connection refused"))
	if strings.Contains(conn.Error(), "HTTP") {
		t.Errorf("expected no status for connection errors, got %q", conn.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	wrapped := fmt.Errorf("submit prompt: %w", NewConnectionError(cause))

	var e *Error
	if !errors.As(wrapped, &e) {
		t.Fatal("expected *Error through wrapping")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("expected cause reachable through Unwrap")
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(NewTimeoutError(fmt.Errorf("deadline exceeded"))) {
		t.Error("expected timeouts retryable")
	}
	if !IsRetryable(NewConnectionError(fmt.Errorf("connection refused"))) {
		t.Error("expected connection failures retryable")
	}
	if !IsRetryable(NewServerError(502, nil)) {
		t.Error("expected 5xx retryable")
	}
	if IsRetryable(NewValidationError("bad graph")) {
		t.Error("expected validation errors not retryable")
	}
	if IsRetryable(fmt.Errorf("plain error")) {
		t.Error("expected unclassified errors not retryable")
	}
}
