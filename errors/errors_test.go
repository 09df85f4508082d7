package errors

import (
	"strings"
	"testing"
)

func TestNewIncludesCallerInfo(t *testing.T) {
	err := New("something broke: %d", 42)
	if !strings.Contains(err.Error(), "errors_test.go") {
		t.Errorf("Expected caller file in message, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "something broke: 42") {
		t.Errorf("Expected formatted message, got %q", err.Error())
	}
}

func TestWrapfNilReturnsNil(t *testing.T) {
	if err := Wrapf(nil, "context"); err != nil {
		t.Errorf("Expected nil, got %v", err)
	}
}

func TestWrapfPreservesChain(t *testing.T) {
	base := Tagf(ErrGenerationFailure, "call failed")
	wrapped := Wrapf(base, "while generating turn 3")
	if !Is(wrapped, ErrGenerationFailure) {
		t.Errorf("Expected wrapped error to match the sentinel, got %v", wrapped)
	}
}

func TestTagfMatchesKind(t *testing.T) {
	cases := []struct {
		kind  error
		other error
	}{
		{ErrConfigurationMissing, ErrGenerationFailure},
		{ErrGenerationFailure, ErrMalformedReply},
		{ErrMalformedReply, ErrConfigurationMissing},
	}

	for _, tc := range cases {
		err := Tagf(tc.kind, "details")
		if !Is(err, tc.kind) {
			t.Errorf("Expected %v to match its own kind", tc.kind)
		}
		if Is(err, tc.other) {
			t.Errorf("Expected %v not to match %v", tc.kind, tc.other)
		}
	}
}
