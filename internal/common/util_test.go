package common

import (
	"errors"
	"fmt"
	"testing"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("s3cret-pass")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestSentinelErrors_MatchThroughWrapping(t *testing.T) {
	err := fmt.Errorf("read token: %w", ErrStorageUnavailable)
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("wrapped error must match ErrStorageUnavailable")
	}
	if errors.Is(err, ErrTokenExpired) {
		t.Fatalf("unrelated sentinel must not match")
	}
}
