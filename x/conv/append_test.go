package conv

import (
	"math"
	"testing"
)

func TestAppendInt(t *testing.T) {
	for _, tc := range []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{-42, "-42"},
		{4095, "4095"},
		{math.MaxInt64, "9223372036854775807"},
		{math.MinInt64, "-9223372036854775808"},
	} {
		if got := string(AppendInt(nil, tc.n)); got != tc.want {
			t.Errorf("AppendInt(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestAppendUintKeepsPrefix(t *testing.T) {
	got := string(AppendUint([]byte("x="), 120))
	if got != "x=120" {
		t.Fatalf("got %q", got)
	}
}

func TestAppendDurationMs(t *testing.T) {
	if got := string(AppendDurationMs(nil, 100_000_000)); got != "100ms" {
		t.Fatalf("got %q", got)
	}
}
