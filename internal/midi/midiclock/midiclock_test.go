package midiclock

import (
	"math"
	"testing"
	"time"
)

func TestFromMillis(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want uint64
	}{
		{"zero", 0, 0},
		{"one second", 1000, 1_000_000},
		{"negative clamps", -5, 0},
		{"int32 max", math.MaxInt32, uint64(math.MaxInt32) * 1000},
		{"uint32 max", math.MaxUint32, uint64(math.MaxUint32) * 1000},
		{"saturates", math.MaxInt64, math.MaxUint64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FromMillis(tt.ms); got != tt.want {
				t.Fatalf("FromMillis(%d) = %d, want %d", tt.ms, got, tt.want)
			}
		})
	}
}

func TestSince(t *testing.T) {
	if got := Since(time.Now().Add(-2 * time.Millisecond)); got < 2000 {
		t.Fatalf("Since = %d, want >= 2000", got)
	}
	if got := Since(time.Now().Add(time.Hour)); got != 0 {
		t.Fatalf("Since(future) = %d, want 0", got)
	}
}
