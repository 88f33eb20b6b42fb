package buf

import (
	"math"
	"testing"
)

func TestAddOverflowSafe(t *testing.T) {
	tests := []struct {
		name string
		a, b int
		want int
		ok   bool
	}{
		{"simple", 2, 3, 5, true},
		{"zero", 0, 0, 0, true},
		{"max plus zero", math.MaxInt, 0, math.MaxInt, true},
		{"max plus one", math.MaxInt, 1, 0, false},
		{"min minus one", math.MinInt, -1, 0, false},
		{"negative ok", -5, 3, -2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AddOverflowSafe(tt.a, tt.b)
			if ok != tt.ok {
				t.Fatalf("AddOverflowSafe(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("AddOverflowSafe(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestFitsInt(t *testing.T) {
	if !FitsInt(0) || !FitsInt(uint64(math.MaxInt)) {
		t.Error("in-range values must fit")
	}
	if FitsInt(math.MaxUint64) {
		t.Error("MaxUint64 must not fit in int")
	}
}

func TestCheckSpan(t *testing.T) {
	if !CheckSpan(10, 0, 10) || !CheckSpan(10, 3, 3) {
		t.Error("valid spans rejected")
	}
	if CheckSpan(10, -1, 5) || CheckSpan(10, 6, 5) || CheckSpan(10, 0, 11) {
		t.Error("invalid spans accepted")
	}
}
