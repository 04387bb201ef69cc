package safemath

import (
	"math"
	"testing"
)

func TestAdd64(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want uint64
		ok   bool
	}{
		{"zero plus zero", 0, 0, 0, true},
		{"small values", 1, 2, 3, true},
		{"at boundary", math.MaxUint64 - 1, 1, math.MaxUint64, true},
		{"overflow max plus one", math.MaxUint64, 1, 0, false},
		{"overflow max plus max", math.MaxUint64, math.MaxUint64, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Add64(tt.a, tt.b)
			if ok != tt.ok {
				t.Fatalf("Add64(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("Add64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSub64(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want uint64
		ok   bool
	}{
		{"zero minus zero", 0, 0, 0, true},
		{"simple", 10, 3, 7, true},
		{"to zero", 5, 5, 0, true},
		{"underflow", 3, 10, 0, false},
		{"underflow from zero", 0, 1, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Sub64(tt.a, tt.b)
			if ok != tt.ok {
				t.Fatalf("Sub64(%d, %d) ok = %v, want %v", tt.a, tt.b, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Fatalf("Sub64(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSaturatingSub64(t *testing.T) {
	if got := SaturatingSub64(10, 4); got != 6 {
		t.Fatalf("SaturatingSub64(10, 4) = %d, want 6", got)
	}
	if got := SaturatingSub64(4, 10); got != 0 {
		t.Fatalf("SaturatingSub64(4, 10) = %d, want 0", got)
	}
}
