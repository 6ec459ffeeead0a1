package analysis

import (
	"math"
	"testing"
)

func TestEntropy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pwd  string
		want float64
	}{
		{pwd: "", want: 0},
		{pwd: "a", want: 0},
		{pwd: "aaaa", want: 0},
		{pwd: "ab", want: 1},
		{pwd: "aabb", want: 1},
		{pwd: "abcd", want: 2},
		{pwd: "aab", want: 0.9182958340544896},
		{pwd: "ääöö", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.pwd, func(t *testing.T) {
			t.Parallel()

			got := Entropy(tt.pwd)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Entropy(%q) = %v, want %v", tt.pwd, got, tt.want)
			}
			if math.Signbit(got) {
				t.Errorf("Entropy(%q) returned a negative value %v", tt.pwd, got)
			}
		})
	}
}

func TestEntropyIsStable(t *testing.T) {
	t.Parallel()

	const pwd = "Tr0ub4dor&3xkcd!"
	first := Entropy(pwd)
	for range 50 {
		if got := Entropy(pwd); got != first {
			t.Fatalf("Entropy(%q) changed between calls: %v != %v", pwd, got, first)
		}
	}
}
