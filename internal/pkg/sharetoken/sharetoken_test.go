package sharetoken

import (
	"testing"
)

func TestGenerateLengthAndAlphabet(t *testing.T) {
	for _, length := range []int{8, DefaultLength, 40} {
		token, err := Generate(length)
		if err != nil {
			t.Fatalf("Generate(%d) returned error: %v", length, err)
		}
		if len(token) != length {
			t.Fatalf("Generate(%d) produced %d characters", length, len(token))
		}
		if !IsWellFormed(token) {
			t.Fatalf("Generate(%d) produced malformed token %q", length, token)
		}
	}
}

func TestGenerateRejectsInvalidLength(t *testing.T) {
	for _, length := range []int{0, -1} {
		if _, err := Generate(length); err == nil {
			t.Fatalf("Generate(%d) should fail", length)
		}
	}
}

func TestGenerateUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		token, err := Generate(DefaultLength)
		if err != nil {
			t.Fatalf("Generate returned error: %v", err)
		}
		if _, dup := seen[token]; dup {
			t.Fatalf("duplicate token generated: %q", token)
		}
		seen[token] = struct{}{}
	}
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "a1B2c3D4e5F6g7H8", want: true},
		{in: "short", want: false},
		{in: "", want: false},
		{in: "has-dash-inside1", want: false},
		{in: "white space here", want: false},
	}

	for _, tt := range tests {
		if got := IsWellFormed(tt.in); got != tt.want {
			t.Fatalf("IsWellFormed(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
