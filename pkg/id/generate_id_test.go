package id

import (
	"regexp"
	"testing"
)

func TestNewID32(t *testing.T) {
	re := regexp.MustCompile(`^[a-f0-9]{32}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		got := NewID32()
		if !re.MatchString(got) {
			t.Fatalf("NewID32() = %q", got)
		}
		if seen[got] {
			t.Fatalf("duplicate id %q", got)
		}
		seen[got] = true
	}
}
