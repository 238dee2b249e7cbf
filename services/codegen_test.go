package services

import (
	"strings"
	"testing"
)

func TestGenerateUniqueCodeLength(t *testing.T) {
	for _, length := range []int{1, 4, TeamCodeLength, 10} {
		code := GenerateUniqueCode(map[string]struct{}{}, length)
		if len(code) != length {
			t.Errorf("length %d: got %q (len %d)", length, code, len(code))
		}
		for _, r := range code {
			if !strings.ContainsRune(teamCodeAlphabet, r) {
				t.Errorf("code %q contains %q outside the alphabet", code, r)
			}
		}
	}
}

func TestGenerateUniqueCodeAvoidsExisting(t *testing.T) {
	// Occupy 25 of the 26 single-letter codes; the generator must land on
	// the only free one.
	existing := make(map[string]struct{})
	for _, r := range teamCodeAlphabet[:len(teamCodeAlphabet)-1] {
		existing[string(r)] = struct{}{}
	}
	if code := GenerateUniqueCode(existing, 1); code != "Z" {
		t.Fatalf("expected the only free code Z, got %q", code)
	}
}

func TestGenerateUniqueCodeVaries(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[GenerateUniqueCode(map[string]struct{}{}, TeamCodeLength)] = struct{}{}
	}
	if len(seen) < 2 {
		t.Fatalf("expected varied codes, got %d distinct out of 50", len(seen))
	}
}
