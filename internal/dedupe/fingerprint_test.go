package dedupe

import "testing"

func TestNormalize(t *testing.T) {
	normalized := Normalize("  What is HTMX? \r\n", "A library for AJAX.", "Web Development")
	expected := "what is htmx?\na library for ajax.\nweb development"

	if normalized != expected {
		t.Errorf("Expected normalized string to be '%s', but got '%s'", expected, normalized)
	}
}

func TestFingerprint(t *testing.T) {
	t.Run("generates correct hash", func(t *testing.T) {
		// Hash for "t\nd\nc"
		expected := "0293c89cddb6914ea7cd7b6e135d99ec225e5469e0b6ec0c2abe2463190ae814"
		fp := Fingerprint("T", "D", "C")

		if fp != expected {
			t.Errorf("Expected fingerprint '%s', but got '%s'", expected, fp)
		}
	})

	t.Run("fingerprint is deterministic", func(t *testing.T) {
		if Fingerprint("Test", "", "") != Fingerprint("Test", "", "") {
			t.Error("Expected fingerprints for identical content to be the same")
		}
	})

	t.Run("normalization produces same fingerprint", func(t *testing.T) {
		a := Fingerprint("  what is go? ", "A programming language.", "")
		b := Fingerprint("What Is Go?", "A programming language.", "")
		if a != b {
			t.Error("Expected fingerprints to be the same after normalization, but they were different.")
		}
	})

	t.Run("different content has different fingerprints", func(t *testing.T) {
		if Fingerprint("Card 1", "", "") == Fingerprint("Card 2", "", "") {
			t.Error("Expected fingerprints for different content to be different")
		}
	})

	t.Run("field boundaries matter", func(t *testing.T) {
		if Fingerprint("ab", "c", "") == Fingerprint("a", "bc", "") {
			t.Error("Expected content split across different fields to fingerprint differently")
		}
	})
}
