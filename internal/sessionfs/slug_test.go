package sessionfs

import (
	"strings"
	"testing"
)

func TestSanitizeReplacesUnsafeChars(t *testing.T) {
	cases := map[string]string{
		`How to: use "grep" / find`: "How to_ use _grep_ _ find",
		`a\b|c?d*e`:                 "a_b_c_d_e",
		"plain title":               "plain title",
	}
	for in, want := range cases {
		if got := Sanitize(in); got != want {
			t.Fatalf("Sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSanitizeNeverEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "...", `///`} {
		if got := Sanitize(in); got == "" {
			t.Fatalf("Sanitize(%q) returned empty string", in)
		}
	}
}

func TestTitleSlugTruncates(t *testing.T) {
	long := strings.Repeat("x", 200)
	if got := TitleSlug(long); len([]rune(got)) != maxTitleComponent {
		t.Fatalf("expected %d runes, got %d", maxTitleComponent, len([]rune(got)))
	}
}

func TestVideoFolderNameDistinctIDsNeverCollide(t *testing.T) {
	a := VideoFolderName("aaa111bbb22", `Same: Title`)
	b := VideoFolderName("ccc333ddd44", `Same: Title`)
	if a == b {
		t.Fatalf("distinct video ids collided on folder name %q", a)
	}
	if !strings.HasPrefix(a, "aaa111bbb22_") {
		t.Fatalf("folder name missing id prefix: %q", a)
	}
}

func TestVideoFolderNameEmptyTitle(t *testing.T) {
	if got := VideoFolderName("abc123def45", ""); got != "abc123def45" {
		t.Fatalf("expected bare id for empty title, got %q", got)
	}
}
