package sessionfs

import (
	"regexp"
	"strings"
)

// maxTitleComponent bounds the sanitized title portion of a video folder name
// so the full path stays well under common filesystem limits. The video id
// prefix keeps folder names unique regardless of title collisions.
const maxTitleComponent = 50

var unsafePathChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]+`)

// Sanitize replaces filesystem-unsafe characters in a name component with
// underscores. It never returns an empty string.
func Sanitize(raw string) string {
	s := unsafePathChars.ReplaceAllString(strings.TrimSpace(raw), "_")
	s = strings.Trim(s, ". ")
	if s == "" {
		return "unknown"
	}
	return s
}

// TitleSlug sanitizes a video title and truncates it for use in folder names.
func TitleSlug(title string) string {
	s := Sanitize(title)
	r := []rune(s)
	if len(r) > maxTitleComponent {
		s = string(r[:maxTitleComponent])
	}
	return strings.Trim(s, "_ ")
}

// VideoFolderName derives the per-video folder name. The globally unique
// video id prefix makes two distinct videos collide-proof even when their
// sanitized titles match.
func VideoFolderName(videoID, title string) string {
	id := Sanitize(videoID)
	slug := TitleSlug(title)
	if slug == "" || slug == "unknown" {
		return id
	}
	return id + "_" + slug
}
