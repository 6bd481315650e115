package ytdlp

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidURL reports input that is neither a recognizable video URL nor a
// bare video id.
var ErrInvalidURL = errors.New("unrecognized YouTube URL")

var (
	videoIDPatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/watch\?(?:.*&)?v=([0-9A-Za-z_-]{11})`),
		regexp.MustCompile(`youtu\.be/([0-9A-Za-z_-]{11})`),
		regexp.MustCompile(`youtube\.com/embed/([0-9A-Za-z_-]{11})`),
		regexp.MustCompile(`youtube\.com/shorts/([0-9A-Za-z_-]{11})`),
		regexp.MustCompile(`youtube\.com/v/([0-9A-Za-z_-]{11})`),
	}
	bareVideoID     = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)
	channelPatterns = []*regexp.Regexp{
		regexp.MustCompile(`youtube\.com/channel/([0-9A-Za-z_-]+)`),
		regexp.MustCompile(`youtube\.com/c/([^/?&#\s]+)`),
		regexp.MustCompile(`youtube\.com/user/([^/?&#\s]+)`),
		regexp.MustCompile(`youtube\.com/(@[^/?&#\s]+)`),
	}
)

// ExtractVideoID pulls the 11-character video id out of any of the common
// YouTube URL shapes (watch, youtu.be, embed, shorts, /v/). A bare video id
// is accepted as-is.
func ExtractVideoID(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidURL)
	}
	for _, re := range videoIDPatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1], nil
		}
	}
	if bareVideoID.MatchString(s) {
		return s, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidURL, s)
}

// IsChannelURL reports whether the input addresses a channel rather than a
// single video.
func IsChannelURL(raw string) bool {
	s := strings.TrimSpace(raw)
	if _, err := ExtractVideoID(s); err == nil {
		return false
	}
	for _, re := range channelPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// ChannelName extracts a human-usable name component from a channel URL,
// preferring the @handle or custom path segment. Falls back to "channel".
func ChannelName(raw string) string {
	s := strings.TrimSpace(raw)
	for _, re := range channelPatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			name := strings.TrimPrefix(m[1], "@")
			if name != "" {
				return name
			}
		}
	}
	return "channel"
}

// ChannelTabURL appends a tab (videos or shorts) to a channel URL, stripping
// any tab already present.
func ChannelTabURL(channelURL, tab string) string {
	base := strings.TrimRight(strings.TrimSpace(channelURL), "/")
	for _, suffix := range []string{"/videos", "/shorts", "/streams", "/featured"} {
		base = strings.TrimSuffix(base, suffix)
	}
	return base + "/" + tab
}

// WatchURL is the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}

// IsShortsURL reports whether a video URL points at the Shorts surface.
func IsShortsURL(raw string) bool {
	return strings.Contains(raw, "/shorts/")
}
