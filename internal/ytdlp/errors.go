package ytdlp

import (
	"fmt"
	"strings"
)

// DownloadError reports a failed media download for one video.
type DownloadError struct {
	VideoID string
	Err     error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed for %s: %v", e.VideoID, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// CaptionError reports a failed caption fetch for one video and language.
type CaptionError struct {
	VideoID  string
	Language string
	Err      error
}

func (e *CaptionError) Error() string {
	return fmt.Sprintf("caption fetch failed for %s (lang %s): %v", e.VideoID, e.Language, e.Err)
}

func (e *CaptionError) Unwrap() error { return e.Err }

// ChannelAccessError reports that a channel tab could not be listed, whether
// because the channel does not exist, is private, or the listing call failed.
type ChannelAccessError struct {
	URL string
	Err error
}

func (e *ChannelAccessError) Error() string {
	return fmt.Sprintf("cannot access channel %s: %v", e.URL, e.Err)
}

func (e *ChannelAccessError) Unwrap() error { return e.Err }

// captionsDisabledHints are fragments yt-dlp emits when a video has captions
// turned off entirely, as opposed to a transient fetch failure.
var captionsDisabledHints = []string{
	"subtitles are disabled",
	"has no subtitles",
	"no closed captions",
	"there are no subtitles",
}

// IsCaptionsDisabled reports whether an error looks like the video simply has
// no caption tracks rather than a download problem.
func IsCaptionsDisabled(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, hint := range captionsDisabledHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

// channelUnavailableHints are fragments yt-dlp emits for channels that cannot
// be listed at all.
var channelUnavailableHints = []string{
	"does not exist",
	"this channel is not available",
	"private",
	"terminated",
	"404",
	"unable to recognize",
	"not a valid url",
}

// IsChannelUnavailable reports whether an error indicates the channel itself
// is gone or restricted, as opposed to a transient network failure.
func IsChannelUnavailable(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, hint := range channelUnavailableHints {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}
