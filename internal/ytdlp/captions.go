package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FetchTrack downloads one caption track as VTT into destDir and returns its
// raw contents. The VTT file itself is removed after reading; the converted
// transcript is the artifact that persists.
func (c *Client) FetchTrack(ctx context.Context, videoID, language string, manual bool, destDir string) (string, error) {
	writeFlag := "--write-auto-subs"
	if manual {
		writeFlag = "--write-subs"
	}
	args := []string{
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
		"-P", destDir,
		"-o", "%(id)s.%(ext)s",
		writeFlag,
		"--sub-langs", language,
		"--convert-subs", "vtt",
		WatchURL(videoID),
	}
	if _, err := c.run(ctx, args...); err != nil {
		return "", &CaptionError{VideoID: videoID, Language: language, Err: err}
	}

	path, err := findCaptionFile(destDir, videoID, language)
	if err != nil {
		return "", &CaptionError{VideoID: videoID, Language: language, Err: err}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &CaptionError{VideoID: videoID, Language: language, Err: err}
	}
	_ = os.Remove(path)
	return string(data), nil
}

// findCaptionFile locates the downloaded VTT. yt-dlp may emit a language
// variant suffix (en-US for a requested en), so an exact match is tried first
// and a glob fallback second.
func findCaptionFile(destDir, videoID, language string) (string, error) {
	exact := filepath.Join(destDir, fmt.Sprintf("%s.%s.vtt", videoID, language))
	if _, err := os.Stat(exact); err == nil {
		return exact, nil
	}
	matches, err := filepath.Glob(filepath.Join(destDir, videoID+".*.vtt"))
	if err != nil {
		return "", fmt.Errorf("scan for caption file: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no caption file produced for language %s", language)
	}
	return matches[0], nil
}
