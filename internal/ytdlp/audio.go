package ytdlp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// audioExtensions are the container formats bestaudio commonly resolves to,
// checked in rough order of likelihood.
var audioExtensions = []string{"webm", "m4a", "mp3", "opus", "ogg", "wav"}

// FetchAudio downloads the best available audio stream for a video into
// destDir and returns the path to the resulting file.
func (c *Client) FetchAudio(ctx context.Context, videoID, destDir string) (string, error) {
	args := []string{
		"-f", "bestaudio/best",
		"--no-playlist",
		"--no-warnings",
		"-P", destDir,
		"-o", "%(id)s.%(ext)s",
		WatchURL(videoID),
	}
	if _, err := c.run(ctx, args...); err != nil {
		return "", &DownloadError{VideoID: videoID, Err: err}
	}

	path, err := findAudioFile(destDir, videoID)
	if err != nil {
		return "", &DownloadError{VideoID: videoID, Err: err}
	}
	return path, nil
}

func findAudioFile(destDir, videoID string) (string, error) {
	for _, ext := range audioExtensions {
		path := filepath.Join(destDir, videoID+"."+ext)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	matches, err := filepath.Glob(filepath.Join(destDir, videoID+".*"))
	if err != nil {
		return "", fmt.Errorf("scan for audio file: %w", err)
	}
	for _, m := range matches {
		if filepath.Ext(m) != ".vtt" && filepath.Ext(m) != ".txt" {
			return m, nil
		}
	}
	return "", fmt.Errorf("no audio file produced for %s", videoID)
}
