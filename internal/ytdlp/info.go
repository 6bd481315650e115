package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"whispertube/internal/model"
)

// descriptionLimit bounds the description snippet stored per video so CSV
// rows stay readable in spreadsheet tools.
const descriptionLimit = 200

type videoJSON struct {
	ID                string                       `json:"id"`
	Title             string                       `json:"title"`
	ViewCount         int64                        `json:"view_count"`
	Duration          float64                      `json:"duration"`
	Uploader          string                       `json:"uploader"`
	Channel           string                       `json:"channel"`
	UploadDate        string                       `json:"upload_date"`
	Description       string                       `json:"description"`
	Subtitles         map[string][]json.RawMessage `json:"subtitles"`
	AutomaticCaptions map[string][]json.RawMessage `json:"automatic_captions"`
}

func (v videoJSON) info() model.VideoInfo {
	uploader := v.Uploader
	if uploader == "" {
		uploader = v.Channel
	}
	return model.VideoInfo{
		Title:           v.Title,
		ViewCount:       v.ViewCount,
		DurationSeconds: int(v.Duration),
		Uploader:        uploader,
		UploadDate:      v.UploadDate,
		Description:     truncateRunes(v.Description, descriptionLimit),
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func (c *Client) fetchVideoJSON(ctx context.Context, videoID string) (videoJSON, error) {
	out, err := c.run(ctx, "-J", "--no-playlist", "--no-warnings", WatchURL(videoID))
	if err != nil {
		return videoJSON{}, err
	}
	var v videoJSON
	if err := json.Unmarshal(out, &v); err != nil {
		return videoJSON{}, fmt.Errorf("parse yt-dlp metadata for %s: %w", videoID, err)
	}
	return v, nil
}

// FetchInfo retrieves display metadata for one video. Missing fields come
// back as zero values; callers fall back to placeholders at render time.
func (c *Client) FetchInfo(ctx context.Context, videoID string) (model.VideoInfo, error) {
	v, err := c.fetchVideoJSON(ctx, videoID)
	if err != nil {
		return model.VideoInfo{}, fmt.Errorf("fetch info for %s: %w", videoID, err)
	}
	return v.info(), nil
}

// CaptionTrack identifies one subtitle track on a video.
type CaptionTrack struct {
	Language string
	// Manual is true for uploader-provided captions, false for YouTube's
	// auto-generated ones.
	Manual bool
}

// ListTracks enumerates the caption tracks yt-dlp reports for a video.
// Manual tracks come first, then auto-generated, each group sorted by
// language code so track choice is deterministic run to run.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	v, err := c.fetchVideoJSON(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("list caption tracks for %s: %w", videoID, err)
	}

	tracks := make([]CaptionTrack, 0, len(v.Subtitles)+len(v.AutomaticCaptions))
	tracks = append(tracks, trackGroup(v.Subtitles, true)...)
	tracks = append(tracks, trackGroup(v.AutomaticCaptions, false)...)
	return tracks, nil
}

func trackGroup(raw map[string][]json.RawMessage, manual bool) []CaptionTrack {
	langs := make([]string, 0, len(raw))
	for lang := range raw {
		// live_chat shows up under subtitles but is not a caption track.
		if strings.EqualFold(lang, "live_chat") {
			continue
		}
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	tracks := make([]CaptionTrack, 0, len(langs))
	for _, lang := range langs {
		tracks = append(tracks, CaptionTrack{Language: lang, Manual: manual})
	}
	return tracks
}
