package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"whispertube/internal/model"
)

type playlistJSON struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Channel  string          `json:"channel"`
	Uploader string          `json:"uploader"`
	Entries  []playlistEntry `json:"entries"`
}

type playlistEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ListVideos enumerates a channel tab (videos or shorts) via a flat-playlist
// listing, newest first as YouTube orders them. Any listing failure is
// reported as a ChannelAccessError since the caller cannot distinguish a
// missing channel from a restricted one.
func (c *Client) ListVideos(ctx context.Context, tabURL string) ([]model.VideoRef, error) {
	out, err := c.run(ctx, "--flat-playlist", "-J", "--no-warnings", tabURL)
	if err != nil {
		return nil, &ChannelAccessError{URL: tabURL, Err: err}
	}

	var pl playlistJSON
	if err := json.Unmarshal(out, &pl); err != nil {
		return nil, &ChannelAccessError{URL: tabURL, Err: fmt.Errorf("parse listing: %w", err)}
	}

	channelName := pl.Channel
	if channelName == "" {
		channelName = pl.Uploader
	}
	if channelName == "" {
		channelName = ChannelName(tabURL)
	}

	shortsTab := strings.HasSuffix(strings.TrimRight(tabURL, "/"), "/shorts")
	refs := make([]model.VideoRef, 0, len(pl.Entries))
	for _, entry := range pl.Entries {
		if entry.ID == "" {
			continue
		}
		url := entry.URL
		if url == "" {
			url = WatchURL(entry.ID)
		}
		kind := model.KindLongform
		if shortsTab || IsShortsURL(url) {
			kind = model.KindShort
		}
		refs = append(refs, model.VideoRef{
			VideoID:     entry.ID,
			URL:         url,
			Title:       entry.Title,
			ChannelName: channelName,
			Kind:        kind,
		})
	}
	return refs, nil
}
