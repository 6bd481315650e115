package model

import "time"

type VideoKind string

const (
	KindLongform VideoKind = "longform"
	KindShort    VideoKind = "short"
)

// KindFilter selects which video kinds a channel enumeration should yield.
type KindFilter string

const (
	FilterLongform KindFilter = "longform"
	FilterShorts   KindFilter = "shorts"
	FilterBoth     KindFilter = "both"
)

func (f KindFilter) Matches(kind VideoKind) bool {
	switch f {
	case FilterLongform:
		return kind == KindLongform
	case FilterShorts:
		return kind == KindShort
	default:
		return true
	}
}

// VideoRef identifies one candidate video produced by channel enumeration.
// Identity is VideoID; a ref is immutable once produced.
type VideoRef struct {
	VideoID     string    `json:"video_id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	ChannelName string    `json:"channel_name,omitempty"`
	Kind        VideoKind `json:"kind"`
}

// VideoInfo is the metadata snapshot fetched per video before resolution.
type VideoInfo struct {
	Title           string `json:"title"`
	ViewCount       int64  `json:"view_count"`
	DurationSeconds int    `json:"duration_seconds"`
	Uploader        string `json:"uploader"`
	UploadDate      string `json:"upload_date"`
	Description     string `json:"description"`
}

// TranscriptResult is the outcome of resolving one video. Exactly one of
// Transcript and Err is populated: a result carries either usable text or an
// explanation, never both.
type TranscriptResult struct {
	VideoID         string           `json:"video_id"`
	Title           string           `json:"title"`
	URL             string           `json:"url"`
	ViewCount       int64            `json:"view_count,omitempty"`
	DurationSeconds int              `json:"duration_seconds,omitempty"`
	Uploader        string           `json:"uploader,omitempty"`
	UploadDate      string           `json:"upload_date,omitempty"`
	Description     string           `json:"description,omitempty"`
	Transcript      string           `json:"transcript,omitempty"`
	Source          TranscriptSource `json:"transcript_source"`
	CharCount       int              `json:"char_count"`
	ProcessedAt     time.Time        `json:"processed_at"`
	Err             string           `json:"error,omitempty"`
}

// NewSuccessResult builds a result carrying transcript text.
func NewSuccessResult(ref VideoRef, info VideoInfo, text string, source TranscriptSource, now time.Time) TranscriptResult {
	return TranscriptResult{
		VideoID:         ref.VideoID,
		Title:           resultTitle(ref, info),
		URL:             ref.URL,
		ViewCount:       info.ViewCount,
		DurationSeconds: info.DurationSeconds,
		Uploader:        info.Uploader,
		UploadDate:      info.UploadDate,
		Description:     info.Description,
		Transcript:      text,
		Source:          source,
		CharCount:       len(text),
		ProcessedAt:     now,
	}
}

// NewFailureResult builds a result carrying a failure explanation. The source
// is forced to SourceNone and no transcript text is retained.
func NewFailureResult(ref VideoRef, info VideoInfo, message string, now time.Time) TranscriptResult {
	if message == "" {
		message = "no transcript available"
	}
	return TranscriptResult{
		VideoID:         ref.VideoID,
		Title:           resultTitle(ref, info),
		URL:             ref.URL,
		ViewCount:       info.ViewCount,
		DurationSeconds: info.DurationSeconds,
		Uploader:        info.Uploader,
		UploadDate:      info.UploadDate,
		Description:     info.Description,
		Source:          SourceNone,
		ProcessedAt:     now,
		Err:             message,
	}
}

func (r TranscriptResult) Succeeded() bool {
	return r.Err == "" && r.Transcript != ""
}

func resultTitle(ref VideoRef, info VideoInfo) string {
	if info.Title != "" {
		return info.Title
	}
	if ref.Title != "" {
		return ref.Title
	}
	return "Unknown Title"
}

// ProgressState is the snapshot a progress observer sees after every video.
// It is ephemeral and never persisted.
type ProgressState struct {
	Processed      int
	Total          int
	CurrentVideoID string
	CurrentTitle   string
	LastError      string
}

// SourceCounts tallies results by transcript provenance.
type SourceCounts struct {
	Manual          int `json:"manual"`
	AutoGenerated   int `json:"auto_generated"`
	ForeignFallback int `json:"foreign_fallback"`
	AIGenerated     int `json:"ai_generated"`
	None            int `json:"none"`
}

func (c *SourceCounts) Add(source TranscriptSource) {
	switch source {
	case SourceManual:
		c.Manual++
	case SourceAutoGenerated:
		c.AutoGenerated++
	case SourceForeignFallback:
		c.ForeignFallback++
	case SourceAIGenerated:
		c.AIGenerated++
	default:
		c.None++
	}
}

func (c SourceCounts) Succeeded() int {
	return c.Manual + c.AutoGenerated + c.ForeignFallback + c.AIGenerated
}

// RunSummary reports the outcome of one bulk run.
type RunSummary struct {
	ChannelURL string       `json:"channel_url"`
	SessionDir string       `json:"session_dir"`
	CSVPath    string       `json:"csv_path"`
	Total      int          `json:"total"`
	Processed  int          `json:"processed"`
	Counts     SourceCounts `json:"counts"`
	Cancelled  bool         `json:"cancelled"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
}

func (s RunSummary) Duration() time.Duration {
	return s.FinishedAt.Sub(s.StartedAt)
}

func (s RunSummary) AveragePerVideo() time.Duration {
	if s.Processed == 0 {
		return 0
	}
	return s.Duration() / time.Duration(s.Processed)
}
