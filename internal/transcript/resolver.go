package transcript

import (
	"context"
	"fmt"
	"os"
	"strings"

	"whispertube/internal/model"
	"whispertube/internal/ytdlp"
)

// CaptionSource lists and downloads caption tracks for a video.
type CaptionSource interface {
	ListTracks(ctx context.Context, videoID string) ([]ytdlp.CaptionTrack, error)
	FetchTrack(ctx context.Context, videoID, language string, manual bool, destDir string) (string, error)
}

// AudioFetcher downloads a video's audio stream for transcription.
type AudioFetcher interface {
	FetchAudio(ctx context.Context, videoID, destDir string) (string, error)
}

// Transcriber produces text from an audio file.
type Transcriber interface {
	Available() bool
	Transcribe(ctx context.Context, audioPath, workDir string) (string, error)
}

// Outcome is a successful resolution: transcript text plus where it came from.
type Outcome struct {
	Text   string
	Source model.TranscriptSource
}

// Resolver walks the transcript fallback chain for one video: manual captions
// in the preferred language, then auto-generated captions, then any foreign
// track, then Whisper transcription of the audio. The first strategy that
// yields text wins; a strategy failure never aborts the chain.
type Resolver struct {
	Captions    CaptionSource
	Audio       AudioFetcher
	Transcriber Transcriber

	// Language is the preferred caption language code. Empty means en.
	Language string
	// KeepAudio leaves the downloaded audio file in the video folder after
	// transcription instead of deleting it.
	KeepAudio bool
	// Logf, when set, receives per-strategy progress lines.
	Logf func(format string, args ...any)
}

func (r *Resolver) language() string {
	if strings.TrimSpace(r.Language) == "" {
		return "en"
	}
	return strings.TrimSpace(r.Language)
}

func (r *Resolver) logf(format string, args ...any) {
	if r.Logf != nil {
		r.Logf(format, args...)
	}
}

// Resolve returns the best available transcript for ref, downloading working
// files into videoDir. When every strategy fails the returned error message
// summarizes what was tried; the caller records it as the failure explanation.
func (r *Resolver) Resolve(ctx context.Context, ref model.VideoRef, videoDir string) (Outcome, error) {
	var notes []string

	tracks, err := r.Captions.ListTracks(ctx, ref.VideoID)
	if err != nil {
		if ytdlp.IsCaptionsDisabled(err) {
			notes = append(notes, "captions disabled")
		} else {
			notes = append(notes, fmt.Sprintf("caption listing failed: %v", err))
		}
	} else if len(tracks) == 0 {
		notes = append(notes, "no caption tracks")
	}

	if out, ok := r.tryCaptions(ctx, ref, videoDir, tracks, &notes); ok {
		return out, nil
	}
	if out, ok := r.tryWhisper(ctx, ref, videoDir, &notes); ok {
		return out, nil
	}

	return Outcome{}, fmt.Errorf("no transcript available (%s)", strings.Join(notes, "; "))
}

// tryCaptions attempts the caption strategies in priority order: preferred
// manual, preferred auto, then the first remaining foreign track. Tracks
// arrive manual-first and language-sorted, so "first remaining" is
// deterministic.
func (r *Resolver) tryCaptions(ctx context.Context, ref model.VideoRef, videoDir string, tracks []ytdlp.CaptionTrack, notes *[]string) (Outcome, bool) {
	lang := r.language()

	pick := func(want func(ytdlp.CaptionTrack) bool) (ytdlp.CaptionTrack, bool) {
		for _, tr := range tracks {
			if want(tr) {
				return tr, true
			}
		}
		return ytdlp.CaptionTrack{}, false
	}

	attempts := []struct {
		source model.TranscriptSource
		want   func(ytdlp.CaptionTrack) bool
	}{
		{model.SourceManual, func(tr ytdlp.CaptionTrack) bool {
			return tr.Manual && languageMatches(tr.Language, lang)
		}},
		{model.SourceAutoGenerated, func(tr ytdlp.CaptionTrack) bool {
			return !tr.Manual && languageMatches(tr.Language, lang)
		}},
		{model.SourceForeignFallback, func(tr ytdlp.CaptionTrack) bool {
			return !languageMatches(tr.Language, lang)
		}},
	}

	for _, attempt := range attempts {
		track, ok := pick(attempt.want)
		if !ok {
			continue
		}
		r.logf("trying %s captions (%s) for %s", attempt.source.Label(), track.Language, ref.VideoID)
		raw, err := r.Captions.FetchTrack(ctx, ref.VideoID, track.Language, track.Manual, videoDir)
		if err != nil {
			*notes = append(*notes, fmt.Sprintf("%s captions failed: %v", track.Language, err))
			continue
		}
		text := PlainText(raw)
		if text == "" {
			*notes = append(*notes, fmt.Sprintf("%s captions were empty", track.Language))
			continue
		}
		return Outcome{Text: text, Source: attempt.source}, true
	}
	return Outcome{}, false
}

func (r *Resolver) tryWhisper(ctx context.Context, ref model.VideoRef, videoDir string, notes *[]string) (Outcome, bool) {
	if r.Audio == nil || r.Transcriber == nil {
		*notes = append(*notes, "audio transcription not configured")
		return Outcome{}, false
	}
	if !r.Transcriber.Available() {
		*notes = append(*notes, "whisper not installed")
		return Outcome{}, false
	}

	r.logf("no usable captions for %s, transcribing audio", ref.VideoID)
	audioPath, err := r.Audio.FetchAudio(ctx, ref.VideoID, videoDir)
	if err != nil {
		*notes = append(*notes, fmt.Sprintf("audio download failed: %v", err))
		return Outcome{}, false
	}
	if !r.KeepAudio {
		defer func() {
			_ = os.Remove(audioPath)
		}()
	}

	text, err := r.Transcriber.Transcribe(ctx, audioPath, videoDir)
	if err != nil {
		*notes = append(*notes, fmt.Sprintf("transcription failed: %v", err))
		return Outcome{}, false
	}
	return Outcome{Text: text, Source: model.SourceAIGenerated}, true
}

// languageMatches treats a regional variant as its base language, so a
// preferred "en" accepts an "en-US" track.
func languageMatches(trackLang, want string) bool {
	if strings.EqualFold(trackLang, want) {
		return true
	}
	return strings.HasPrefix(strings.ToLower(trackLang), strings.ToLower(want)+"-")
}
