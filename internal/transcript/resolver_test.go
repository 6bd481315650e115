package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"whispertube/internal/model"
	"whispertube/internal/ytdlp"
)

const sampleVTT = "WEBVTT\n\n00:00:00.000 --> 00:00:02.000\nhello world\n"

type fakeCaptions struct {
	tracks   []ytdlp.CaptionTrack
	listErr  error
	vtt      map[string]string
	fetchErr map[string]error
	fetched  []string
}

func (f *fakeCaptions) ListTracks(_ context.Context, _ string) ([]ytdlp.CaptionTrack, error) {
	return f.tracks, f.listErr
}

func (f *fakeCaptions) FetchTrack(_ context.Context, _, language string, manual bool, _ string) (string, error) {
	key := fmt.Sprintf("%s/%v", language, manual)
	f.fetched = append(f.fetched, key)
	if err, ok := f.fetchErr[key]; ok {
		return "", err
	}
	if vtt, ok := f.vtt[key]; ok {
		return vtt, nil
	}
	return "", fmt.Errorf("no fixture for %s", key)
}

type fakeAudio struct {
	err   error
	calls int
}

func (f *fakeAudio) FetchAudio(_ context.Context, videoID, destDir string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(destDir, videoID+".m4a")
	if err := os.WriteFile(path, []byte("audio"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

type fakeTranscriber struct {
	text        string
	err         error
	unavailable bool
	calls       int
}

func (f *fakeTranscriber) Available() bool { return !f.unavailable }

func (f *fakeTranscriber) Transcribe(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

var testRef = model.VideoRef{VideoID: "dQw4w9WgXcQ", URL: "https://www.youtube.com/watch?v=dQw4w9WgXcQ"}

func TestResolvePrefersManualCaptions(t *testing.T) {
	captions := &fakeCaptions{
		tracks: []ytdlp.CaptionTrack{
			{Language: "en", Manual: true},
			{Language: "en", Manual: false},
		},
		vtt: map[string]string{"en/true": sampleVTT},
	}
	r := &Resolver{Captions: captions}

	out, err := r.Resolve(context.Background(), testRef, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, model.SourceManual, out.Source)
	assert.Equal(t, "hello world", out.Text)
	assert.Equal(t, []string{"en/true"}, captions.fetched)
}

func TestResolveFallsBackToAutoCaptions(t *testing.T) {
	captions := &fakeCaptions{
		tracks: []ytdlp.CaptionTrack{{Language: "en", Manual: false}},
		vtt:    map[string]string{"en/false": sampleVTT},
	}
	r := &Resolver{Captions: captions}

	out, err := r.Resolve(context.Background(), testRef, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, model.SourceAutoGenerated, out.Source)
}

func TestResolveManualFetchFailureFallsThrough(t *testing.T) {
	captions := &fakeCaptions{
		tracks: []ytdlp.CaptionTrack{
			{Language: "en", Manual: true},
			{Language: "en", Manual: false},
		},
		vtt:      map[string]string{"en/false": sampleVTT},
		fetchErr: map[string]error{"en/true": fmt.Errorf("boom")},
	}
	r := &Resolver{Captions: captions}

	out, err := r.Resolve(context.Background(), testRef, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, model.SourceAutoGenerated, out.Source)
	assert.Equal(t, []string{"en/true", "en/false"}, captions.fetched)
}

func TestResolveRegionalVariantCountsAsPreferred(t *testing.T) {
	captions := &fakeCaptions{
		tracks: []ytdlp.CaptionTrack{{Language: "en-US", Manual: true}},
		vtt:    map[string]string{"en-US/true": sampleVTT},
	}
	r := &Resolver{Captions: captions}

	out, err := r.Resolve(context.Background(), testRef, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, model.SourceManual, out.Source)
}

func TestResolveForeignFallbackIsDeterministic(t *testing.T) {
	// Tracks arrive manual-first and language-sorted from the lister; the
	// foreign fallback takes the first of them.
	captions := &fakeCaptions{
		tracks: []ytdlp.CaptionTrack{
			{Language: "de", Manual: true},
			{Language: "fr", Manual: true},
		},
		vtt: map[string]string{"de/true": sampleVTT},
	}
	r := &Resolver{Captions: captions}

	out, err := r.Resolve(context.Background(), testRef, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, model.SourceForeignFallback, out.Source)
	assert.Equal(t, []string{"de/true"}, captions.fetched)
}

func TestResolveWhisperFallback(t *testing.T) {
	captions := &fakeCaptions{}
	audio := &fakeAudio{}
	tr := &fakeTranscriber{text: "spoken words"}
	r := &Resolver{Captions: captions, Audio: audio, Transcriber: tr}

	dir := t.TempDir()
	out, err := r.Resolve(context.Background(), testRef, dir)
	require.NoError(t, err)
	assert.Equal(t, model.SourceAIGenerated, out.Source)
	assert.Equal(t, "spoken words", out.Text)
	assert.Equal(t, 1, audio.calls)
	assert.Equal(t, 1, tr.calls)

	_, statErr := os.Stat(filepath.Join(dir, testRef.VideoID+".m4a"))
	assert.True(t, os.IsNotExist(statErr), "audio should be deleted after transcription")
}

func TestResolveKeepAudio(t *testing.T) {
	r := &Resolver{
		Captions:    &fakeCaptions{},
		Audio:       &fakeAudio{},
		Transcriber: &fakeTranscriber{text: "spoken words"},
		KeepAudio:   true,
	}
	dir := t.TempDir()
	_, err := r.Resolve(context.Background(), testRef, dir)
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, testRef.VideoID+".m4a"))
	assert.NoError(t, statErr, "audio should be kept")
}

func TestResolveExhaustionSummarizesAttempts(t *testing.T) {
	r := &Resolver{
		Captions:    &fakeCaptions{listErr: fmt.Errorf("this video has no subtitles")},
		Audio:       &fakeAudio{err: fmt.Errorf("403")},
		Transcriber: &fakeTranscriber{},
	}
	_, err := r.Resolve(context.Background(), testRef, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transcript available")
	assert.Contains(t, err.Error(), "captions disabled")
	assert.Contains(t, err.Error(), "audio download failed")
}

func TestResolveWhisperUnavailable(t *testing.T) {
	audio := &fakeAudio{}
	r := &Resolver{
		Captions:    &fakeCaptions{},
		Audio:       audio,
		Transcriber: &fakeTranscriber{unavailable: true},
	}
	_, err := r.Resolve(context.Background(), testRef, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whisper not installed")
	assert.Zero(t, audio.calls, "audio should not be downloaded without a transcriber")
}
