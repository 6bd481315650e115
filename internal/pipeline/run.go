package pipeline

import (
	"context"
	"fmt"
	"time"

	"whispertube/internal/model"
	"whispertube/internal/sessionfs"
	"whispertube/internal/transcript"
)

// InfoFetcher retrieves per-video display metadata.
type InfoFetcher interface {
	FetchInfo(ctx context.Context, videoID string) (model.VideoInfo, error)
}

// TranscriptResolver walks the transcript fallback chain for one video.
type TranscriptResolver interface {
	Resolve(ctx context.Context, ref model.VideoRef, videoDir string) (transcript.Outcome, error)
}

// Runner processes videos one at a time: fetch metadata, resolve a
// transcript, persist artifacts and the CSV row. One video failing to produce
// a transcript is an outcome, not an error; only persistence failures abort a
// run.
type Runner struct {
	Info     InfoFetcher
	Resolver TranscriptResolver
	Session  *sessionfs.Session
	Writer   *ResultWriter

	// Progress, when set, is called after every processed video.
	Progress func(model.ProgressState)
	// Now overrides the clock for tests.
	Now func() time.Time
}

// ProcessOne handles a single video end to end and returns its recorded
// result. A metadata fetch failure is absorbed: the transcript chain still
// runs and the row falls back to placeholder fields. Direct callers may pass
// a cancellable context; Run shields the in-flight video from the run
// context so it always completes and persists.
func (r *Runner) ProcessOne(ctx context.Context, ref model.VideoRef) (model.TranscriptResult, error) {
	info, infoErr := r.Info.FetchInfo(ctx, ref.VideoID)
	if infoErr != nil {
		if ctx.Err() != nil {
			return model.TranscriptResult{}, ctx.Err()
		}
		info = model.VideoInfo{}
	}

	videoDir, err := r.Session.VideoDir(ref.VideoID, firstNonEmpty(info.Title, ref.Title))
	if err != nil {
		return model.TranscriptResult{}, fmt.Errorf("create video folder for %s: %w", ref.VideoID, err)
	}

	var res model.TranscriptResult
	outcome, resolveErr := r.Resolver.Resolve(ctx, ref, videoDir)
	switch {
	case resolveErr == nil:
		res = model.NewSuccessResult(ref, info, outcome.Text, outcome.Source, timeIn(r.Now))
	case ctx.Err() != nil:
		// Interrupted mid-video: record nothing for it.
		return model.TranscriptResult{}, ctx.Err()
	default:
		res = model.NewFailureResult(ref, info, resolveErr.Error(), timeIn(r.Now))
	}

	if err := WriteArtifacts(videoDir, res); err != nil {
		return model.TranscriptResult{}, err
	}
	if err := r.Writer.Append(res); err != nil {
		return model.TranscriptResult{}, err
	}
	return res, nil
}

// Run processes refs sequentially. Cancellation is cooperative and polled
// only between videos: the in-flight video always runs to completion on a
// non-cancellable context and its row is persisted before the run stops.
func (r *Runner) Run(ctx context.Context, channelURL string, refs []model.VideoRef) (model.RunSummary, error) {
	summary := model.RunSummary{
		ChannelURL: channelURL,
		SessionDir: r.Session.Dir,
		CSVPath:    r.Session.CSVPath(),
		Total:      len(refs),
		StartedAt:  timeIn(r.Now),
	}

	for _, ref := range refs {
		if ctx.Err() != nil {
			summary.Cancelled = true
			break
		}

		res, err := r.ProcessOne(context.WithoutCancel(ctx), ref)
		if err != nil {
			summary.FinishedAt = timeIn(r.Now)
			return summary, err
		}

		summary.Processed++
		summary.Counts.Add(res.Source)

		if r.Progress != nil {
			r.Progress(model.ProgressState{
				Processed:      summary.Processed,
				Total:          summary.Total,
				CurrentVideoID: ref.VideoID,
				CurrentTitle:   res.Title,
				LastError:      res.Err,
			})
		}
	}

	summary.FinishedAt = timeIn(r.Now)
	return summary, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
