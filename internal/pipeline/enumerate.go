package pipeline

import (
	"context"
	"errors"

	"whispertube/internal/model"
	"whispertube/internal/ytdlp"
)

// Lister enumerates a channel tab.
type Lister interface {
	ListVideos(ctx context.Context, tabURL string) ([]model.VideoRef, error)
}

// EnumerateOptions selects which videos of a channel to process.
type EnumerateOptions struct {
	ChannelURL string
	Filter     model.KindFilter
	// Limit caps how many videos are returned after filtering. Zero or
	// negative means no cap.
	Limit int
}

func tabsFor(filter model.KindFilter) []string {
	switch filter {
	case model.FilterLongform:
		return []string{"videos"}
	case model.FilterShorts:
		return []string{"shorts"}
	default:
		return []string{"videos", "shorts"}
	}
}

// Enumerate lists the channel tabs the filter needs, filters by kind, and
// then applies the limit. Filtering happens before limiting so a shorts-heavy
// channel still yields the requested number of longform videos.
//
// When both tabs are requested, one tab failing is tolerated; many channels
// simply have no shorts tab. Only when every tab fails is the error returned.
func Enumerate(ctx context.Context, lister Lister, opts EnumerateOptions) ([]model.VideoRef, error) {
	tabs := tabsFor(opts.Filter)

	var refs []model.VideoRef
	var errs []error
	for _, tab := range tabs {
		tabRefs, err := lister.ListVideos(ctx, ytdlp.ChannelTabURL(opts.ChannelURL, tab))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		refs = append(refs, tabRefs...)
	}
	if len(errs) == len(tabs) {
		return nil, errors.Join(errs...)
	}

	filtered := refs[:0]
	for _, ref := range refs {
		if opts.Filter.Matches(ref.Kind) {
			filtered = append(filtered, ref)
		}
	}
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		filtered = filtered[:opts.Limit]
	}
	return filtered, nil
}
