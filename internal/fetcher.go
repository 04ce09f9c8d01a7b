package internal

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Fetcher turns a video reference into a raw transcript
type Fetcher struct {
	provider TranscriptProvider
	log      logrus.FieldLogger
}

// NewFetcher creates a fetcher backed by provider
func NewFetcher(provider TranscriptProvider, log logrus.FieldLogger) *Fetcher {
	return &Fetcher{provider: provider, log: log}
}

// Fetch resolves the video ID, retrieves its fragments and joins them.
// Provider failures are wrapped in ErrFetch and never retried.
func (f *Fetcher) Fetch(ctx context.Context, ref string) (string, error) {
	videoID := ExtractVideoID(ref)
	if videoID == "" {
		return "", fmt.Errorf("%w: empty video reference", ErrFetch)
	}

	fragments, err := f.provider.Fragments(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("%w for %s: %w", ErrFetch, videoID, err)
	}

	f.log.WithFields(logrus.Fields{
		"video_id":  videoID,
		"fragments": len(fragments),
	}).Debug("fetched transcript")

	return JoinFragments(fragments), nil
}
