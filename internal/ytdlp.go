package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lrstanley/go-ytdlp"
	"github.com/sirupsen/logrus"
)

// TranscriptProvider retrieves the ordered caption fragments of a video
type TranscriptProvider interface {
	Fragments(ctx context.Context, videoID string) ([]Fragment, error)
}

// YtDlpProvider downloads captions with yt-dlp in json3 format
type YtDlpProvider struct {
	subLangs string
	tempDir  string
	log      logrus.FieldLogger

	installOnce sync.Once
	installErr  error
}

// NewYtDlpProvider creates a provider writing scratch files below tempDir
func NewYtDlpProvider(subLangs, tempDir string, log logrus.FieldLogger) *YtDlpProvider {
	return &YtDlpProvider{
		subLangs: subLangs,
		tempDir:  tempDir,
		log:      log,
	}
}

// ensureInstalled makes sure a yt-dlp binary is available, once per process
func (p *YtDlpProvider) ensureInstalled(ctx context.Context) error {
	p.installOnce.Do(func() {
		if _, err := ytdlp.Install(ctx, nil); err != nil {
			p.installErr = fmt.Errorf("installing yt-dlp: %w", err)
		}
	})
	return p.installErr
}

// Fragments fetches the captions of videoID
func (p *YtDlpProvider) Fragments(ctx context.Context, videoID string) ([]Fragment, error) {
	if err := p.ensureInstalled(ctx); err != nil {
		return nil, err
	}

	if err := EnsureDirs(p.tempDir); err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	workDir, err := os.MkdirTemp(p.tempDir, "subs-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(workDir); err != nil {
			p.log.WithError(err).Warn("removing scratch directory")
		}
	}()

	p.log.WithField("video_id", videoID).Debug("downloading captions")

	dl := ytdlp.New().
		WriteSubs().
		WriteAutoSubs().
		SubLangs(p.subLangs).
		SubFormat("json3").
		SkipDownload().
		NoPlaylist().
		Output(filepath.Join(workDir, "%(id)s"))

	result, err := dl.Run(ctx, WatchURL(videoID))
	if err != nil {
		if result != nil {
			p.log.WithField("stderr", result.Stderr).Debug("yt-dlp failed")
		}
		return nil, fmt.Errorf("yt-dlp: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(workDir, "*.json3"))
	if err != nil || len(files) == 0 {
		return nil, fmt.Errorf("no captions available for %s", videoID)
	}
	// manual subs and auto subs for the same language share a name, so
	// any order is fine as long as it is stable
	sort.Strings(files)

	p.log.WithField("file", filepath.Base(files[0])).Debug("parsing captions")

	data, err := os.ReadFile(files[0])
	if err != nil {
		return nil, fmt.Errorf("reading captions: %w", err)
	}
	return parseJSON3(data)
}

type json3Doc struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// parseJSON3 converts YouTube's json3 caption format into fragments.
// Events without text (window setup, bare line breaks) are skipped.
func parseJSON3(data []byte) ([]Fragment, error) {
	var doc json3Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing json3 captions: %w", err)
	}

	fragments := make([]Fragment, 0, len(doc.Events))
	for _, ev := range doc.Events {
		if len(ev.Segs) == 0 {
			continue
		}
		var sb strings.Builder
		for _, seg := range ev.Segs {
			sb.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(sb.String())
		if text == "" {
			continue
		}
		fragments = append(fragments, Fragment{
			Text:     text,
			Start:    float64(ev.StartMs) / 1000,
			Duration: float64(ev.DurationMs) / 1000,
		})
	}
	return fragments, nil
}
