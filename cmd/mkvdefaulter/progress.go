package main

import (
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"mkvdefaulter/internal/batch"
)

// progress wraps a progress bar that may be disabled.
type progress struct {
	bar *progressbar.ProgressBar
}

func newProgress(w io.Writer, total int, enabled bool) *progress {
	if !enabled || total == 0 {
		return &progress{}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Processing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
	return &progress{bar: bar}
}

func (p *progress) advance(batch.FileResult) {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Add(1)
}

func (p *progress) finish() {
	if p == nil || p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}
