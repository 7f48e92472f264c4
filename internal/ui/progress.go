package ui

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/landingkit/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type ProgressManager struct {
	p *mpb.Progress
}

// NewProgressManager renders bars to out; a nil writer discards them.
func NewProgressManager(out io.Writer) *ProgressManager {
	if out == nil {
		out = io.Discard
	}

	p := mpb.New(
		mpb.WithWidth(40),
		mpb.WithOutput(out),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &ProgressManager{p: p}
}

func NewStdoutProgress(enabled bool) *ProgressManager {
	if !enabled {
		return NewProgressManager(nil)
	}
	return NewProgressManager(os.Stdout)
}

func (pm *ProgressManager) Close() {
	pm.p.Wait()
}

func (pm *ProgressManager) Register(prefix string, total int) *ProgressHandle {
	h := &ProgressHandle{
		pm:     pm,
		prefix: prefix,
		total:  int64(total),
	}
	h.initBar()
	return h
}

type ProgressHandle struct {
	pm     *ProgressManager
	prefix string
	bar    *mpb.Bar

	total int64
	done  atomic.Int64
	bytes atomic.Int64

	start time.Time
	final atomic.Bool
}

func (h *ProgressHandle) initBar() {
	h.start = time.Now()

	h.bar = h.pm.p.New(
		h.total,
		mpb.BarStyle().Rbound("]"),

		mpb.PrependDecorators(
			decor.Name(h.prefix+"  "),
		),

		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.CountersNoUnit(" | %d/%d images", decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				return " | " + util.Human(h.bytes.Load())
			}),
			decor.Any(func(_ decor.Statistics) string {
				return fmt.Sprintf(" | %ds", int(time.Since(h.start).Seconds()))
			}),
		),
	)
}

// Advance marks one more image finished and adds its output size.
func (h *ProgressHandle) Advance(bytes int64) {
	if h.final.Load() {
		return
	}

	h.bytes.Add(bytes)
	h.bar.SetCurrent(h.done.Add(1))
}

func (h *ProgressHandle) MarkDone() {
	if h.final.Swap(true) {
		return
	}

	h.bar.SetTotal(h.total, true)
}
