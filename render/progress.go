package render

import (
	"errors"
	"sync/atomic"
	"time"

	vstools "github.com/Jaded-Encoding-Thaumaturgy/vs-tools"
	parallel "github.com/kovidgoyal/go-parallel"
	"github.com/sirupsen/logrus"
)

// Progress tracks frames rendered so far and the effective frame rate.
// Advance is safe to call from multiple render workers.
type Progress struct {
	total    int64
	done     atomic.Int64
	start    time.Time
	logger   logrus.FieldLogger
	OnUpdate func(done, total int, fps float64)
}

// NewProgress starts tracking a render of total frames. A nil logger uses
// the logrus standard logger.
func NewProgress(total int, logger logrus.FieldLogger) *Progress {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Progress{total: int64(total), start: time.Now(), logger: logger}
}

// Advance records one finished frame.
func (p *Progress) Advance() {
	done := p.done.Add(1)
	fps := p.FPS()
	p.logger.WithFields(logrus.Fields{
		"done":  done,
		"total": p.total,
		"fps":   fps,
	}).Debug("rendered frame")
	if p.OnUpdate != nil {
		p.OnUpdate(int(done), int(p.total), fps)
	}
}

// Done returns the number of frames rendered so far.
func (p *Progress) Done() int { return int(p.done.Load()) }

// FPS returns the effective frames-per-second since the render started.
func (p *Progress) FPS() float64 {
	elapsed := time.Since(p.start).Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(p.done.Load()) / elapsed
}

// Frames runs fn over every frame of a clip, spreading the work across
// workers. Frames are processed out of order; fn is handed the frame index
// so results can be collected positionally. A nil progress is allowed.
func Frames(clip *vstools.Clip, progress *Progress, fn func(n int, frame *vstools.Frame) error) error {
	errs := make([]error, clip.NumFrames())

	worker := func(start, limit int) {
		for n := start; n < limit; n++ {
			frame, err := clip.Frame(n)
			if err == nil {
				err = fn(n, frame)
			}
			errs[n] = err
			if progress != nil {
				progress.Advance()
			}
		}
	}
	if err := parallel.Run_in_parallel_over_range(0, worker, 0, clip.NumFrames()); err != nil {
		return err
	}
	return errors.Join(errs...)
}
