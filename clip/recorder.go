package clip

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pillash/mp4util"
	log "github.com/sirupsen/logrus"

	"clipcam/capture"
)

// RecorderOptions are the capture parameters for a single clip.
type RecorderOptions struct {
	CameraURI string
	Duration  time.Duration
}

// RecordListener is notified after each successfully stored clip.
type RecordListener interface {
	ClipRecorded(r *Record)
}

// Recorder captures one bounded clip per Record call and registers it with
// the filesystem. Calls block for the full capture window. Concurrent calls
// are not coordinated; captures within the same second collide on filename.
type Recorder struct {
	Capturer capture.Capturer
	FS       *Filesystem

	// Options is re-evaluated on every capture so config reloads apply to
	// subsequent captures.
	Options func() *RecorderOptions

	Listeners []RecordListener

	// Now is the clock used for clip timestamps. Defaults to time.Now.
	Now func() time.Time
}

func (r *Recorder) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Record captures a single clip and returns its stored record. On error no
// file exists at the destination path.
func (r *Recorder) Record(ctx context.Context) (*Record, error) {
	opts := r.Options()
	rec := r.FS.NewRecord(r.now())

	capturesStarted.Inc()
	clog := log.WithField("id", rec.ID)
	clog.Infof("Starting %v capture of %v", opts.Duration, opts.CameraURI)

	if err := r.Capturer.Capture(ctx, opts.CameraURI, opts.Duration, rec.Path); err != nil {
		capturesFailed.Inc()
		return nil, fmt.Errorf("capture %v: %w", rec.ID, err)
	}

	info, err := os.Stat(rec.Path)
	if err != nil {
		capturesFailed.Inc()
		return nil, fmt.Errorf("capture %v produced no file: %w", rec.ID, err)
	}
	rec.Size = info.Size()
	if d, err := mp4util.Duration(rec.Path); err != nil {
		clog.Warnf("Unable to probe clip duration: %v", err)
	} else {
		rec.DurationSec = d
	}

	r.FS.Add(rec)
	capturesSucceeded.Inc()
	captureBytes.Add(float64(rec.Size))
	clog.Infof("Capture complete, %d bytes written to %v", rec.Size, rec.Path)

	for _, l := range r.Listeners {
		l.ClipRecorded(rec)
	}
	return rec, nil
}
