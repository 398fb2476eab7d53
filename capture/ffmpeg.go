package capture

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"clipcam/util"
)

const ExtTemp = ".temp"

// FFmpeg captures clips by running the ffmpeg binary in codec-copy mode: the
// incoming encoded stream is written byte for byte, no re-encoding happens.
// Output goes to a temp file which is renamed into place only once ffmpeg
// exits cleanly, so a failed capture never leaves a file at dest.
type FFmpeg struct {
	// Path to the ffmpeg binary, typically from util.LocateFFmpeg.
	Path string
}

func (f *FFmpeg) args(uri string, duration time.Duration, out string) []string {
	return []string{
		"-nostdin",
		"-v", "error",
		"-y",
		// Configure input from the camera stream.
		"-i", uri,
		// Bound the capture window.
		"-t", strconv.Itoa(int(duration / time.Second)),
		// Copy the encoded stream without re-encoding.
		"-c", "copy",
		out,
	}
}

func (f *FFmpeg) Capture(ctx context.Context, uri string, duration time.Duration, dest string) error {
	tmp := dest + ExtTemp

	c := exec.Command(f.Path, f.args(uri, duration, tmp)...)
	var stderr bytes.Buffer
	c.Stderr = &stderr

	if err := c.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	log.WithField("pid", c.Process.Pid).Infof("Capturing %v of %v", duration, uri)

	done := util.NewEvent()
	go func() {
		done.Notify(c.Wait())
	}()

	select {
	case <-ctx.Done():
		c.Process.Kill()
		done.Wait()
		os.Remove(tmp)
		return ctx.Err()
	case <-done.Done():
	}

	if err := done.Wait(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("ffmpeg exit: %v, stderr: %s", err, stderr.String())
	}
	if err := os.Rename(tmp, dest); err != nil {
		return fmt.Errorf("move capture to destination: %w", err)
	}
	return nil
}
