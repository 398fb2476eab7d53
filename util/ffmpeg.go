package util

import (
	"fmt"
	"os"
	"os/exec"
)

// LocateFFmpeg finds the ffmpeg binary used for stream capture. The FFMPEG
// environment variable takes precedence over a $PATH search.
func LocateFFmpeg() (string, error) {
	if p := os.Getenv("FFMPEG"); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("ffmpeg binary %q from $FFMPEG: %v", p, err)
		}
		return p, nil
	}
	return exec.LookPath("ffmpeg")
}
