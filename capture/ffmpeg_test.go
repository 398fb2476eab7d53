package capture

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestArgs(t *testing.T) {
	f := &FFmpeg{Path: "/usr/local/bin/ffmpeg"}
	got := f.args("rtsp://camera.local:554/stream", 30*time.Second, "/clips/out.mp4.temp")
	want := []string{
		"-nostdin",
		"-v", "error",
		"-y",
		"-i", "rtsp://camera.local:554/stream",
		"-t", "30",
		"-c", "copy",
		"/clips/out.mp4.temp",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("args = %v, want %v", got, want)
	}
}

func TestCaptureLaunchFailure(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "2024-03-10_14-34-21.mp4")

	f := &FFmpeg{Path: filepath.Join(dir, "no-such-binary")}
	if err := f.Capture(context.Background(), "rtsp://camera.local/stream", 30*time.Second, dest); err == nil {
		t.Fatal("Capture succeeded with missing binary, want error")
	}

	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("destination exists after failed launch: %v", err)
	}
	if _, err := os.Stat(dest + ExtTemp); !os.IsNotExist(err) {
		t.Fatalf("temp file exists after failed launch: %v", err)
	}
}

func TestCaptureToolFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "2024-03-10_14-34-21.mp4")

	// "false" accepts the ffmpeg arg list and exits nonzero without
	// writing anything, standing in for an unreachable stream.
	f := &FFmpeg{Path: "/bin/false"}
	if err := f.Capture(context.Background(), "rtsp://camera.local/stream", 30*time.Second, dest); err == nil {
		t.Fatal("Capture succeeded with failing tool, want error")
	}

	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("destination exists after tool failure: %v", err)
	}
	if _, err := os.Stat(dest + ExtTemp); !os.IsNotExist(err) {
		t.Fatalf("temp file exists after tool failure: %v", err)
	}
}
