package config

import (
	"errors"
	"fmt"
)

const (
	// DefaultDurationSec is the capture window used when the config file
	// doesn't specify one.
	DefaultDurationSec = 30

	DefaultPort = 8080
)

type Config struct {
	// CameraURI is the network address of the camera stream, e.g.
	// "rtsp://10.0.0.5:554/h264Preview_01_main".
	CameraURI string

	// DurationSec bounds each capture in seconds.
	DurationSec int

	// OutputDir receives one timestamped mp4 per capture.
	OutputDir string

	// FFmpeg optionally pins the capture binary. When empty the binary is
	// located via $FFMPEG or $PATH.
	FFmpeg string

	// MaxDiskBytes bounds the total size of stored clips; oldest clips are
	// pruned first. Zero disables pruning.
	MaxDiskBytes int64

	// Port hosts the web frontend in serve mode.
	Port int

	// DatabaseDSN is a MySQL DSN used to persist web push subscriptions.
	// Empty disables web push.
	DatabaseDSN string

	// PushSubscriber is the contact address reported to push services.
	PushSubscriber string

	// WebRoot is a directory of static frontend assets. Empty disables the
	// frontend file server.
	WebRoot string
}

func (c *Config) applyDefaults() {
	if c.DurationSec == 0 {
		c.DurationSec = DefaultDurationSec
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.PushSubscriber == "" {
		c.PushSubscriber = "admin@localhost"
	}
}

func (c *Config) validate() error {
	if c.CameraURI == "" {
		return errors.New("CameraURI is required")
	}
	if c.OutputDir == "" {
		return errors.New("OutputDir is required")
	}
	// An explicit zero has already been rewritten to the default.
	if c.DurationSec < 0 {
		return fmt.Errorf("DurationSec must not be negative, got %d", c.DurationSec)
	}
	if c.MaxDiskBytes < 0 {
		return fmt.Errorf("MaxDiskBytes must not be negative, got %d", c.MaxDiskBytes)
	}
	return nil
}
