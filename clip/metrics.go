package clip

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	capturesStarted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipcam_captures_started_total",
		Help: "Number of clip captures attempted.",
	})
	capturesSucceeded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipcam_captures_succeeded_total",
		Help: "Number of clip captures that produced a stored clip.",
	})
	capturesFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipcam_captures_failed_total",
		Help: "Number of clip captures that failed.",
	})
	captureBytes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "clipcam_capture_bytes_total",
		Help: "Total bytes of clip data written.",
	})
)

func init() {
	prometheus.MustRegister(capturesStarted, capturesSucceeded, capturesFailed, captureBytes)
}
