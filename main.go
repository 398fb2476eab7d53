package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"clipcam/capture"
	"clipcam/clip"
	"clipcam/config"
	"clipcam/notify"
	"clipcam/serve"
	"clipcam/util"
)

var (
	configPath = flag.String("config", "/etc/clipcam.json", "Path to the JSON configuration file.")
	serveMode  = flag.Bool("serve", false, "Host the web frontend instead of recording a single clip.")
)

// recorderOptions re-reads the live config so reloads apply to the next
// capture.
func recorderOptions() *clip.RecorderOptions {
	c := config.Get()
	return &clip.RecorderOptions{
		CameraURI: c.CameraURI,
		Duration:  time.Duration(c.DurationSec) * time.Second,
	}
}

func main() {
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := config.Load(ctx, *configPath); err != nil {
		log.Fatalf("Failed to load config %v: %v", *configPath, err)
	}
	cfg := config.Get()

	ffmpegp := cfg.FFmpeg
	if ffmpegp == "" {
		var err error
		ffmpegp, err = util.LocateFFmpeg()
		if err != nil {
			fmt.Println("Unable to locate ffmpeg binary", err)
			fmt.Println("FFmpeg is required for saving video files.")
			fmt.Println("Either ensure the ffmpeg binary is in $PATH,")
			fmt.Println("or set the FFMPEG environment variable.")
			os.Exit(1)
		}
	}
	log.Infof("Located ffmpeg binary, %v", ffmpegp)

	fs, err := clip.NewFilesystem(clip.FilesystemOptions{
		BasePath: cfg.OutputDir,
		MaxSize:  cfg.MaxDiskBytes,
	})
	if err != nil {
		log.Fatalf("Failed to create clip filesystem: %v", err)
	}

	rec := &clip.Recorder{
		Capturer: &capture.FFmpeg{Path: ffmpegp},
		FS:       fs,
		Options:  recorderOptions,
	}

	if !*serveMode {
		// Single capture: block for the full window, propagate the
		// result through the exit code.
		r, err := rec.Record(context.Background())
		if err != nil {
			log.Errorf("Capture failed: %v", err)
			os.Exit(1)
		}
		log.Infof("Recorded clip %v", r.Path)
		return
	}

	notifier := &notify.Notifier{}
	rec.Listeners = append(rec.Listeners, notifier)

	mux := http.NewServeMux()

	if cfg.DatabaseDSN != "" {
		db, err := gorm.Open(mysql.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		wp, err := notify.NewWebPush(db, cfg.PushSubscriber)
		if err != nil {
			log.Fatalf("Failed to initialize web push: %v", err)
		}
		notifier.Listeners = append(notifier.Listeners, wp)
		wp.RegisterHandlers(mux)
	} else {
		log.Infof("No database configured, web push disabled")
	}

	metaws := serve.NewMetaUpdater()
	fs.Listeners = append(fs.Listeners, metaws)

	mux.Handle("/record", serve.NewRecordServer(rec))
	mux.Handle("/clips", &serve.MetaServer{FS: fs})
	mux.Handle("/video", serve.NewVideoServer(fs))
	mux.Handle("/delete", &serve.DeleteServer{FS: fs})
	mux.Handle("/eventsws", metaws)
	mux.Handle("/metrics", promhttp.Handler())
	if cfg.WebRoot != "" {
		mux.Handle("/", http.FileServer(http.Dir(cfg.WebRoot)))
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Infof("Hosting web frontend on port %d", cfg.Port)
		h := handlers.CombinedLoggingHandler(os.Stdout, mux)
		log.Errorf("HTTP server exited: %v", http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), h))
	}()

	sig := <-sigs
	log.Infof("Caught signal %v, shutting down", sig)
}
