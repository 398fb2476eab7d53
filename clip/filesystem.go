package clip

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pillash/mp4util"
	log "github.com/sirupsen/logrus"
)

const (
	ExtVideo = ".mp4"

	// FileTimeLayout defines the format of clip filenames.
	// See https://golang.org/src/time/format.go.
	FileTimeLayout = "2006-01-02_15-04-05"
)

// Record is one stored clip.
type Record struct {
	// ID is the timestamp portion of the filename.
	ID   string
	Time time.Time
	Path string

	Size        int64
	DurationSec int
}

// Listener receives change notifications from the Filesystem.
type Listener interface {
	FilesystemUpdated()
}

type FilesystemOptions struct {
	BasePath string

	// MaxSize bounds the total bytes of stored clips. Oldest clips are
	// pruned first. Zero disables pruning.
	MaxSize int64
}

// Filesystem is the on-disk store of captured clips, one timestamped mp4 per
// capture under BasePath.
type Filesystem struct {
	opts FilesystemOptions

	Listeners []Listener

	l       sync.Mutex
	records map[string]*Record
}

func NewFilesystem(opts FilesystemOptions) (*Filesystem, error) {
	if err := os.MkdirAll(opts.BasePath, 0755); err != nil {
		return nil, err
	}
	f := &Filesystem{
		opts:    opts,
		records: make(map[string]*Record),
	}
	if err := f.scan(); err != nil {
		return nil, err
	}
	return f, nil
}

// NewRecord computes the destination for a clip captured at t. The record is
// not registered until Add.
func (f *Filesystem) NewRecord(t time.Time) *Record {
	id := t.Format(FileTimeLayout)
	return &Record{
		ID:   id,
		Time: t,
		Path: filepath.Join(f.opts.BasePath, id+ExtVideo),
	}
}

// scan rebuilds the record set from the files present under BasePath.
// Filenames that don't parse as capture timestamps are ignored.
func (f *Filesystem) scan() error {
	entries, err := os.ReadDir(f.opts.BasePath)
	if err != nil {
		return err
	}

	m := make(map[string]*Record)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ExtVideo) {
			continue
		}
		id := strings.TrimSuffix(name, ExtVideo)
		t, err := time.ParseInLocation(FileTimeLayout, id, time.Local)
		if err != nil {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		r := &Record{
			ID:   id,
			Time: t,
			Path: filepath.Join(f.opts.BasePath, name),
			Size: info.Size(),
		}
		if d, err := mp4util.Duration(r.Path); err == nil {
			r.DurationSec = d
		}
		m[id] = r
	}

	f.l.Lock()
	f.records = m
	f.l.Unlock()

	log.Infof("Clip filesystem scan found %d clips in %v", len(m), f.opts.BasePath)
	f.gc()
	return nil
}

// Add registers a newly captured clip and prunes storage if over budget.
func (f *Filesystem) Add(r *Record) {
	f.l.Lock()
	f.records[r.ID] = r
	f.l.Unlock()
	f.gc()
	f.notify()
}

// GetRecords returns all clips, newest first.
func (f *Filesystem) GetRecords() []*Record {
	f.l.Lock()
	defer f.l.Unlock()
	return f.sorted()
}

// sorted returns clips newest first. Callers must hold f.l.
func (f *Filesystem) sorted() []*Record {
	records := make([]*Record, 0, len(f.records))
	for _, r := range f.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Time.After(records[j].Time)
	})
	return records
}

func (f *Filesystem) GetRecordByID(id string) *Record {
	f.l.Lock()
	defer f.l.Unlock()
	return f.records[id]
}

// TotalSize returns the total bytes of stored clips.
func (f *Filesystem) TotalSize() int64 {
	f.l.Lock()
	defer f.l.Unlock()
	var sz int64
	for _, r := range f.records {
		sz += r.Size
	}
	return sz
}

// Delete removes a clip and its backing file. The record stays registered
// unless the file is actually gone.
func (f *Filesystem) Delete(id string) error {
	f.l.Lock()
	r := f.records[id]
	f.l.Unlock()
	if r == nil {
		return fmt.Errorf("no record found for id %v", id)
	}

	if err := os.Remove(r.Path); err != nil {
		return err
	}
	f.l.Lock()
	delete(f.records, id)
	f.l.Unlock()

	log.Infof("Deleted clip %v", r.Path)
	f.notify()
	return nil
}

// gc prunes oldest clips until total size fits under MaxSize. A record is
// unregistered only once its file is removed.
func (f *Filesystem) gc() {
	if f.opts.MaxSize == 0 {
		return
	}

	f.l.Lock()
	records := f.sorted()
	f.l.Unlock()

	var sz int64
	for _, r := range records {
		sz += r.Size
	}

	pruned := 0
	for i := len(records) - 1; i >= 0 && sz > f.opts.MaxSize; i-- {
		r := records[i]
		if err := os.Remove(r.Path); err != nil {
			log.Errorf("Failed to prune clip %v: %v", r.Path, err)
			continue
		}
		f.l.Lock()
		delete(f.records, r.ID)
		f.l.Unlock()
		sz -= r.Size
		pruned++
		log.Infof("Pruned clip %v to stay under storage budget", r.Path)
	}
	if pruned > 0 {
		f.notify()
	}
}

func (f *Filesystem) notify() {
	for _, l := range f.Listeners {
		l.FilesystemUpdated()
	}
}
