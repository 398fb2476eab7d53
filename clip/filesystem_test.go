package clip

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeClip(t *testing.T, dir, name string, size int) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), make([]byte, size), 0644); err != nil {
		t.Fatalf("write %v: %v", name, err)
	}
}

func TestNewRecordPath(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFilesystem(FilesystemOptions{BasePath: dir})
	if err != nil {
		t.Fatalf("NewFilesystem: %v", err)
	}

	ts := time.Date(2024, 12, 31, 23, 59, 59, 0, time.Local)
	r := fs.NewRecord(ts)
	if got, want := r.Path, filepath.Join(dir, "2024-12-31_23-59-59.mp4"); got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
}

func TestScanIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, "2024-03-10_14-34-21.mp4", 10)
	writeClip(t, dir, "2024-03-10_14-40-00.mp4", 20)
	writeClip(t, dir, "notes.txt", 5)
	writeClip(t, dir, "not-a-timestamp.mp4", 5)
	writeClip(t, dir, "2024-03-10_14-50-00.mp4.temp", 5)

	fs, err := NewFilesystem(FilesystemOptions{BasePath: dir})
	if err != nil {
		t.Fatalf("NewFilesystem: %v", err)
	}

	records := fs.GetRecords()
	if len(records) != 2 {
		t.Fatalf("scan found %d records, want 2", len(records))
	}
	// Newest first.
	if records[0].ID != "2024-03-10_14-40-00" || records[1].ID != "2024-03-10_14-34-21" {
		t.Fatalf("unexpected order: %v, %v", records[0].ID, records[1].ID)
	}
	if records[0].Size != 20 {
		t.Fatalf("record size = %d, want 20", records[0].Size)
	}
}

func TestDelete(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, "2024-03-10_14-34-21.mp4", 10)

	fs, err := NewFilesystem(FilesystemOptions{BasePath: dir})
	if err != nil {
		t.Fatalf("NewFilesystem: %v", err)
	}

	updates := 0
	fs.Listeners = append(fs.Listeners, listenerFunc(func() { updates++ }))

	if err := fs.Delete("2024-03-10_14-34-21"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if fs.GetRecordByID("2024-03-10_14-34-21") != nil {
		t.Fatal("record still present after delete")
	}
	if _, err := os.Stat(filepath.Join(dir, "2024-03-10_14-34-21.mp4")); !os.IsNotExist(err) {
		t.Fatalf("file still present after delete: %v", err)
	}
	if updates != 1 {
		t.Fatalf("got %d listener updates, want 1", updates)
	}

	if err := fs.Delete("2024-03-10_14-34-21"); err == nil {
		t.Fatal("second delete succeeded, want error")
	}
}

func TestDeleteFailureKeepsRecord(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, "2024-03-10_14-34-21.mp4", 10)

	fs, err := NewFilesystem(FilesystemOptions{BasePath: dir})
	if err != nil {
		t.Fatalf("NewFilesystem: %v", err)
	}

	// Yank the file out from under the store so the removal fails.
	if err := os.Remove(filepath.Join(dir, "2024-03-10_14-34-21.mp4")); err != nil {
		t.Fatalf("remove backing file: %v", err)
	}

	if err := fs.Delete("2024-03-10_14-34-21"); err == nil {
		t.Fatal("Delete succeeded without a backing file, want error")
	}
	if fs.GetRecordByID("2024-03-10_14-34-21") == nil {
		t.Fatal("record unregistered even though delete failed")
	}
}

func TestGCPrunesOldestFirst(t *testing.T) {
	dir := t.TempDir()
	writeClip(t, dir, "2024-03-10_14-00-00.mp4", 100)
	writeClip(t, dir, "2024-03-10_15-00-00.mp4", 100)
	writeClip(t, dir, "2024-03-10_16-00-00.mp4", 100)

	fs, err := NewFilesystem(FilesystemOptions{BasePath: dir, MaxSize: 250})
	if err != nil {
		t.Fatalf("NewFilesystem: %v", err)
	}

	records := fs.GetRecords()
	if len(records) != 2 {
		t.Fatalf("got %d records after gc, want 2", len(records))
	}
	if fs.GetRecordByID("2024-03-10_14-00-00") != nil {
		t.Fatal("oldest clip survived gc")
	}
	if _, err := os.Stat(filepath.Join(dir, "2024-03-10_14-00-00.mp4")); !os.IsNotExist(err) {
		t.Fatalf("pruned file still on disk: %v", err)
	}
	if got := fs.TotalSize(); got != 200 {
		t.Fatalf("total size = %d, want 200", got)
	}
}

type listenerFunc func()

func (f listenerFunc) FilesystemUpdated() { f() }
