package serve

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"clipcam/clip"
)

// FileServer serves stored clip files by record id.
type FileServer struct {
	FS          *clip.Filesystem
	ContentType string
}

func NewVideoServer(fs *clip.Filesystem) *FileServer {
	return &FileServer{
		FS:          fs,
		ContentType: "video/mp4",
	}
}

func (s *FileServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.Form.Get("id")
	vr := s.FS.GetRecordByID(id)
	if vr == nil {
		http.Error(w, fmt.Sprintf("No record found for id %v", id), http.StatusNotFound)
		return
	}

	f, err := os.Open(vr.Path)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	defer f.Close()

	w.Header().Add("Content-Type", s.ContentType)
	io.Copy(w, f)
}
