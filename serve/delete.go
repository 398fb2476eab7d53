package serve

import (
	"net/http"

	"clipcam/clip"
)

type DeleteServer struct {
	FS *clip.Filesystem
}

func (s *DeleteServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := r.Form.Get("id")
	if err := s.FS.Delete(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
}
