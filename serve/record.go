package serve

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"clipcam/clip"
)

// RecordServer triggers a single clip capture. The request blocks for the
// full capture window.
type RecordServer struct {
	Recorder *clip.Recorder
}

func NewRecordServer(r *clip.Recorder) *RecordServer {
	return &RecordServer{Recorder: r}
}

func (s *RecordServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Invalid request method", http.StatusMethodNotAllowed)
		return
	}

	rec, err := s.Recorder.Record(r.Context())
	if err != nil {
		log.Errorf("Triggered capture failed: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		ID string
	}{ID: rec.ID})
}
