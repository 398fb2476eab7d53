package serve

import (
	"encoding/json"
	"net/http"

	"clipcam/clip"
)

type MetaEntry struct {
	ID        string
	Timestamp int64

	DurationSec int
	SizeBytes   int64
}

type MetaResponse struct {
	Items []*MetaEntry

	ItemsTotalSize  int64
	ItemsCount      int
	OldestTimestamp int64
}

func toMetaEntry(r *clip.Record) *MetaEntry {
	return &MetaEntry{
		ID:          r.ID,
		Timestamp:   r.Time.Unix(),
		DurationSec: r.DurationSec,
		SizeBytes:   r.Size,
	}
}

// MetaServer serves clip metadata as JSON, newest first.
type MetaServer struct {
	FS *clip.Filesystem
}

func (s *MetaServer) BuildResponse() *MetaResponse {
	records := s.FS.GetRecords()

	resp := &MetaResponse{}
	var sz int64
	for _, r := range records {
		resp.Items = append(resp.Items, toMetaEntry(r))
		sz += r.Size
		resp.OldestTimestamp = r.Time.Unix()
	}
	resp.ItemsTotalSize = sz
	resp.ItemsCount = len(records)
	return resp
}

func (s *MetaServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	js, err := json.Marshal(s.BuildResponse())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(js)
}
